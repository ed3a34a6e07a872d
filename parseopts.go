package mathexpr

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the settings for one call to Parse.
type parsectx struct {
	// stop is a string containing the whitespace characters that end the
	// input.
	stop string
}

type stopopt string

// StopOn tells the parser to treat a list of whitespace characters as ending
// the input. The source is left positioned just after the first such
// character, so the next expression can be parsed from it. Panics if any rune
// is not whitespace.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default behavior, which is to parse
// to EOF.
func StopOn(chars ...rune) ParseOption {
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("mathexpr: cannot stop on " + strconv.QuoteRune(r))
		}
		if have(r) {
			continue
		}
		v = append(v, r)
	}
	return stopopt(v)
}

func (o stopopt) parseOption(p parsectx) parsectx {
	p.stop = string(o)
	return p
}
