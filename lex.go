package mathexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// fragment is a piece of the input text: a single operator or bracket, or a
// maximal run of any other non-space runes.
type fragment struct {
	text string
	// pos is the 1-based rune column of the fragment's first rune.
	pos int
}

func (f fragment) String() string {
	return f.text + "@" + strconv.Itoa(f.pos)
}

// Operators contains the runes which are binary operators. Minus is also unary
// at the start of a group.
const Operators = "+-*/"

// Brackets contains the open and close bracket runes, in that order.
const Brackets = "()"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	// stop is a string containing the whitespace runes that end the input.
	stop string
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// lex splits the entire input into fragments. Any text lexes; the only errors
// are read errors from src other than io.EOF.
func lex(src io.RuneScanner, stop string) ([]fragment, error) {
	l := lexer{src: src, stop: stop}
	var frags []fragment
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return frags, nil
			}
			return frags, err
		}
		switch {
		case unicode.IsSpace(r):
			if strings.ContainsRune(l.stop, r) {
				return frags, nil
			}
		case strings.ContainsRune(Operators+Brackets, r):
			frags = append(frags, fragment{text: string(r), pos: l.rune})
		default:
			pos := l.rune
			l.unreadRune()
			if err := l.scanWord(); err != nil {
				return frags, err
			}
			frags = append(frags, fragment{text: l.buf.String(), pos: pos})
			l.buf.Reset()
		}
	}
}

// scanWord scans a number or name into l.buf.
func (l *lexer) scanWord() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// lex unreads the rune that decides word scanning before
				// calling scanWord, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if unicode.IsSpace(r) || strings.ContainsRune(Operators+Brackets, r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}
