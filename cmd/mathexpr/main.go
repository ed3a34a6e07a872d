package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"runtime"
	"strings"
	"unicode"

	"github.com/zephyrtronium/mathexpr"
	"github.com/zephyrtronium/mathexpr/bindings"
)

type options struct {
	verb  string
	with  [][2]string
	binds *bindings.File
	nl    bool
	echo  bool
}

func main() {
	log.SetFlags(0)
	var (
		inname, typ, bindname string
		opts                  options
		prec                  int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		opts.with = append(opts.with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&opts.verb, "fmt", "%v", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.StringVar(&bindname, "bindings", "", "YAML or JSON file of variables and functions")
	flag.StringVar(&typ, "type", "float64", "scalar type: int, int32, int64, float32, float64, or big")
	flag.IntVar(&prec, "p", 64, "precision of big calculations in bits")
	flag.BoolVar(&opts.nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&opts.echo, "echo", false, "print parse trees")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}
	if bindname != "" {
		f, err := bindings.Load(bindname)
		if err != nil {
			log.Fatal(err)
		}
		opts.binds = f
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	switch typ {
	case "int":
		run(ins, mathexpr.Int, mathexpr.IntFuncs[int](), opts)
	case "int32":
		run(ins, mathexpr.Int32, mathexpr.IntFuncs[int32](), opts)
	case "int64":
		run(ins, mathexpr.Int64, mathexpr.IntFuncs[int64](), opts)
	case "float32":
		run(ins, mathexpr.Float32, mathexpr.FloatFuncs[float32](), opts)
	case "float64":
		run(ins, mathexpr.Float64, mathexpr.FloatFuncs[float64](), opts)
	case "big":
		run(ins, mathexpr.Big(uint(prec)), mathexpr.BigFuncs(uint(prec)), opts)
	default:
		log.Fatalf("unknown type %q", typ)
	}
}

func run[T any](ins []io.RuneScanner, arith mathexpr.Arith[T], lib mathexpr.Funcs[T], opts options) {
	vars, funcs := make(mathexpr.Vars[T]), lib
	if opts.binds != nil {
		var err error
		vars, funcs, err = bindings.Bind(opts.binds, arith, lib)
		if err != nil {
			log.Fatalf("bindings: %v", err)
		}
	}
	for _, d := range opts.with {
		nm := d[0]
		vl := d[1]
		r, err := mathexpr.EvalString(vl, arith, vars, funcs)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		vars[nm] = r
	}

	var p []*mathexpr.Expr[T]
	var popts []mathexpr.ParseOption
	if opts.nl {
		popts = append(popts, mathexpr.StopOn('\n'))
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input, skipping blank
			// lines between expressions.
			c, _, err := in.ReadRune()
			if err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			if unicode.IsSpace(c) {
				continue
			}
			in.UnreadRune()
			a, err := mathexpr.Parse(in, arith, popts...)
			if err != nil {
				log.Fatal(err)
			}
			p = append(p, a)
		}
	}

	verb := opts.verb + "\n"
	for _, a := range p {
		if opts.echo {
			fmt.Printf("%v : ", a)
		}
		r, err := eval(a, vars, funcs)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

// eval evaluates a, reporting integer division by zero and big.Float NaNs as
// errors.
func eval[T any](a *mathexpr.Expr[T], vars mathexpr.Vars[T], funcs mathexpr.Funcs[T]) (r T, err error) {
	defer func() {
		if p := recover(); p != nil {
			switch e := p.(type) {
			case runtime.Error:
				err = e
			case big.ErrNaN:
				err = e
			default:
				panic(p)
			}
		}
	}()
	return a.Eval(vars, funcs)
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
