package mathexpr_test

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"sync"
	"testing"

	"github.com/zephyrtronium/mathexpr"
)

func TestEval(t *testing.T) {
	type vc struct {
		vars mathexpr.Vars[float64]
		r    float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{nil, 1}}},
		{"ident", "x", []vc{
			{mathexpr.Vars[float64]{"x": 4}, 4},
			{mathexpr.Vars[float64]{"x": 5}, 5},
			{mathexpr.Vars[float64]{"x": 6}, 6},
		}},
		{"neg", "-x", []vc{
			{mathexpr.Vars[float64]{"x": 4}, -4},
			{mathexpr.Vars[float64]{"x": -5}, 5},
		}},
		{"negneg", "--x", []vc{{mathexpr.Vars[float64]{"x": 4}, 4}}},
		{"add", "4+5+6", []vc{{nil, 4 + 5 + 6}}},
		{"sub", "4-5-6", []vc{{nil, 4 - 5 - 6}}},
		{"mul", "4*5*6", []vc{{nil, 4 * 5 * 6}}},
		{"div", "4/5/6", []vc{{nil, 4.0 / 5.0 / 6.0}}},
		{"precedence", "2 - 3 + 4 * 3 / 3", []vc{{nil, 3}}},
		{"brackets", "(2 - 3 + 4) * 3 / 3", []vc{{nil, 3}}},
		{"explicit", "((2-3)+((4*3)/3))", []vc{{nil, 3}}},
		{"negfirst", "-2 * 3 + 1", []vc{{nil, -5}}},
		{"parenneg", "2 - (-3)", []vc{{nil, 5}}},
		{"negparen", "-(2 - 3) * 4", []vc{{nil, 4}}},
		{"vars", "x * x - 2 * x * y + y * y", []vc{
			{mathexpr.Vars[float64]{"x": 3, "y": 1}, 4},
			{mathexpr.Vars[float64]{"x": 1, "y": 3}, 4},
			{mathexpr.Vars[float64]{"x": 2, "y": 2}, 0},
		}},
		{"dividezero", "1 / 0", []vc{{nil, math.Inf(1)}}},
		{"inf", "inf - 1", []vc{{nil, math.Inf(1)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := mathexpr.ParseString(c.src, mathexpr.Float64)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				r, err := a.Eval(v.vars, nil)
				if err != nil {
					t.Error("evaluation error:", err)
				}
				if r != v.r {
					t.Errorf("wrong result for %v: want %g, got %g", v.vars, v.r, r)
				}
			}
		})
	}
}

func TestEvalFuncs(t *testing.T) {
	a, err := mathexpr.ParseString("-abs(12 - 13 * 4) + A", mathexpr.Float64)
	if err != nil {
		t.Fatal(err)
	}
	vars := mathexpr.Vars[float64]{"A": 32}
	funcs := mathexpr.Funcs[float64]{"abs": math.Abs}
	r, err := a.Eval(vars, funcs)
	if err != nil {
		t.Fatal(err)
	}
	if r != -8 {
		t.Errorf("wrong result: want -8, got %g", r)
	}
	// The same expression sees new bindings on every evaluation.
	vars["A"] = 40
	funcs["abs"] = func(x float64) float64 { return x }
	if r, err := a.Eval(vars, funcs); err != nil || r != 80 {
		t.Errorf("rebound: want 80, got %g with error %v", r, err)
	}
}

func TestEvalIdempotent(t *testing.T) {
	a, err := mathexpr.ParseString("x / 3 + f(x) * 2", mathexpr.Int)
	if err != nil {
		t.Fatal(err)
	}
	s := a.String()
	vars := mathexpr.Vars[int]{"x": 10}
	funcs := mathexpr.Funcs[int]{"f": func(x int) int { return x - 1 }}
	first, err := a.Eval(vars, funcs)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		r, err := a.Eval(vars, funcs)
		if err != nil {
			t.Fatal(err)
		}
		if r != first {
			t.Errorf("evaluation %d gave %d, first gave %d", i, r, first)
		}
	}
	if first != 21 {
		t.Errorf("wrong result: want 21, got %d", first)
	}
	if a.String() != s {
		t.Errorf("evaluation changed the expression from %s to %s", s, a)
	}
}

func TestEvalConcurrent(t *testing.T) {
	a, err := mathexpr.ParseString("x * x + 1", mathexpr.Int64)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	results := make([]int64, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = a.Eval(mathexpr.Vars[int64]{"x": int64(i)}, nil)
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if errs[i] != nil {
			t.Errorf("x=%d: %v", i, errs[i])
		}
		if want := int64(i*i + 1); r != want {
			t.Errorf("x=%d: want %d, got %d", i, want, r)
		}
	}
}

func TestEvalGeneric(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		i     int64
		f     float64
		float float32
	}{
		{"precedence", "2 - 3 + 4 * 3 / 3", 3, 3, 3},
		{"truncate", "7 / 2", 3, 3.5, 3.5},
		{"negtruncate", "-7 / 2", -3, -3.5, -3.5},
		{"chain", "100 / 7 / 2", 7, 100.0 / 7 / 2, 100.0 / 7 / 2},
		{"brackets", "(1 + 2) * (3 - 4)", -3, -3, -3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i, err := mathexpr.EvalString(c.src, mathexpr.Int64, nil, nil)
			if err != nil {
				t.Errorf("int64: %v", err)
			}
			if i != c.i {
				t.Errorf("int64: want %d, got %d", c.i, i)
			}
			f, err := mathexpr.EvalString(c.src, mathexpr.Float64, nil, nil)
			if err != nil {
				t.Errorf("float64: %v", err)
			}
			if f != c.f {
				t.Errorf("float64: want %g, got %g", c.f, f)
			}
			g, err := mathexpr.EvalString(c.src, mathexpr.Float32, nil, nil)
			if err != nil {
				t.Errorf("float32: %v", err)
			}
			if g != c.float {
				t.Errorf("float32: want %g, got %g", c.float, g)
			}
		})
	}
}

func TestEvalIntDivideByZero(t *testing.T) {
	a, err := mathexpr.ParseString("1 / x", mathexpr.Int)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("integer division by zero did not panic")
		}
		if _, ok := r.(error); !ok {
			t.Errorf("panic with non-error %v", r)
		}
	}()
	a.Eval(mathexpr.Vars[int]{"x": 0}, nil)
}

func TestEvalBig(t *testing.T) {
	arith := mathexpr.Big(128)
	a, err := mathexpr.ParseString("x / 3 * 3 - x", arith)
	if err != nil {
		t.Fatal(err)
	}
	x := big.NewFloat(1)
	r, err := a.Eval(mathexpr.Vars[*big.Float]{"x": x}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Prec() != 128 {
		t.Errorf("wrong precision: want 128, got %d", r.Prec())
	}
	if f, _ := r.Float64(); math.Abs(f) > 1e-30 {
		t.Errorf("wrong result: want 0, got %g", r)
	}
	if x.Cmp(big.NewFloat(1)) != 0 {
		t.Errorf("evaluation modified variable to %g", x)
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    string
	}{
		{"x", "x", "x"},
		{"neg", "-X", "X"},
		{"add-lhs", "x+1", "x"},
		{"add-rhs", "1+x", "x"},
		{"sub-lhs", "x-1", "x"},
		{"sub-rhs", "1-x", "x"},
		{"mul-lhs", "x*1", "x"},
		{"mul-rhs", "1*x", "x"},
		{"div-lhs", "x/1", "x"},
		{"div-rhs", "1/x", "x"},
		{"call", "abs(x)", "x"},
		{"first", "x + y", "x"},
		{"depth", "(1 + y) * x", "y"},
	}
	ure := regexp.MustCompile(`(?i)\bundef`)
	vre := regexp.MustCompile(`(?i)\bvar`)
	tables := []struct {
		name string
		vars mathexpr.Vars[float64]
	}{
		{"nil", nil},
		{"empty", mathexpr.Vars[float64]{}},
		{"other", mathexpr.Vars[float64]{"z": 1}},
	}
	funcs := mathexpr.FloatFuncs[float64]()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := mathexpr.ParseString(c.src, mathexpr.Float64)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			for _, tab := range tables {
				r, err := a.Eval(tab.vars, funcs)
				if err == nil {
					t.Fatalf("evaluating %q with %s table gave no error", c.src, tab.name)
				}
				if r != 0 {
					t.Errorf("evaluating %q gave non-zero result %g", c.src, r)
				}
				var u *mathexpr.NameError
				if !errors.As(err, &u) {
					t.Fatalf("error was %#v, not NameError", err)
				}
				if u.Name != c.r {
					t.Errorf("NameError on %q, want %q", u.Name, c.r)
				}
				msg := err.Error()
				if !ure.MatchString(msg) {
					t.Errorf(`%q doesn't mention "undef"`, msg)
				}
				if !vre.MatchString(msg) {
					t.Errorf(`%q doesn't mention "var"`, msg)
				}
			}
		})
	}
}

func TestEvalUndefFuncs(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		funcs mathexpr.Funcs[float64]
		r     string
	}{
		{"nil", "f(1)", nil, "f"},
		{"empty", "f(1)", mathexpr.Funcs[float64]{}, "f"},
		{"other", "f(1)", mathexpr.Funcs[float64]{"g": math.Abs}, "f"},
		{"nilfunc", "f(1)", mathexpr.Funcs[float64]{"f": nil}, "f"},
		{"inner", "f(g(1))", mathexpr.Funcs[float64]{"f": math.Abs}, "g"},
		{"outer", "f(g(1))", mathexpr.Funcs[float64]{"g": math.Abs}, "f"},
		{"neg", "-h(1) + 2", nil, "h"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := mathexpr.ParseString(c.src, mathexpr.Float64)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			_, err = a.Eval(nil, c.funcs)
			var u *mathexpr.FuncError
			if !errors.As(err, &u) {
				t.Fatalf("error was %#v, not FuncError", err)
			}
			if u.Name != c.r {
				t.Errorf("FuncError on %q, want %q", u.Name, c.r)
			}
			if !regexp.MustCompile(`(?i)\bundefined function\b`).MatchString(err.Error()) {
				t.Errorf("%q doesn't mention an undefined function", err)
			}
		})
	}
}

func TestEvalArgumentFirst(t *testing.T) {
	// A call evaluates its argument before looking up the function.
	a, err := mathexpr.ParseString("f(x)", mathexpr.Float64)
	if err != nil {
		t.Fatal(err)
	}
	_, err = a.Eval(nil, nil)
	if _, ok := err.(*mathexpr.NameError); !ok {
		t.Errorf("error was %#v, not NameError", err)
	}
}

func TestEvalFuncError(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"sqrt", "sqrt(-1)"},
		{"ln", "ln(-1)"},
		{"log", "log(0 - 1)"},
		{"nested", "1 + abs(sqrt(-4))"},
	}
	funcs := mathexpr.BigFuncs(64)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := mathexpr.EvalString(c.src, mathexpr.Big(64), nil, funcs)
			if err == nil {
				t.Fatalf("evaluating %q gave no error", c.src)
			}
			if r == nil || r.Sign() != 0 {
				t.Errorf("evaluating %q gave non-zero result %v", c.src, r)
			}
			var de *mathexpr.DomainError
			if !errors.As(err, &de) {
				t.Fatalf("%#v is not *mathexpr.DomainError", err)
			}
			if de.Func == "" {
				t.Errorf("%v does not name a function", err)
			}
		})
	}
}

func TestEvalRecoversNaN(t *testing.T) {
	funcs := mathexpr.Funcs[*big.Float]{
		"bad": func(x *big.Float) *big.Float {
			return new(big.Float).Sub(x, x)
		},
		"huge": func(x *big.Float) *big.Float {
			return new(big.Float).SetInf(false)
		},
	}
	// inf - inf in a function is reported with the function's name.
	_, err := mathexpr.EvalString("bad(huge(1))", mathexpr.Big(0), nil, funcs)
	var de *mathexpr.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("%#v is not *mathexpr.DomainError", err)
	}
	if de.Func != "bad" {
		t.Errorf("wrong function: want bad, got %q", de.Func)
	}
	if !errors.As(err, new(big.ErrNaN)) {
		t.Errorf("%v does not unwrap to big.ErrNaN", err)
	}
}

func TestEvalOtherPanics(t *testing.T) {
	funcs := mathexpr.Funcs[int]{"boom": func(int) int { panic("boom") }}
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("wrong panic: %v", r)
		}
	}()
	mathexpr.EvalString("boom(1)", mathexpr.Int, nil, funcs)
}

func BenchmarkEval(b *testing.B) {
	vars := mathexpr.Vars[float64]{
		"x": 2,
		"y": 3,
		"z": 4,
	}
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		a, err := mathexpr.ParseString("2+3+4", mathexpr.Float64)
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(nil, nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		a, err := mathexpr.ParseString("x+y+z", mathexpr.Float64)
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(vars, nil)
		}
	})
	b.Run("big", func(b *testing.B) {
		b.ReportAllocs()
		a, err := mathexpr.ParseString("x*y/z-x", mathexpr.Big(64))
		if err != nil {
			b.Fatal(err)
		}
		vars := mathexpr.Vars[*big.Float]{
			"x": big.NewFloat(2),
			"y": big.NewFloat(3),
			"z": big.NewFloat(4),
		}
		for i := 0; i < b.N; i++ {
			a.Eval(vars, nil)
		}
	})
}

func Example() {
	var (
		fx   = "x*x*x/2 - x"
		dfx  = "3*x*x/2 - 1"
		ddfx = "3*x"
	)
	a, _ := mathexpr.ParseString(fx, mathexpr.Float64)
	b, _ := mathexpr.ParseString(dfx, mathexpr.Float64)
	c, _ := mathexpr.ParseString(ddfx, mathexpr.Float64)

	for i := 0; i < 4; i++ {
		vars := mathexpr.Vars[float64]{"x": float64(i)}
		y, _ := a.Eval(vars, nil)
		yp, _ := b.Eval(vars, nil)
		ypp, _ := c.Eval(vars, nil)
		fmt.Printf("x = %d   y = %-4g  y' = %-4g  y'' = %g\n", i, y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0     y' = -1    y'' = 0
	// x = 1   y = -0.5  y' = 0.5   y'' = 3
	// x = 2   y = 2     y' = 5     y'' = 6
	// x = 3   y = 10.5  y' = 12.5  y'' = 9
}
