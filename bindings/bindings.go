// Package bindings loads variable and function bindings for expressions from
// YAML or JSON files.
//
// A bindings file has two optional keys:
//
//	variables:
//	  g: 9.8
//	  tau: 2 * pi
//	functions: [sqrt, abs]
//
// Variables are numbers or expressions. Expressions are evaluated with the
// selected function library and no variables. Functions name entries of a
// library; if the list is empty, every function in the library is bound.
package bindings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/mathexpr"
)

// File is the decoded contents of a bindings file.
type File struct {
	Variables map[string]any `yaml:"variables" json:"variables"`
	Functions []string       `yaml:"functions" json:"functions"`
}

// Load reads a bindings file, choosing the format by extension.
// Supported extensions: .yaml, .yml, .json
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported bindings file extension: %s", ext)
	}
}

// FromYAML parses YAML bindings.
func FromYAML(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &f, nil
}

// FromJSON parses JSON bindings. Numbers keep their source text.
func FromJSON(data []byte) (*File, error) {
	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &f, nil
}

// Bind converts the file's bindings to tables for evaluating expressions with
// arith. Functions come from lib.
func Bind[T any](f *File, arith mathexpr.Arith[T], lib mathexpr.Funcs[T]) (mathexpr.Vars[T], mathexpr.Funcs[T], error) {
	funcs := make(mathexpr.Funcs[T], len(lib))
	if len(f.Functions) == 0 {
		for name, fn := range lib {
			funcs[name] = fn
		}
	}
	for _, name := range f.Functions {
		fn := lib[name]
		if fn == nil {
			return nil, nil, fmt.Errorf("unknown function %q", name)
		}
		funcs[name] = fn
	}

	names := make([]string, 0, len(f.Variables))
	for name := range f.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	vars := make(mathexpr.Vars[T], len(names))
	for _, name := range names {
		v, err := value(f.Variables[name], arith, funcs)
		if err != nil {
			return nil, nil, fmt.Errorf("variable %s: %w", name, err)
		}
		vars[name] = v
	}
	return vars, funcs, nil
}

// value converts a decoded variable to a scalar.
func value[T any](v any, arith mathexpr.Arith[T], funcs mathexpr.Funcs[T]) (T, error) {
	switch v := v.(type) {
	case string:
		return mathexpr.EvalString(v, arith, nil, funcs)
	case json.Number:
		return arith.Parse(v.String())
	case int:
		return arith.Parse(strconv.Itoa(v))
	case int64:
		return arith.Parse(strconv.FormatInt(v, 10))
	case uint64:
		return arith.Parse(strconv.FormatUint(v, 10))
	case float64:
		if math.IsNaN(v) {
			return arith.Zero(), fmt.Errorf("value is NaN")
		}
		return arith.Parse(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return arith.Zero(), fmt.Errorf("unsupported value %v of type %T", v, v)
	}
}
