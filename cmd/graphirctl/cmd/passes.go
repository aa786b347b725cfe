package cmd

import (
	"fmt"
	"sort"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/schemes/basic/cse"
	"github.com/kestrelir/graphir/schemes/basic/peephole"
	"github.com/kestrelir/graphir/schemes/complex/valuepromotion"
)

// reducerFactory constructs a fresh Reducer: CSE and value promotion carry
// per-run state, so each pipeline run needs its own instance.
type reducerFactory func() graphir.Reducer

var reducerFactories = map[string]reducerFactory{
	"peephole":        func() graphir.Reducer { return peephole.New() },
	"cse":             func() graphir.Reducer { return cse.New() },
	"value-promotion": func() graphir.Reducer { return valuepromotion.New() },
}

func reducerNames() []string {
	names := make([]string, 0, len(reducerFactories))
	for name := range reducerFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildPipeline(names []string) ([]graphir.Reducer, error) {
	out := make([]graphir.Reducer, 0, len(names))
	for _, name := range names {
		factory, ok := reducerFactories[name]
		if !ok {
			return nil, fmt.Errorf("unknown reducer %q (choices: %v)", name, reducerNames())
		}
		out = append(out, factory())
	}
	return out, nil
}
