package cmd

import (
	"fmt"
	"sort"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/hazmat/ir"
	"github.com/kestrelir/graphir/internal/graphtest"
)

// fixtureFunc builds a canned function body and returns its tail (End) node.
type fixtureFunc func(g *graphir.Graph, b *graphir.Builder) *ir.Node

var fixtures = map[string]fixtureFunc{
	"straight-line": graphtest.StraightLine,
	"branching":     graphtest.Branching,
	"looping":       graphtest.Looping,
}

func fixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupFixture(name string) (fixtureFunc, error) {
	fn, ok := fixtures[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture %q (choices: %v)", name, fixtureNames())
	}
	return fn, nil
}
