// Command graphirctl builds canned graphs, runs named reducer pipelines over
// them, and dumps the result for inspection. It exists to exercise the
// library from outside its own test suite, the way a real front-end driver
// would.
package main

import (
	"os"

	"github.com/kestrelir/graphir/cmd/graphirctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
