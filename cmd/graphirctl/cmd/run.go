package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	graphir "github.com/kestrelir/graphir"
	"github.com/kestrelir/graphir/diag"
	"github.com/kestrelir/graphir/dot"
	"github.com/kestrelir/graphir/schedule"
)

var (
	runFixture string
	runPasses  []string
	runFormat  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a fixture, reduce it, and print the result",
	Example: `  graphirctl run --fixture branching --pass peephole,cse --format dot
  graphirctl run --fixture looping --pass value-promotion --format tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		build, err := lookupFixture(runFixture)
		if err != nil {
			return err
		}
		pipeline, err := buildPipeline(splitPasses(runPasses))
		if err != nil {
			return err
		}

		logger := Logger()
		g := graphir.New(logger)
		sink := diag.NewSink(logger)
		b := graphir.NewBuilder(g, sink)

		tail := build(g, b)
		sg := graphir.NewSubGraph(tail)

		var stats graphir.Stats
		if len(pipeline) > 0 {
			stats = graphir.Run(g, []graphir.SubGraph{sg}, pipeline...)
			logger.Info("pipeline finished", "visited", stats.NodesVisited, "replaced", stats.Replacements, "trimmed", stats.NodesTrimmed)
		}

		defer sink.Close()

		switch runFormat {
		case "dot":
			return dot.Dump(os.Stdout, sg)
		case "tree":
			fmt.Println(dot.Tree(sg))
			return nil
		case "blocks":
			for _, blk := range schedule.Blocks(sg) {
				fmt.Printf("%s:\n", blk.Point)
				for _, n := range blk.Nodes {
					fmt.Printf("  %s\n", n)
				}
			}
			return nil
		default:
			return fmt.Errorf("unknown format %q (choices: dot, tree, blocks)", runFormat)
		}
	},
}

func splitPasses(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func init() {
	runCmd.Flags().StringVar(&runFixture, "fixture", "straight-line", fmt.Sprintf("fixture to build (choices: %v)", fixtureNames()))
	runCmd.Flags().StringSliceVar(&runPasses, "pass", nil, fmt.Sprintf("reducer(s) to run, comma-separated (choices: %v)", reducerNames()))
	runCmd.Flags().StringVar(&runFormat, "format", "tree", "output format: dot, tree, or blocks")
	rootCmd.AddCommand(runCmd)
}
