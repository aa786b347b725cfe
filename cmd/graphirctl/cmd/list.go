package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available fixtures and reducers",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("fixtures:")
		for _, name := range fixtureNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("reducers:")
		for _, name := range reducerNames() {
			fmt.Printf("  %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
