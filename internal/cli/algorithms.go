// Package cli implements the sonarpick subcommands.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sonar-pick/internal/algorithm"
)

// AlgorithmsCmd returns the algorithms command.
func AlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the registered surface-picking algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, name := range algorithm.Names() {
				alg, err := algorithm.New(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%v\n",
					color.New(color.Bold).Sprint(name), alg.LineKind(), alg.ArgList())
			}
			return w.Flush()
		},
	}
}

// DescribeCmd returns the describe command.
func DescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <algorithm name>",
		Short: "Show an algorithm's operating instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := algorithm.New(args[0])
			if err != nil {
				return err
			}
			fmt.Println(color.New(color.Bold).Sprint(alg.Name()))
			fmt.Printf("produces: %s\n\n", alg.LineKind())
			fmt.Println(alg.Instructions())
			return nil
		},
	}
}
