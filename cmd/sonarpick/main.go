// Command sonarpick runs the depth-line extraction algorithms from the
// command line: list and describe the registered pickers, run one over an
// intensity raster, or check trace numbering.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"sonar-pick/internal/cli"
	"sonar-pick/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	rootCmd := &cobra.Command{
		Use:     "sonarpick",
		Short:   "Depth-line extraction for sonar survey lines",
		Version: version.String(),
		Long: `sonarpick derives depth profiles from side-scan sonar intensity rasters:
the current lake-bed surface and the pre-impoundment surface beneath the
accumulated sediment.`,
	}

	rootCmd.AddCommand(cli.AlgorithmsCmd())
	rootCmd.AddCommand(cli.DescribeCmd())
	rootCmd.AddCommand(cli.PickCmd())
	rootCmd.AddCommand(cli.CheckCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
