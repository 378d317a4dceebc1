package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sonar-pick/internal/survey"
)

// CheckCmd returns the check command: dry-run the trace-number consistency
// repair on a comma-separated list of trace numbers.
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <trace numbers>",
		Short: "Check a trace-number sequence for gaps and duplicates",
		Long: `Check a comma-separated trace-number sequence against the expected
contiguous 1..N numbering and show the repaired sequence.

Example:
  sonarpick check 1,2,4,5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := strings.Split(args[0], ",")
			traceNum := make([]int, len(parts))
			for i, p := range parts {
				v, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil {
					return fmt.Errorf("trace number %q: %w", p, err)
				}
				traceNum[i] = v
			}

			badIdx, badVals := survey.CheckTraceNums(traceNum, "cli")
			if len(badIdx) == 0 {
				fmt.Println(color.New(color.FgGreen).Sprint("trace numbering is contiguous"))
				return nil
			}

			fmt.Printf("%s values %v at indices %v\n",
				color.New(color.FgYellow).Sprint("non-contiguous:"), badVals, badIdx)
			fixed, _ := survey.FixTraceNums(traceNum, badIdx, nil)
			fmt.Printf("repaired: %v\n", fixed)
			return nil
		},
	}
}
