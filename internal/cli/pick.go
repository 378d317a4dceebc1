package cli

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sonar-pick/internal/algorithm"
	"sonar-pick/internal/project"
	"sonar-pick/internal/survey"
)

// PickCmd returns the pick command: run a surface-picking algorithm over a
// raster image and write the resulting depth line as CSV.
func PickCmd() *cobra.Command {
	var (
		algName         string
		output          string
		threshold       float64
		thresholdOffset float64
		blankAbove      float64
		blankBelow      float64
		resolution      float64
		draft           float64
		currentCSV      string
		currentName     string
		projectPath     string
	)

	cmd := &cobra.Command{
		Use:   "pick <raster>",
		Short: "Run a surface-picking algorithm over an intensity raster",
		Long: `Load a grayscale intensity raster (TIFF, PNG or JPEG), treat it as a
single-frequency survey line and run the named algorithm over it.

The pre-impoundment picker needs a current-surface reference; supply one as
a trace,depth CSV with --current-surface-csv.

Examples:
  sonarpick pick line42.tiff -o line42_surface.csv
  sonarpick pick line42.tiff -a "PreImpoundment Threshold Algorithm" \
      --current-surface-csv line42_surface.csv -o line42_preimp.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadRaster(args[0])
			if err != nil {
				return err
			}
			rows, cols := img.Dims()
			fmt.Printf("Loaded raster: %d depth pixels x %d traces\n", rows, cols)

			line := syntheticLine(args[0], img, resolution, draft)

			var proj *project.File
			if projectPath != "" {
				proj, err = project.Load(projectPath)
				if err != nil {
					proj = project.New(line.Name, "")
				} else if err := proj.Restore(line); err != nil {
					return fmt.Errorf("restore %s: %w", projectPath, err)
				}
			}

			if currentCSV != "" {
				ref, err := readDepthCSV(currentCSV, currentName)
				if err != nil {
					return err
				}
				if err := line.AddDepthLine(ref); err != nil {
					return err
				}
			}

			alg, err := algorithm.New(algName)
			if err != nil {
				return err
			}
			configure(alg, threshold, thresholdOffset, blankAbove, blankBelow, currentName)
			if err := alg.ValidateParams(); err != nil {
				return err
			}

			dl, err := survey.Apply(alg, line, "cli_pick", false)
			if err != nil {
				return err
			}

			depths := dl.DepthArray()
			finite := 0
			minD, maxD := math.Inf(1), math.Inf(-1)
			for _, d := range depths {
				if math.IsNaN(d) {
					continue
				}
				finite++
				minD = math.Min(minD, d)
				maxD = math.Max(maxD, d)
			}
			fmt.Printf("%s %d picks, depth range %.3f - %.3f\n",
				color.New(color.FgGreen).Sprint("picked:"), finite, minD, maxD)

			if output == "" {
				output = args[0] + ".depths.csv"
			}
			traceNum := make([]int, len(dl.IndexArray()))
			for i, idx := range dl.IndexArray() {
				traceNum[i] = idx + 1
			}
			if err := writeDepthCSV(output, traceNum, depths); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", output)

			if proj != nil {
				proj.Store(line)
				if err := proj.Save(projectPath); err != nil {
					return err
				}
				fmt.Printf("saved %s\n", projectPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algName, "algorithm", "a", algorithm.CurrentSurfaceName, "registered algorithm name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (default <raster>.depths.csv)")
	cmd.Flags().Float64Var(&threshold, "threshold", -0.1, "manual threshold in [0,1]; negative for Otsu")
	cmd.Flags().Float64Var(&thresholdOffset, "threshold-offset", 0, "offset added to the automatic threshold")
	cmd.Flags().Float64Var(&blankAbove, "blank-above", -1, "ignore image above this depth (current surface only)")
	cmd.Flags().Float64Var(&blankBelow, "blank-below", -1, "ignore image below this depth (current surface only)")
	cmd.Flags().Float64Var(&resolution, "resolution", 0.01, "physical depth per image row")
	cmd.Flags().Float64Var(&draft, "draft", 0, "sensor draft offset added to every depth")
	cmd.Flags().StringVar(&currentCSV, "current-surface-csv", "", "trace,depth CSV used as the current-surface reference")
	cmd.Flags().StringVar(&currentName, "current-surface-name", "current_surface_from_csv", "name for the reference line")
	cmd.Flags().StringVar(&projectPath, "project", "", "project file to restore from and save picks into")

	return cmd
}

// configure pushes the shared flag values into whichever picker was chosen.
func configure(alg algorithm.Algorithm, threshold, offset, blankAbove, blankBelow float64, currentName string) {
	switch a := alg.(type) {
	case *algorithm.CurrentSurfaceThreshold:
		a.Threshold = threshold
		a.ThresholdOffset = offset
		a.BlankAboveDistance = blankAbove
		a.BlankBelowDistance = blankBelow
	case *algorithm.PreImpoundmentThreshold:
		a.Threshold = threshold
		a.ThresholdOffset = offset
		a.CurrentSurfaceLine = currentName
	}
}
