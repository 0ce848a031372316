package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taggedzi/creddedupe"
	"github.com/taggedzi/creddedupe/internal/cmd/output"
)

var detectThreshold float64

var detectCmd = &cobra.Command{
	Use:   "detect <file.csv> [file.csv...]",
	Short: "Identify which password manager produced a CSV export",
	Long: `Detect reads the header row of each CSV file and scores it against every
known provider format. Ties and low-confidence matches are reported as
unknown rather than guessed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().Float64Var(&detectThreshold, "threshold", 0, "minimum detection confidence (0 uses the default)")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	var opts []creddedupe.Option
	if detectThreshold > 0 {
		opts = append(opts, creddedupe.WithDetectThreshold(detectThreshold))
	}
	client, err := creddedupe.New(opts...)
	if err != nil {
		return err
	}

	views := make([]output.DetectionView, 0, len(args))
	for _, path := range args {
		res, err := client.DetectFile(path)
		if err != nil {
			return err
		}
		views = append(views, output.NewDetectionView(path, res))
	}

	return output.FormatDetections(os.Stdout, views, format)
}
