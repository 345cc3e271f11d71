package stackgen

import (
	"io"

	"github.com/railwayapp/stackgen/internal/detection"
	"github.com/spf13/cobra"
)

var detectFormat string

var detectCmd = &cobra.Command{
	Use:   "detect [path]",
	Short: "Detect the framework a project is built on",
	Long: `Detect scores every known framework against the project and prints the
primary match with its variant and target platforms. The path may be a local
directory, a file inside one, a git URL or a github:// URI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVarP(&detectFormat, "format", "f", formatText, "output format: text, json, yaml")
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := openProject(ctx, args)
	if err != nil {
		return err
	}
	defer p.Close()

	opts := append(cfg.DetectionOptions(), detection.WithLogger(logger))
	result, err := detection.NewDetector(p.fs, opts...).Detect(ctx, p.root)
	if err != nil {
		return err
	}

	return emit(cmd.OutOrStdout(), detectFormat, result, func(w io.Writer) {
		printDetection(w, result)
	})
}
