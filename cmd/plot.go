package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TDMillar-Biology/rmtools/config"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/panel"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/render"
	"github.com/TDMillar-Biology/rmtools/internal/rm"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

// plotCmd draws repeat annotations along one contig region.
var plotCmd = &cobra.Command{
	Use:   "plot-contig",
	Short: "Plot repeat annotations along a contig region",
	Long: `Plot repeat annotations along a contig region.

Without --bin-size, each annotation is drawn as a raw interval. With it,
annotations are aggregated into fixed windows: per-taxonomy coverage
composition (default), the dominant taxon per window, or per-taxon
feature counts, selected with --mode.`,
	Run: runPlotContig,
}

func init() {
	plotCmd.Flags().StringP("rm", "r", "", "path to the RepeatMasker .out file")
	plotCmd.Flags().StringP("region", "R", "", "region to plot, CHROM or CHROM:START-END")
	plotCmd.Flags().StringP("taxonomy", "t", "class", "taxonomy level to color by: class, family or name")
	plotCmd.Flags().IntP("bin-size", "b", 0, "aggregation window in bp; 0 plots raw intervals")
	plotCmd.Flags().StringP("mode", "m", "composition", "binned aggregation mode: composition, dominant or count")
	plotCmd.Flags().StringP("out", "o", "", "output image path (.png)")

	plotCmd.MarkFlagRequired("rm")
	plotCmd.MarkFlagRequired("region")
	plotCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(plotCmd)
}

func runPlotContig(cmd *cobra.Command, args []string) {
	// bind here, not init: several commands share these keys
	viper.BindPFlag("taxonomy", cmd.Flags().Lookup("taxonomy"))

	rmPath, _ := cmd.Flags().GetString("rm")
	regionText, _ := cmd.Flags().GetString("region")
	binSize, _ := cmd.Flags().GetInt("bin-size")
	modeText, _ := cmd.Flags().GetString("mode")
	outPath, _ := cmd.Flags().GetString("out")

	c := config.New()
	level, err := rm.ParseLevel(c.Taxonomy)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	mode, err := bin.ParseMode(modeText)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	reg, err := region.Parse(regionText)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	t, err := buildRepeatTrack(rmPath, reg, binSize, level, mode, "")
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	p, err := panel.Compose(t.Region, t)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	if err := render.WriteFile(outPath, p, renderOptions(c)); err != nil {
		stderr.Fatalf("failed to render %s: %v", outPath, err)
	}
}

// buildRepeatTrack parses, clips, and bins one RepeatMasker file into
// a repeat track over reg. A binSize of 0 passes raw intervals
// through unbinned, ignoring mode.
func buildRepeatTrack(rmPath string, reg region.Region, binSize int, level rm.Level, mode bin.Mode, label string) (track.Track, error) {
	feats, skipped, err := parseRMFile(rmPath, "", reg.Contig)
	if err != nil {
		return track.Track{}, err
	}
	reportSkipped(skipped, rmPath)

	reg = reg.Resolve(rm.Extent(feats, reg.Contig))
	feats = track.Clip(feats, reg)

	var cov []bin.Coverage
	switch {
	case binSize <= 0:
		cov = bin.PassthroughCoverage(feats, level)
	case mode == bin.Dominant:
		cov, err = bin.DominantBins(feats, reg, binSize, level)
	case mode == bin.Count:
		cov, err = bin.CountBins(feats, reg, binSize, level)
	default:
		cov, err = bin.CoverageBins(feats, reg, binSize, level)
	}
	if err != nil {
		return track.Track{}, err
	}
	return track.NewRepeat(reg, cov, label), nil
}
