package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TDMillar-Biology/rmtools/config"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/depth"
	"github.com/TDMillar-Biology/rmtools/internal/panel"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/render"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

// depthCmd draws a read-depth line along one contig region.
var depthCmd = &cobra.Command{
	Use:   "depth-track",
	Short: "Plot read depth along a contig region",
	Long: `Plot read depth along a contig region from a samtools depth -a table.

Depth values are averaged per window. Windows without any covering
sample are drawn as gaps, never as zero: missing evidence and zero
coverage mean different things when judging an assembly.`,
	Run: runDepthTrack,
}

func init() {
	depthCmd.Flags().StringP("depth", "d", "", "path to the samtools depth -a table")
	depthCmd.Flags().StringP("region", "R", "", "region to plot, CHROM or CHROM:START-END")
	depthCmd.Flags().IntP("bin-size", "b", 10000, "aggregation window in bp; 0 plots raw samples")
	depthCmd.Flags().StringP("out", "o", "", "output image path (.png)")

	depthCmd.MarkFlagRequired("depth")
	depthCmd.MarkFlagRequired("region")
	depthCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(depthCmd)
}

func runDepthTrack(cmd *cobra.Command, args []string) {
	// bind here, not init: several commands share this key
	viper.BindPFlag("bins.depth", cmd.Flags().Lookup("bin-size"))

	depthPath, _ := cmd.Flags().GetString("depth")
	regionText, _ := cmd.Flags().GetString("region")
	outPath, _ := cmd.Flags().GetString("out")

	c := config.New()
	reg, err := region.Parse(regionText)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	t, err := buildDepthTrack(depthPath, reg, c.Bins.Depth, "")
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

// buildDepthTrack parses, clips, and bins one depth table into a
// depth track over reg. A binSize of 0 passes raw samples through.
func buildDepthTrack(depthPath string, reg region.Region, binSize int, label string) (track.Track, error) {
	samples, skipped, err := parseDepthFile(depthPath)
	if err != nil {
		return track.Track{}, err
	}
	reportSkipped(skipped, depthPath)

	onContig := make([]depth.Sample, 0, len(samples))
	for _, s := range samples {
		if s.Contig == reg.Contig {
			onContig = append(onContig, s)
		}
	}
	reg = reg.Resolve(depth.Extent(onContig, reg.Contig))

	var bins []bin.Bin
	if binSize > 0 {
		bins, err = bin.DepthBins(onContig, reg, binSize)
		if err != nil {
			return track.Track{}, err
		}
	} else {
		bins = bin.PassthroughDepth(track.ClipSamples(onContig, reg))
	}
	return track.NewDepth(reg, bins, label), nil
}
