package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TDMillar-Biology/rmtools/config"
	"github.com/TDMillar-Biology/rmtools/internal/agp"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/depth"
	"github.com/TDMillar-Biology/rmtools/internal/panel"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/render"
	"github.com/TDMillar-Biology/rmtools/internal/rm"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

// panelCmd draws a multi-track diagnostic panel: repeats, depth and
// scaffold structure stacked over one shared coordinate frame.
var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Plot a multi-track diagnostic panel for one region",
	Long: `Plot a multi-track diagnostic panel for one region.

Any subset of --rm, --depth and --agp may be given (at least one).
Tracks are stacked top to bottom in that order and share one x axis;
a repeat anomaly, a depth anomaly and a scaffold join at the same
coordinate line up visually.`,
	Run: runPanel,
}

func init() {
	panelCmd.Flags().StringP("rm", "r", "", "path to the RepeatMasker .out file")
	panelCmd.Flags().StringP("depth", "d", "", "path to the samtools depth -a table")
	panelCmd.Flags().StringP("agp", "a", "", "path to the AGP file")
	panelCmd.Flags().StringP("region", "R", "", "region to plot, CHROM or CHROM:START-END")
	panelCmd.Flags().StringP("taxonomy", "t", "class", "taxonomy level to color repeats by")
	panelCmd.Flags().Int("rm-bin", 50000, "repeat aggregation window in bp")
	panelCmd.Flags().Int("depth-bin", 10000, "depth aggregation window in bp")
	panelCmd.Flags().StringP("out", "o", "", "output image path (.png)")

	panelCmd.MarkFlagRequired("region")
	panelCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(panelCmd)
}

func runPanel(cmd *cobra.Command, args []string) {
	// bind here, not init: several commands share these keys
	viper.BindPFlag("taxonomy", cmd.Flags().Lookup("taxonomy"))
	viper.BindPFlag("bins.repeat", cmd.Flags().Lookup("rm-bin"))
	viper.BindPFlag("bins.depth", cmd.Flags().Lookup("depth-bin"))

	rmPath, _ := cmd.Flags().GetString("rm")
	depthPath, _ := cmd.Flags().GetString("depth")
	agpPath, _ := cmd.Flags().GetString("agp")
	regionText, _ := cmd.Flags().GetString("region")
	outPath, _ := cmd.Flags().GetString("out")

	c := config.New()
	level, err := rm.ParseLevel(c.Taxonomy)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	reg, err := region.Parse(regionText)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	// parse every requested source first so a whole-contig region
	// resolves to one extent shared by all tracks
	var (
		feats   []rm.Feature
		samples []depth.Sample
		comps   []agp.Component
		extent  int
	)
	if rmPath != "" {
		var skipped int
		feats, skipped, err = parseRMFile(rmPath, "", reg.Contig)
		if err != nil {
			stderr.Fatalf("failed to parse %s: %v", rmPath, err)
		}
		reportSkipped(skipped, rmPath)
		if e := rm.Extent(feats, reg.Contig); e > extent {
			extent = e
		}
	}
	if depthPath != "" {
		all, skipped, err := parseDepthFile(depthPath)
		if err != nil {
			stderr.Fatalf("failed to parse %s: %v", depthPath, err)
		}
		reportSkipped(skipped, depthPath)
		for _, s := range all {
			if s.Contig == reg.Contig {
				samples = append(samples, s)
			}
		}
		if e := depth.Extent(samples, reg.Contig); e > extent {
			extent = e
		}
	}
	if agpPath != "" {
		byContig, skipped, err := parseAGPFile(agpPath)
		if err != nil {
			stderr.Fatalf("failed to parse %s: %v", agpPath, err)
		}
		reportSkipped(skipped, agpPath)
		comps = byContig[reg.Contig]
		if e := agp.Extent(comps); e > extent {
			extent = e
		}
	}
	reg = reg.Resolve(extent)

	var tracks []track.Track
	if rmPath != "" {
		cov, err := bin.CoverageBins(track.Clip(feats, reg), reg, c.Bins.Repeat, level)
		if err != nil {
			stderr.Fatalf("%v", err)
		}
		tracks = append(tracks, track.NewRepeat(reg, cov, "Repeats"))
	}
	if depthPath != "" {
		bins, err := bin.DepthBins(samples, reg, c.Bins.Depth)
		if err != nil {
			stderr.Fatalf("%v", err)
		}
		tracks = append(tracks, track.NewDepth(reg, bins, "Depth"))
	}
	if agpPath != "" {
		tracks = append(tracks, track.NewAGP(reg, comps, "AGP"))
	}

	p, err := panel.Compose(reg, tracks...)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	if err := render.WriteFile(outPath, p, renderOptions(c)); err != nil {
		stderr.Fatalf("failed to render %s: %v", outPath, err)
	}
}
