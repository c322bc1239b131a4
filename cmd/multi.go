package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TDMillar-Biology/rmtools/config"
	"github.com/TDMillar-Biology/rmtools/internal/batch"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/render"
	"github.com/TDMillar-Biology/rmtools/internal/rm"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

// multiCmd draws one repeat track per control-file row, stacked and
// left-aligned for comparing assemblies or regions side by side.
var multiCmd = &cobra.Command{
	Use:   "plot-multi",
	Short: "Plot repeat tracks for many file/region pairs from a control file",
	Long: `Plot repeat tracks for many file/region pairs from a control file.

The control file is a whitespace table with a header row naming at
least "path" and "region" columns (plus an optional "label"). Each row
is plotted as its own left-aligned track: coordinates are rebased so
every track starts at zero, which lines up homologous regions from
different assemblies. A row that fails is reported and skipped; the
remaining rows still plot.`,
	Run: runPlotMulti,
}

func init() {
	multiCmd.Flags().StringP("control", "c", "", "path to the control file")
	multiCmd.Flags().StringP("taxonomy", "t", "class", "taxonomy level to color by")
	multiCmd.Flags().IntP("bin-size", "b", 50000, "aggregation window in bp")
	multiCmd.Flags().StringP("out", "o", "", "output image path (.png)")

	multiCmd.MarkFlagRequired("control")
	multiCmd.MarkFlagRequired("bin-size")
	multiCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(multiCmd)
}

func runPlotMulti(cmd *cobra.Command, args []string) {
	// bind here, not init: several commands share these keys
	viper.BindPFlag("taxonomy", cmd.Flags().Lookup("taxonomy"))
	viper.BindPFlag("bins.repeat", cmd.Flags().Lookup("bin-size"))

	controlPath, _ := cmd.Flags().GetString("control")
	outPath, _ := cmd.Flags().GetString("out")

	c := config.New()
	level, err := rm.ParseLevel(c.Taxonomy)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	ctl, err := os.Open(controlPath)
	if err != nil {
		stderr.Fatalf("failed to open %s: %v", controlPath, err)
	}
	jobs, skippedRows, err := batch.ParseControl(ctl)
	ctl.Close()
	if err != nil {
		stderr.Fatalf("failed to parse %s: %v", controlPath, err)
	}
	reportSkipped(skippedRows, controlPath)
	if len(jobs) == 0 {
		stderr.Fatalf("no usable jobs in %s", controlPath)
	}

	results := batch.Run(jobs, func(j batch.Job) (track.Track, int, error) {
		return buildMultiTrack(j, c.Bins.Repeat, level)
	})

	var tracks []track.Track
	for _, r := range results {
		if r.Err != nil {
			stderr.Printf("job %s (%s) failed: %v", r.Job.Path, r.Job.Region, r.Err)
			continue
		}
		reportSkipped(r.Skipped, r.Job.Path)
		if r.Track.Empty() {
			stderr.Printf("job %s (%s): no data in region", r.Job.Path, r.Job.Region)
		}
		tracks = append(tracks, r.Track)
	}

	if len(tracks) > 0 {
		if err := render.StackFile(outPath, tracks, renderOptions(c)); err != nil {
			stderr.Fatalf("failed to render %s: %v", outPath, err)
		}
	}
	if failed := batch.Failed(results); failed > 0 {
		stderr.Fatalf("%d of %d jobs failed", failed, len(results))
	}
}

// buildMultiTrack builds one left-aligned repeat track for a batch
// job. Features are clipped to the job's region, then rebased to
// local coordinates so tracks from different assemblies align at
// zero.
func buildMultiTrack(j batch.Job, binSize int, level rm.Level) (track.Track, int, error) {
	feats, skipped, err := parseRMFile(j.Path, "", j.Region.Contig)
	if err != nil {
		return track.Track{}, skipped, err
	}

	reg := j.Region.Resolve(rm.Extent(feats, j.Region.Contig))
	clipped := track.Clip(feats, reg)
	rebased := rm.Rebase(clipped, reg.Start)

	local := region.New(reg.Contig, 0, reg.Width())
	if len(rebased) == 0 {
		// an empty track still renders as an empty lane
		return track.NewRepeat(local, nil, j.Label), skipped, nil
	}

	cov, err := bin.CoverageBins(rebased, local, binSize, level)
	if err != nil {
		return track.Track{}, skipped, err
	}
	return track.NewRepeat(local, cov, j.Label), skipped, nil
}
