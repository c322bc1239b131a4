package cmd

import (
	"os"

	"github.com/TDMillar-Biology/rmtools/config"
	"github.com/TDMillar-Biology/rmtools/internal/agp"
	"github.com/TDMillar-Biology/rmtools/internal/depth"
	"github.com/TDMillar-Biology/rmtools/internal/render"
	"github.com/TDMillar-Biology/rmtools/internal/rm"
)

// parseRMFile reads and parses a RepeatMasker .out file, closing it on
// every path.
func parseRMFile(path, strain, contigFilter string) ([]rm.Feature, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return rm.Parse(f, strain, contigFilter)
}

func parseDepthFile(path string) ([]depth.Sample, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return depth.Parse(f)
}

func parseAGPFile(path string) (map[string][]agp.Component, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return agp.Parse(f)
}

// reportSkipped surfaces the row-scoped malformed record count that
// parsers recover from locally.
func reportSkipped(skipped int, path string) {
	if skipped > 0 {
		stderr.Printf("skipped %d malformed row(s) in %s", skipped, path)
	}
}

func renderOptions(c *config.Config) render.Options {
	return render.Options{
		Width:       c.Plot.Width,
		TrackHeight: c.Plot.TrackHeight,
	}
}
