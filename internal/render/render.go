// Package render draws panels with go-chart, one sub-chart per track,
// and stacks them into a single PNG that keeps every track on the
// panel's coordinate frame.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/TDMillar-Biology/rmtools/internal/agp"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/panel"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

// Options is the output image geometry.
type Options struct {
	// pixel width of the whole image
	Width int

	// pixel height of one layout unit; a track's height is this
	// times its kind's ratio
	TrackHeight int
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = 1200
	}
	if o.TrackHeight == 0 {
		o.TrackHeight = 120
	}
	return o
}

// FormatError reports an output path whose extension names a format
// the renderer cannot produce.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported plot format %q for %s: only .png output is supported", filepath.Ext(e.Path), e.Path)
}

// WriteFile renders p to path, choosing the format by extension.
func WriteFile(path string, p panel.Panel, opts Options) error {
	if strings.ToLower(filepath.Ext(path)) != ".png" {
		return &FormatError{Path: path}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return PNG(f, p, opts)
}

// PNG renders the panel's tracks top to bottom into w.
func PNG(w io.Writer, p panel.Panel, opts Options) error {
	opts = opts.withDefaults()
	images := make([]image.Image, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		h := opts.TrackHeight * panel.HeightRatio(t.Kind)
		img, err := renderTrack(t, p.Region, opts.Width, h)
		if err != nil {
			return fmt.Errorf("rendering %s track: %w", t.Kind, err)
		}
		images = append(images, img)
	}
	return encodeStacked(w, images)
}

// StackFile renders independent tracks, each over its own region,
// into a vertically stacked PNG at path. Used by batch plotting where
// tracks are left-aligned rather than sharing one frame.
func StackFile(path string, tracks []track.Track, opts Options) error {
	if strings.ToLower(filepath.Ext(path)) != ".png" {
		return &FormatError{Path: path}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	opts = opts.withDefaults()
	images := make([]image.Image, 0, len(tracks))
	for _, t := range tracks {
		h := opts.TrackHeight * panel.HeightRatio(t.Kind)
		img, err := renderTrack(t, t.Region, opts.Width, h)
		if err != nil {
			return fmt.Errorf("rendering %s track %q: %w", t.Kind, t.Label, err)
		}
		images = append(images, img)
	}
	return encodeStacked(f, images)
}

func renderTrack(t track.Track, reg region.Region, width, height int) (image.Image, error) {
	series := seriesFor(t, reg)
	if len(series) == 0 {
		return blank(width, height), nil
	}

	c := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:           "Genomic position (Mb)",
			ValueFormatter: megabase,
			Range: &chart.ContinuousRange{
				Min: float64(reg.Start),
				Max: float64(reg.End),
			},
		},
		YAxis: chart.YAxis{
			Name: yLabel(t.Kind),
		},
		Series: series,
	}
	if t.Kind == track.AGP {
		c.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: float64(maxLayer(t.Components) + 1)}
	}

	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func seriesFor(t track.Track, reg region.Region) []chart.Series {
	switch t.Kind {
	case track.Repeat:
		return coverageSeries(t.Coverage)
	case track.Depth:
		return depthSeries(t.Depth)
	default:
		return componentSeries(t.Components, reg)
	}
}

// coverageSeries turns per-bin taxonomy coverage into one stacked
// step series per taxon, fills down to the previous taxon's top.
func coverageSeries(cov []bin.Coverage) []chart.Series {
	taxa := taxonOrder(cov)
	if len(taxa) == 0 {
		return nil
	}

	tops := make(map[int]float64, len(cov)) // bin index -> running stack top
	var series []chart.Series
	for i, taxon := range taxa {
		xs := make([]float64, 0, 2*len(cov))
		ys := make([]float64, 0, 2*len(cov))
		for j, c := range cov {
			top := tops[j] + float64(c.ByTaxon[taxon])
			tops[j] = top
			xs = append(xs, float64(c.Start), float64(c.End))
			ys = append(ys, top, top)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    taxon,
			XValues: xs,
			YValues: ys,
			Style:   taxonStyle(i, taxon),
		})
	}
	return series
}

// taxonOrder is the deterministic stacking order: taxa sorted by
// name, Unannotated always on top.
func taxonOrder(cov []bin.Coverage) []string {
	seen := make(map[string]bool)
	for _, c := range cov {
		for taxon := range c.ByTaxon {
			seen[taxon] = true
		}
	}
	taxa := make([]string, 0, len(seen))
	for taxon := range seen {
		if taxon != bin.Unannotated {
			taxa = append(taxa, taxon)
		}
	}
	sort.Strings(taxa)
	if seen[bin.Unannotated] {
		taxa = append(taxa, bin.Unannotated)
	}
	return taxa
}

func taxonStyle(i int, taxon string) chart.Style {
	if taxon == bin.Unannotated {
		gray := drawing.Color{R: 230, G: 230, B: 230, A: 255}
		return chart.Style{StrokeColor: gray, StrokeWidth: 1, FillColor: gray}
	}
	c := chart.GetDefaultColor(i)
	return chart.Style{StrokeColor: c, StrokeWidth: 1, FillColor: c.WithAlpha(120)}
}

// depthSeries draws mean depth per bin at the bin midpoint. Each
// contiguous run of data-carrying bins becomes its own series, so a
// no-data bin breaks the line instead of dropping it to zero, and no
// NaN ever reaches go-chart's range computation.
func depthSeries(bins []bin.Bin) []chart.Series {
	var series []chart.Series
	var xs, ys []float64
	flush := func() {
		if len(xs) == 0 {
			return
		}
		if len(xs) == 1 {
			// go-chart needs two x values to lay out a range
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "depth",
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 1},
		})
		xs, ys = nil, nil
	}
	for _, b := range bins {
		v, ok := b.Mean()
		if !ok {
			flush()
			continue
		}
		xs = append(xs, float64(b.Start+b.End)/2)
		ys = append(ys, v)
	}
	flush()
	return series
}

// componentSeries draws each W component as a horizontal bar on its
// own layer lane, clipped to the drawn region. Native coordinates in
// the track stay untouched; only the drawing is clipped.
func componentSeries(comps []agp.Component, reg region.Region) []chart.Series {
	var series []chart.Series
	for _, c := range comps {
		start, end := c.Start, c.End
		if reg.Bounded() {
			if start < reg.Start {
				start = reg.Start
			}
			if end > reg.End {
				end = reg.End
			}
		}
		if start >= end {
			continue
		}
		y := float64(c.Layer) + 0.5
		series = append(series, chart.ContinuousSeries{
			Name:    c.ID,
			XValues: []float64{float64(start), float64(end)},
			YValues: []float64{y, y},
			Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 6},
		})
	}
	return series
}

func maxLayer(comps []agp.Component) int {
	max := 0
	for _, c := range comps {
		if c.Layer > max {
			max = c.Layer
		}
	}
	return max
}

func yLabel(k track.Kind) string {
	switch k {
	case track.Repeat:
		return "Repeat coverage (bp)"
	case track.Depth:
		return "Depth"
	default:
		return "AGP components"
	}
}

// megabase formats x axis ticks as megabases.
func megabase(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f", f/1e6)
}

func blank(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

func encodeStacked(w io.Writer, images []image.Image) error {
	width, height := 0, 0
	for _, img := range images {
		b := img.Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	y := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}
	return png.Encode(w, out)
}
