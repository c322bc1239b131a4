package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"reflect"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/TDMillar-Biology/rmtools/internal/agp"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/panel"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

func Test_WriteFile_rejectsNonPNG(t *testing.T) {
	p := panel.Panel{Region: region.New("X", 0, 100)}
	for _, path := range []string{"out.svg", "out.pdf", "out"} {
		err := WriteFile(path, p, Options{})
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("WriteFile(%q) error = %v, want *FormatError", path, err)
		}
	}
}

func Test_taxonOrder(t *testing.T) {
	cov := []bin.Coverage{
		{Start: 0, End: 50, ByTaxon: map[string]int{"LINE": 10, bin.Unannotated: 40}},
		{Start: 50, End: 100, ByTaxon: map[string]int{"DNA": 5, "LINE": 2, bin.Unannotated: 43}},
	}
	got := taxonOrder(cov)
	want := []string{"DNA", "LINE", bin.Unannotated}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("taxonOrder() = %v, want %v", got, want)
	}
}

func Test_depthSeries_splitsAtMissingData(t *testing.T) {
	bins := []bin.Bin{
		{Start: 0, End: 50, Value: 12, Count: 50},
		{Start: 50, End: 100, Value: math.NaN(), Count: 0},
		{Start: 100, End: 150, Value: 9, Count: 50},
		{Start: 150, End: 200, Value: 7, Count: 50},
	}
	series := depthSeries(bins)
	if len(series) != 2 {
		t.Fatalf("depthSeries() series = %d, want 2 runs around the gap", len(series))
	}
	first := series[0].(chart.ContinuousSeries)
	// single-bin run padded to two points
	if !reflect.DeepEqual(first.YValues, []float64{12, 12}) {
		t.Errorf("first run values = %v, want [12 12]", first.YValues)
	}
	second := series[1].(chart.ContinuousSeries)
	if !reflect.DeepEqual(second.XValues, []float64{125, 175}) {
		t.Errorf("second run midpoints = %v, want [125 175]", second.XValues)
	}
	if !reflect.DeepEqual(second.YValues, []float64{9, 7}) {
		t.Errorf("second run values = %v, want [9 7]", second.YValues)
	}
	for i, s := range series {
		for _, y := range s.(chart.ContinuousSeries).YValues {
			if math.IsNaN(y) {
				t.Errorf("series %d carries a NaN value", i)
			}
		}
	}
}

func Test_PNG_depthGapStillRenders(t *testing.T) {
	reg := region.New("X", 0, 150)
	bins := []bin.Bin{
		{Start: 0, End: 50, Value: 12, Count: 50},
		{Start: 50, End: 100, Value: math.NaN(), Count: 0},
		{Start: 100, End: 150, Value: 9, Count: 50},
	}
	p, err := panel.Compose(reg, track.NewDepth(reg, bins, ""))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	var buf bytes.Buffer
	if err := PNG(&buf, p, Options{}); err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("PNG() output does not decode: %v", err)
	}
}

func Test_depthSeries_allEmptyBins(t *testing.T) {
	bins := []bin.Bin{
		{Start: 0, End: 50, Value: math.NaN(), Count: 0},
	}
	if series := depthSeries(bins); series != nil {
		t.Errorf("depthSeries() = %v, want nil for all-empty bins", series)
	}
}

func Test_componentSeries_clipsDrawnExtentOnly(t *testing.T) {
	reg := region.New("chrX", 1000, 2000)
	comps := []agp.Component{
		{Contig: "chrX", Start: 500, End: 1500, Layer: 0},
		{Contig: "chrX", Start: 2500, End: 3000, Layer: 1}, // outside, nothing drawn
	}
	series := componentSeries(comps, reg)
	if len(series) != 1 {
		t.Fatalf("componentSeries() = %d series, want 1", len(series))
	}
	cs := series[0].(chart.ContinuousSeries)
	if cs.XValues[0] != 1000 || cs.XValues[1] != 1500 {
		t.Errorf("componentSeries() drawn extent = %v, want [1000 1500]", cs.XValues)
	}
}

func Test_megabase(t *testing.T) {
	if got := megabase(35000000.0); got != "35.0" {
		t.Errorf("megabase() = %q, want %q", got, "35.0")
	}
	if got := megabase("not a float"); got != "" {
		t.Errorf("megabase() on non-float = %q, want empty", got)
	}
}
