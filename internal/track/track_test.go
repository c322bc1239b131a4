package track

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/TDMillar-Biology/rmtools/internal/agp"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/depth"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/rm"
)

func Test_Clip(t *testing.T) {
	reg := region.New("X", 30000000, 35000000)

	type args struct {
		feats []rm.Feature
	}
	tests := []struct {
		name string
		args args
		want []rm.Feature
	}{
		{
			"partial overlap kept with native coordinates",
			args{
				feats: []rm.Feature{
					{Contig: "X", Start: 29999000, End: 30001000},
				},
			},
			[]rm.Feature{
				{Contig: "X", Start: 29999000, End: 30001000},
			},
		},
		{
			"fully outside dropped",
			args{
				feats: []rm.Feature{
					{Contig: "X", Start: 100, End: 200},
					{Contig: "X", Start: 40000000, End: 40000100},
				},
			},
			[]rm.Feature{},
		},
		{
			"input order preserved",
			args{
				feats: []rm.Feature{
					{Contig: "X", Start: 34000000, End: 34000100},
					{Contig: "X", Start: 100, End: 200},
					{Contig: "X", Start: 31000000, End: 31000100},
				},
			},
			[]rm.Feature{
				{Contig: "X", Start: 34000000, End: 34000100},
				{Contig: "X", Start: 31000000, End: 31000100},
			},
		},
		{
			"touching region end dropped",
			args{
				feats: []rm.Feature{
					{Contig: "X", Start: 35000000, End: 35000100},
				},
			},
			[]rm.Feature{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clip(tt.args.feats, reg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Clip() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Clip_unboundedRegionKeepsAll(t *testing.T) {
	feats := []rm.Feature{
		{Contig: "X", Start: 100, End: 200},
	}
	if got := Clip(feats, region.Whole("X")); !reflect.DeepEqual(got, feats) {
		t.Errorf("Clip() = %v, want all features kept", got)
	}
}

func Test_ClipComponents(t *testing.T) {
	reg := region.New("chrX", 1000, 2000)
	comps := []agp.Component{
		{Contig: "chrX", Start: 0, End: 900, Layer: 0},
		{Contig: "chrX", Start: 900, End: 1500, Layer: 1},
		{Contig: "chrX", Start: 1500, End: 3000, Layer: 2},
	}

	got := ClipComponents(comps, reg)
	want := []agp.Component{
		{Contig: "chrX", Start: 900, End: 1500, Layer: 1},
		{Contig: "chrX", Start: 1500, End: 3000, Layer: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClipComponents() = %v, want %v", got, want)
	}
}

func Test_ClipSamples(t *testing.T) {
	reg := region.New("X", 10, 20)
	samples := []depth.Sample{
		{Contig: "X", Pos: 9, Depth: 1},
		{Contig: "X", Pos: 10, Depth: 2},
		{Contig: "X", Pos: 19, Depth: 3},
		{Contig: "X", Pos: 20, Depth: 4},
	}
	got := ClipSamples(samples, reg)
	want := []depth.Sample{
		{Contig: "X", Pos: 10, Depth: 2},
		{Contig: "X", Pos: 19, Depth: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClipSamples() = %v, want %v", got, want)
	}
}

func Test_NewDepth_dropsOutOfRegionBins(t *testing.T) {
	reg := region.New("X", 100, 200)
	bins := []bin.Bin{
		{Start: 50, End: 100, Value: 1, Count: 1},
		{Start: 100, End: 150, Value: 2, Count: 1},
		{Start: 150, End: 200, Value: 3, Count: 1},
		{Start: 200, End: 250, Value: 4, Count: 1},
	}
	got := NewDepth(reg, bins, "")
	want := []bin.Bin{
		{Start: 100, End: 150, Value: 2, Count: 1},
		{Start: 150, End: 200, Value: 3, Count: 1},
	}
	if !reflect.DeepEqual(got.Depth, want) {
		t.Errorf("NewDepth() bins = %v, want %v", got.Depth, want)
	}
	if got.Kind != Depth || !got.Region.Equal(reg) {
		t.Errorf("NewDepth() kind/region = %v/%v", got.Kind, got.Region)
	}
}

func Test_Track_Empty(t *testing.T) {
	reg := region.New("X", 0, 100)

	tests := []struct {
		name string
		t    Track
		want bool
	}{
		{
			"repeat with only unannotated filler",
			NewRepeat(reg, []bin.Coverage{
				{Start: 0, End: 50, ByTaxon: map[string]int{bin.Unannotated: 50}},
			}, ""),
			true,
		},
		{
			"repeat with coverage",
			NewRepeat(reg, []bin.Coverage{
				{Start: 0, End: 50, ByTaxon: map[string]int{"LINE": 10, bin.Unannotated: 40}},
			}, ""),
			false,
		},
		{
			"depth with only no-data bins",
			NewDepth(reg, []bin.Bin{{Start: 0, End: 50, Value: math.NaN(), Count: 0}}, ""),
			true,
		},
		{
			"depth with samples",
			NewDepth(reg, []bin.Bin{{Start: 0, End: 50, Value: 3, Count: 2}}, ""),
			false,
		},
		{
			"agp without components",
			NewAGP(reg, nil, ""),
			true,
		},
		{
			"agp with a component",
			NewAGP(reg, []agp.Component{{Contig: "X", Start: 0, End: 60}}, ""),
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Require(t *testing.T) {
	reg := region.New("X", 0, 100)
	err := Require(NewAGP(reg, nil, ""))

	var eerr *EmptyError
	if !errors.As(err, &eerr) {
		t.Fatalf("Require() error = %v, want *EmptyError", err)
	}
	if eerr.Kind != AGP {
		t.Errorf("EmptyError kind = %v, want agp", eerr.Kind)
	}

	full := NewDepth(reg, []bin.Bin{{Start: 0, End: 50, Value: 3, Count: 2}}, "")
	if err := Require(full); err != nil {
		t.Errorf("Require() on non-empty track = %v", err)
	}
}
