// Package track builds per-source plot tracks clipped to a shared
// region.
package track

import (
	"fmt"

	"github.com/biogo/store/interval"

	"github.com/TDMillar-Biology/rmtools/internal/agp"
	"github.com/TDMillar-Biology/rmtools/internal/bin"
	"github.com/TDMillar-Biology/rmtools/internal/depth"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/rm"
)

// Kind discriminates the closed set of track variants.
type Kind string

const (
	Repeat Kind = "repeat"
	Depth  Kind = "depth"
	AGP    Kind = "agp"
)

// Track is a tagged variant: exactly one series field is populated,
// selected by Kind. Built once, then read-only.
type Track struct {
	Kind   Kind
	Region region.Region
	Label  string

	Coverage   []bin.Coverage  // Repeat
	Depth      []bin.Bin       // Depth
	Components []agp.Component // AGP
}

// EmptyError reports a track with no data in its region. Only raised
// when a caller asks for it through Require; emptiness itself is a
// legitimate result.
type EmptyError struct {
	Kind   Kind
	Region region.Region
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("no %s data in %s", e.Kind, e.Region)
}

// NewRepeat builds a repeat coverage track over reg.
func NewRepeat(reg region.Region, cov []bin.Coverage, label string) Track {
	return Track{Kind: Repeat, Region: reg, Label: label, Coverage: cov}
}

// NewDepth builds a depth track over reg, dropping bins that start
// outside [reg.Start, reg.End).
func NewDepth(reg region.Region, bins []bin.Bin, label string) Track {
	kept := make([]bin.Bin, 0, len(bins))
	for _, b := range bins {
		if !reg.Bounded() || (b.Start >= reg.Start && b.Start < reg.End) {
			kept = append(kept, b)
		}
	}
	return Track{Kind: Depth, Region: reg, Label: label, Depth: kept}
}

// NewAGP builds a scaffold-structure track over reg, keeping only
// components that overlap it. Retained components keep their native
// coordinates; drawing clips again at render time.
func NewAGP(reg region.Region, comps []agp.Component, label string) Track {
	return Track{Kind: AGP, Region: reg, Label: label, Components: ClipComponents(comps, reg)}
}

// Empty reports whether the track carries any plottable data: for
// repeats, coverage beyond the unannotated filler; for depth, at
// least one bin with samples; for AGP, at least one component.
func (t Track) Empty() bool {
	switch t.Kind {
	case Repeat:
		for _, c := range t.Coverage {
			for taxon, v := range c.ByTaxon {
				if taxon != bin.Unannotated && v > 0 {
					return false
				}
			}
		}
		return true
	case Depth:
		for _, b := range t.Depth {
			if b.Count > 0 {
				return false
			}
		}
		return true
	default:
		return len(t.Components) == 0
	}
}

// Require returns an EmptyError when t carries no data.
func Require(t Track) error {
	if t.Empty() {
		return &EmptyError{Kind: t.Kind, Region: t.Region}
	}
	return nil
}

// Clip returns the features overlapping reg in input order. Partially
// overlapping features are kept whole, coordinates untouched;
// selection here is about visibility, not truncation.
func Clip(feats []rm.Feature, reg region.Region) []rm.Feature {
	if !reg.Bounded() {
		return feats
	}
	keep := overlapping(len(feats), reg, func(i int) (int, int) {
		return feats[i].Start, feats[i].End
	})
	out := make([]rm.Feature, 0, len(feats))
	for i, f := range feats {
		if keep[i] {
			out = append(out, f)
		}
	}
	return out
}

// ClipComponents returns the AGP components overlapping reg in input
// order, native coordinates untouched.
func ClipComponents(comps []agp.Component, reg region.Region) []agp.Component {
	if !reg.Bounded() {
		return comps
	}
	keep := overlapping(len(comps), reg, func(i int) (int, int) {
		return comps[i].Start, comps[i].End
	})
	out := make([]agp.Component, 0, len(comps))
	for i, c := range comps {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

// ClipSamples drops depth samples outside [reg.Start, reg.End).
func ClipSamples(samples []depth.Sample, reg region.Region) []depth.Sample {
	if !reg.Bounded() {
		return samples
	}
	out := make([]depth.Sample, 0, len(samples))
	for _, s := range samples {
		if s.Pos >= reg.Start && s.Pos < reg.End {
			out = append(out, s)
		}
	}
	return out
}

type ispan struct {
	uid        uintptr
	start, end int
}

func (s ispan) Overlap(b interval.IntRange) bool {
	return s.start < b.End && s.end > b.Start
}
func (s ispan) ID() uintptr { return s.uid }
func (s ispan) Range() interval.IntRange {
	return interval.IntRange{Start: s.start, End: s.end}
}

// overlapping marks the indices whose interval intersects reg, using
// an interval tree so large annotation sets stay cheap to query.
func overlapping(n int, reg region.Region, spanAt func(int) (int, int)) []bool {
	var tree interval.IntTree
	for i := 0; i < n; i++ {
		s, e := spanAt(i)
		if err := tree.Insert(ispan{uid: uintptr(i), start: s, end: e}, true); err != nil {
			// degenerate interval; it can never overlap anyway
			continue
		}
	}
	tree.AdjustRanges()

	keep := make([]bool, n)
	for _, m := range tree.Get(ispan{start: reg.Start, end: reg.End}) {
		keep[int(m.(ispan).uid)] = true
	}
	return keep
}
