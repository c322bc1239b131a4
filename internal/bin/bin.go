// Package bin aggregates repeat features and depth samples into
// fixed-width coordinate bins for plotting.
package bin

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/TDMillar-Biology/rmtools/internal/depth"
	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/rm"
)

// Unannotated labels bin territory not covered by any repeat feature.
const Unannotated = "Unannotated"

// ErrUnresolved means a whole-contig region reached the binner before
// its bounds were resolved against a data source.
var ErrUnresolved = errors.New("region bounds are unresolved")

// SizeError reports a non-positive bin width.
type SizeError struct {
	Size int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("bin size must be positive, got %d", e.Size)
}

// Bin is one fixed-width window of aggregated point data. When Count
// is zero the bin holds no data and Value is NaN; Mean distinguishes
// that from a genuine zero.
type Bin struct {
	Start int
	End   int
	Value float64
	Count int
}

// Mean returns the aggregate value and whether the bin holds any data.
func (b Bin) Mean() (float64, bool) {
	if b.Count == 0 {
		return 0, false
	}
	return b.Value, true
}

// Coverage is one fixed-width window of repeat coverage, split by
// taxonomy key. ByTaxon maps a taxon to covered (union-merged) base
// pairs within the window, with an explicit Unannotated remainder.
type Coverage struct {
	Start   int
	End     int
	ByTaxon map[string]int
}

// Mode selects how repeat features aggregate within a window.
type Mode string

const (
	// Composition stacks per-taxon covered base pairs in each window.
	Composition Mode = "composition"

	// Dominant colors each window by the one taxon covering the most
	// base pairs in it.
	Dominant Mode = "dominant"

	// Count tallies overlapping features per taxon instead of
	// measuring covered base pairs.
	Count Mode = "count"
)

// ParseMode validates a binning mode flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Composition, Dominant, Count:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown bin mode %q: expected composition, dominant or count", s)
}

type span struct {
	start, end int
}

// edges lays half-open windows of width size across reg, starting at
// reg.Start. The final window is clipped at reg.End rather than
// overhanging.
func edges(reg region.Region, size int) []span {
	var out []span
	for s := reg.Start; s < reg.End; s += size {
		e := s + size
		if e > reg.End {
			e = reg.End
		}
		out = append(out, span{start: s, end: e})
	}
	return out
}

func checkArgs(reg region.Region, size int) error {
	if !reg.Bounded() {
		return ErrUnresolved
	}
	if size <= 0 {
		return &SizeError{Size: size}
	}
	return nil
}

// CoverageBins computes per-taxon covered base pairs in fixed windows
// across reg. Overlapping annotations of the same taxon are merged
// before measuring so no base is counted twice, and each window gets
// an Unannotated entry covering the rest of its width.
func CoverageBins(feats []rm.Feature, reg region.Region, size int, level rm.Level) ([]Coverage, error) {
	if err := checkArgs(reg, size); err != nil {
		return nil, err
	}

	var out []Coverage
	for _, w := range edges(reg, size) {
		byTaxon := make(map[string][]span)
		var all []span
		for _, f := range feats {
			s, e := clip(f.Start, f.End, w)
			if s >= e {
				continue
			}
			taxon := f.Taxon(level)
			byTaxon[taxon] = append(byTaxon[taxon], span{s, e})
			all = append(all, span{s, e})
		}

		cov := Coverage{Start: w.start, End: w.end, ByTaxon: make(map[string]int, len(byTaxon)+1)}
		for taxon, spans := range byTaxon {
			cov.ByTaxon[taxon] = covered(merge(spans))
		}
		unannotated := (w.end - w.start) - covered(merge(all))
		if unannotated < 0 {
			unannotated = 0
		}
		cov.ByTaxon[Unannotated] = unannotated
		out = append(out, cov)
	}
	return out, nil
}

// DominantBins colors each fixed window across reg by the single
// taxon covering the most base pairs in it, filling the window's
// whole width. Ties break to the lexicographically smaller taxon;
// windows without any feature stay Unannotated.
func DominantBins(feats []rm.Feature, reg region.Region, size int, level rm.Level) ([]Coverage, error) {
	if err := checkArgs(reg, size); err != nil {
		return nil, err
	}

	var out []Coverage
	for _, w := range edges(reg, size) {
		byTaxon := make(map[string][]span)
		for _, f := range feats {
			if s, e := clip(f.Start, f.End, w); s < e {
				byTaxon[f.Taxon(level)] = append(byTaxon[f.Taxon(level)], span{s, e})
			}
		}

		winner, best := Unannotated, 0
		for taxon, spans := range byTaxon {
			c := covered(merge(spans))
			if c > best || (c == best && c > 0 && taxon < winner) {
				winner, best = taxon, c
			}
		}
		out = append(out, Coverage{
			Start:   w.start,
			End:     w.end,
			ByTaxon: map[string]int{winner: w.end - w.start},
		})
	}
	return out, nil
}

// CountBins counts features per taxon in fixed windows across reg. A
// feature contributes to every window it overlaps.
func CountBins(feats []rm.Feature, reg region.Region, size int, level rm.Level) ([]Coverage, error) {
	if err := checkArgs(reg, size); err != nil {
		return nil, err
	}

	var out []Coverage
	for _, w := range edges(reg, size) {
		cov := Coverage{Start: w.start, End: w.end, ByTaxon: make(map[string]int)}
		for _, f := range feats {
			if s, e := clip(f.Start, f.End, w); s < e {
				cov.ByTaxon[f.Taxon(level)]++
			}
		}
		out = append(out, cov)
	}
	return out, nil
}

// PassthroughCoverage wraps raw features as degenerate one-feature
// windows, for unbinned interval plots.
func PassthroughCoverage(feats []rm.Feature, level rm.Level) []Coverage {
	out := make([]Coverage, 0, len(feats))
	for _, f := range feats {
		out = append(out, Coverage{
			Start:   f.Start,
			End:     f.End,
			ByTaxon: map[string]int{f.Taxon(level): f.End - f.Start},
		})
	}
	return out
}

// DepthBins averages samples into fixed windows across reg. Samples
// must be position-sorted. Windows without a covering sample keep
// Count 0 and a NaN value: missing data never masquerades as zero
// depth.
func DepthBins(samples []depth.Sample, reg region.Region, size int) ([]Bin, error) {
	if err := checkArgs(reg, size); err != nil {
		return nil, err
	}

	windows := edges(reg, size)
	out := make([]Bin, len(windows))
	sums := make([]float64, len(windows))
	for i, w := range windows {
		out[i] = Bin{Start: w.start, End: w.end, Value: math.NaN()}
	}
	for _, s := range samples {
		if s.Pos < reg.Start || s.Pos >= reg.End {
			continue
		}
		i := (s.Pos - reg.Start) / size
		sums[i] += float64(s.Depth)
		out[i].Count++
	}
	for i := range out {
		if out[i].Count > 0 {
			out[i].Value = sums[i] / float64(out[i].Count)
		}
	}
	return out, nil
}

// PassthroughDepth wraps raw samples as degenerate single-position
// bins, for unbinned depth plots.
func PassthroughDepth(samples []depth.Sample) []Bin {
	out := make([]Bin, 0, len(samples))
	for _, s := range samples {
		out = append(out, Bin{Start: s.Pos, End: s.Pos + 1, Value: float64(s.Depth), Count: 1})
	}
	return out
}

func clip(start, end int, w span) (int, int) {
	if start < w.start {
		start = w.start
	}
	if end > w.end {
		end = w.end
	}
	return start, end
}

// merge collapses overlapping or touching spans. Annotations overlap
// often enough that summing raw lengths would overcount.
func merge(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func covered(spans []span) int {
	total := 0
	for _, s := range spans {
		total += s.end - s.start
	}
	return total
}
