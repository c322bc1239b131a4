// Package region parses genomic region strings of the form "CHROM" or
// "CHROM:START-END" into half-open, 0-based coordinate intervals.
package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a contig name with an optional half-open interval. A
// Region without bounds refers to the whole contig; the true extent is
// only known to the data source being plotted and is filled in with
// Resolve.
type Region struct {
	Contig string
	Start  int
	End    int

	bounded bool
}

// ParseError describes a region string that could not be interpreted.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid region %q: %s. expected CHROM or CHROM:START-END", e.Text, e.Reason)
}

// New creates a bounded region covering [start, end) on contig.
func New(contig string, start, end int) Region {
	return Region{Contig: contig, Start: start, End: end, bounded: true}
}

// Whole creates a region covering all of contig.
func Whole(contig string) Region {
	return Region{Contig: contig}
}

// Parse interprets a region string. "X" covers the whole contig,
// "X:30000000-35000000" covers the half-open interval between those
// 0-based coordinates.
func Parse(text string) (Region, error) {
	contig, coords, hasCoords := strings.Cut(text, ":")
	if contig == "" {
		return Region{}, &ParseError{Text: text, Reason: "empty contig name"}
	}
	if !hasCoords {
		return Whole(contig), nil
	}

	startText, endText, ok := strings.Cut(coords, "-")
	if !ok {
		return Region{}, &ParseError{Text: text, Reason: "coordinates are not dash-separated"}
	}
	start, err := strconv.Atoi(startText)
	if err != nil {
		return Region{}, &ParseError{Text: text, Reason: fmt.Sprintf("start %q is not an integer", startText)}
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return Region{}, &ParseError{Text: text, Reason: fmt.Sprintf("end %q is not an integer", endText)}
	}
	if start < 0 {
		return Region{}, &ParseError{Text: text, Reason: fmt.Sprintf("start %d is negative", start)}
	}
	if start >= end {
		return Region{}, &ParseError{Text: text, Reason: fmt.Sprintf("start %d is not below end %d", start, end)}
	}
	return New(contig, start, end), nil
}

// Bounded reports whether the region carries explicit coordinates.
func (r Region) Bounded() bool {
	return r.bounded
}

// Resolve fills a whole-contig region with the extent reported by a
// data source. Bounded regions are returned unchanged.
func (r Region) Resolve(extent int) Region {
	if r.bounded {
		return r
	}
	return New(r.Contig, 0, extent)
}

// Width is the number of bases covered. Zero for unresolved regions.
func (r Region) Width() int {
	if !r.bounded {
		return 0
	}
	return r.End - r.Start
}

// Equal reports whether two regions name the same coordinate frame.
func (r Region) Equal(o Region) bool {
	if r.Contig != o.Contig || r.bounded != o.bounded {
		return false
	}
	return !r.bounded || (r.Start == o.Start && r.End == o.End)
}

// Overlaps reports whether the half-open interval [start, end)
// intersects the region. Unbounded regions overlap everything on any
// contig name match, which callers check separately.
func (r Region) Overlaps(start, end int) bool {
	if !r.bounded {
		return true
	}
	return start < r.End && end > r.Start
}

func (r Region) String() string {
	if !r.bounded {
		return r.Contig
	}
	return fmt.Sprintf("%s:%d-%d", r.Contig, r.Start, r.End)
}
