// Package agp parses AGP scaffold descriptions into ordered sequence
// components per contig.
package agp

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// columns of an AGP 2.0 row
const (
	objectField = iota
	objBegField
	objEndField
	partNumberField
	componentTypeField
	componentIDField
	compBegField
	compEndField
	orientationField

	numFields = orientationField + 1
)

// Component is one W (sequence) row of an AGP file in 0-based
// half-open object coordinates. Gap rows are not represented: a gap
// shows up only as a coordinate hole between consecutive components.
type Component struct {
	Contig string
	Start  int
	End    int

	// always "W"; other AGP type codes mark gaps and are dropped
	Type string

	Orientation string
	ID          string

	// Layer numbers W components 0,1,2,... per contig in file
	// order, so independent scaffold joins stack on separate
	// visual lanes.
	Layer int
}

// Parse reads an AGP table. Comment lines start with "#". Rows with
// missing columns or unparseable coordinates are skipped and counted.
// Every contig seen appears in the result, even when it has no W rows.
func Parse(r io.Reader) (map[string][]Component, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<20)

	out := make(map[string][]Component)
	layers := make(map[string]int)
	skipped := 0
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < numFields {
			skipped++
			continue
		}
		beg, err := strconv.Atoi(fields[objBegField])
		if err != nil {
			skipped++
			continue
		}
		end, err := strconv.Atoi(fields[objEndField])
		if err != nil || beg < 1 || end < beg {
			skipped++
			continue
		}

		contig := fields[objectField]
		if _, seen := out[contig]; !seen {
			out[contig] = []Component{}
		}
		if fields[componentTypeField] != "W" {
			// gap row: registers the contig, contributes no layer
			continue
		}

		out[contig] = append(out[contig], Component{
			Contig:      contig,
			Start:       beg - 1,
			End:         end,
			Type:        fields[componentTypeField],
			Orientation: fields[orientationField],
			ID:          fields[componentIDField],
			Layer:       layers[contig],
		})
		layers[contig]++
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	return out, skipped, nil
}

// Extent returns the rightmost object coordinate among components.
func Extent(comps []Component) int {
	extent := 0
	for _, c := range comps {
		if c.End > extent {
			extent = c.End
		}
	}
	return extent
}
