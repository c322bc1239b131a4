// Package depth parses per-base read depth tables as produced by
// samtools depth -a.
package depth

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sample is one contig/position/depth row.
type Sample struct {
	Contig string
	Pos    int
	Depth  int
}

// OrderError reports positions that are not strictly increasing
// within a contig. Binning assumes sorted input for a single linear
// pass, so this is fatal.
type OrderError struct {
	Line   int
	Contig string
	Pos    int
	Prev   int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("depth positions out of order at line %d: %s:%d follows %d", e.Line, e.Contig, e.Pos, e.Prev)
}

// Parse reads a three-column contig/position/depth table. Rows with
// missing fields, non-integer values, or negative depth are skipped
// and counted. Out-of-order positions within a contig are fatal.
func Parse(r io.Reader) ([]Sample, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<20)

	var samples []Sample
	skipped := 0
	last := make(map[string]int)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 3 {
			skipped++
			continue
		}
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			skipped++
			continue
		}
		d, err := strconv.Atoi(fields[2])
		if err != nil || d < 0 {
			skipped++
			continue
		}

		contig := fields[0]
		if prev, seen := last[contig]; seen && pos <= prev {
			return nil, skipped, &OrderError{Line: line, Contig: contig, Pos: pos, Prev: prev}
		}
		last[contig] = pos
		samples = append(samples, Sample{Contig: contig, Pos: pos, Depth: d})
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	return samples, skipped, nil
}

// Extent returns one past the last reported position on contig.
func Extent(samples []Sample, contig string) int {
	extent := 0
	for _, s := range samples {
		if s.Contig == contig && s.Pos+1 > extent {
			extent = s.Pos + 1
		}
	}
	return extent
}
