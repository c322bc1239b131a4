// Package rm parses RepeatMasker .out annotation files into
// normalized, 0-based half-open repeat features.
package rm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
)

// field indices into a whitespace-split RepeatMasker .out row
const (
	swScoreField = iota
	fracDivergeField
	fracDelField
	fracInsField
	queryNameField
	queryStartField
	queryEndField
	queryRemainingField
	strandField
	repeatNameField
	repeatClassField

	minFields = repeatClassField + 1
)

// Feature is one annotated repeat in assembly coordinates.
// Start/End are 0-based half-open; the source file is 1-based
// inclusive.
type Feature struct {
	Contig string
	Start  int
	End    int

	// "+" or "-". RepeatMasker writes complement matches as "C"
	Strand string

	Name   string
	Class  string
	Family string

	// Smith-Waterman score from the first column
	Score int

	// strain or assembly label attached during normalization
	Strain string
}

// FormatError is returned when the input does not look like a
// RepeatMasker .out file at all.
type FormatError struct {
	Line int
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized RepeatMasker header at line %d: %q", e.Line, e.Text)
}

// Parse reads a RepeatMasker .out file. Each feature is stamped with
// strain; when contigFilter is non-empty, rows on other contigs are
// dropped before validation, so they never count as malformed. Rows
// with too few fields, unparseable numbers, or unknown strand symbols
// are skipped and counted, not fatal. A file whose first content line
// is not a recognized header line fails with a FormatError.
func Parse(r io.Reader, strain, contigFilter string) ([]Feature, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<20)

	var feats []Feature
	skipped := 0
	sawHeader := false
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if isHeaderLine(text) {
			sawHeader = true
			continue
		}
		if !sawHeader {
			return nil, 0, &FormatError{Line: line, Text: text}
		}

		fields := strings.Fields(text)
		if contigFilter != "" && len(fields) > queryNameField && fields[queryNameField] != contigFilter {
			continue
		}
		f, ok := parseRow(fields, strain)
		if !ok {
			skipped++
			continue
		}
		feats = append(feats, f)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	return feats, skipped, nil
}

// the three header lines start with "SW", "score" or "perc" depending
// on the RepeatMasker version; some versions add a rule line
func isHeaderLine(text string) bool {
	return strings.HasPrefix(text, "SW") ||
		strings.HasPrefix(text, "score") ||
		strings.HasPrefix(text, "perc") ||
		strings.HasPrefix(text, "----")
}

func parseRow(fields []string, strain string) (Feature, bool) {
	if len(fields) < minFields {
		return Feature{}, false
	}

	score, err := strconv.Atoi(fields[swScoreField])
	if err != nil {
		return Feature{}, false
	}
	start, err := strconv.Atoi(fields[queryStartField])
	if err != nil {
		return Feature{}, false
	}
	end, err := strconv.Atoi(fields[queryEndField])
	if err != nil {
		return Feature{}, false
	}
	if start < 1 || end < start {
		return Feature{}, false
	}

	var strand string
	switch fields[strandField] {
	case "+":
		strand = "+"
	case "C":
		strand = "-"
	default:
		return Feature{}, false
	}

	class, family := splitClassFamily(fields[repeatClassField])
	return Feature{
		Contig: fields[queryNameField],
		Start:  feat.OneToZero(start),
		End:    end,
		Strand: strand,
		Name:   fields[repeatNameField],
		Class:  class,
		Family: family,
		Score:  score,
		Strain: strain,
	}, true
}

// splitClassFamily splits a RepeatMasker class/family string like
// "LINE/L1" on the first slash. Without a family part the class
// stands in for both.
func splitClassFamily(s string) (string, string) {
	class, family, ok := strings.Cut(s, "/")
	if !ok || family == "" {
		return class, class
	}
	return class, family
}

// Extent returns the rightmost annotated coordinate on contig, for
// resolving whole-contig regions.
func Extent(feats []Feature, contig string) int {
	extent := 0
	for _, f := range feats {
		if f.Contig == contig && f.End > extent {
			extent = f.End
		}
	}
	return extent
}

// Rebase shifts features left by origin so a region starting there
// begins at zero. Used for left-aligned multi-track plots where
// absolute coordinates differ between assemblies.
func Rebase(feats []Feature, origin int) []Feature {
	if len(feats) == 0 {
		return nil
	}
	out := make([]Feature, len(feats))
	for i, f := range feats {
		f.Start -= origin
		f.End -= origin
		out[i] = f
	}
	return out
}
