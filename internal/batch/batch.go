// Package batch runs control-file driven plotting jobs. Each row of
// the control file is an independent unit: one unit failing never
// aborts its siblings.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

// Job is one control-file row: a source file and the region to plot
// from it.
type Job struct {
	Path   string
	Region region.Region
	Label  string
	Line   int
}

// FormatError reports a control file whose header is missing required
// columns.
type FormatError struct {
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("control file header missing columns: %s", strings.Join(e.Missing, ", "))
}

// ParseControl reads a whitespace-delimited control table. The first
// content line is a header naming at least "path" and "region"
// columns; "label" is optional and defaults to the region text. Extra
// columns are ignored. Rows with missing fields or invalid regions
// are skipped and counted.
func ParseControl(r io.Reader) ([]Job, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<20)

	var (
		jobs    []Job
		skipped int
		index   map[string]int
		line    int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if index == nil {
			index = make(map[string]int, len(fields))
			for i, col := range fields {
				index[strings.ToLower(col)] = i
			}
			var missing []string
			for _, req := range []string{"path", "region"} {
				if _, ok := index[req]; !ok {
					missing = append(missing, req)
				}
			}
			if len(missing) > 0 {
				return nil, 0, &FormatError{Missing: missing}
			}
			continue
		}

		pathIdx, regionIdx := index["path"], index["region"]
		if len(fields) <= pathIdx || len(fields) <= regionIdx {
			skipped++
			continue
		}
		reg, err := region.Parse(fields[regionIdx])
		if err != nil {
			skipped++
			continue
		}

		label := fields[regionIdx]
		if labelIdx, ok := index["label"]; ok && len(fields) > labelIdx {
			label = fields[labelIdx]
		}
		jobs = append(jobs, Job{Path: fields[pathIdx], Region: reg, Label: label, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	return jobs, skipped, nil
}

// Result is the outcome of one batch unit.
type Result struct {
	Job     Job
	Track   track.Track
	Skipped int // malformed data rows in the unit's source file
	Err     error
}

// Run executes fn for every job, capturing each unit's outcome.
func Run(jobs []Job, fn func(Job) (track.Track, int, error)) []Result {
	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		t, skipped, err := fn(j)
		results = append(results, Result{Job: j, Track: t, Skipped: skipped, Err: err})
	}
	return results
}

// Failed counts results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
