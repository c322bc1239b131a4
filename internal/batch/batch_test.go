package batch

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/TDMillar-Biology/rmtools/internal/region"
	"github.com/TDMillar-Biology/rmtools/internal/track"
)

func Test_ParseControl(t *testing.T) {
	type args struct {
		src string
	}
	tests := []struct {
		name        string
		args        args
		want        []Job
		wantSkipped int
		wantErr     bool
	}{
		{
			"path region label",
			args{
				src: "path\tregion\tlabel\n" +
					"n2.out\tX:1000-2000\tN2\n" +
					"cb.out\tX\tCB4856\n",
			},
			[]Job{
				{Path: "n2.out", Region: region.New("X", 1000, 2000), Label: "N2", Line: 2},
				{Path: "cb.out", Region: region.Whole("X"), Label: "CB4856", Line: 3},
			},
			0,
			false,
		},
		{
			"label defaults to region text",
			args{
				src: "path region\nn2.out X:1000-2000\n",
			},
			[]Job{
				{Path: "n2.out", Region: region.New("X", 1000, 2000), Label: "X:1000-2000", Line: 2},
			},
			0,
			false,
		},
		{
			"column order from header",
			args{
				src: "label region path\nN2 X:0-10 n2.out\n",
			},
			[]Job{
				{Path: "n2.out", Region: region.New("X", 0, 10), Label: "N2", Line: 2},
			},
			0,
			false,
		},
		{
			"short and invalid rows skipped",
			args{
				src: "path region\n" +
					"n2.out\n" +
					"cb.out X:100-50\n" +
					"ok.out X:0-10\n",
			},
			[]Job{
				{Path: "ok.out", Region: region.New("X", 0, 10), Label: "X:0-10", Line: 4},
			},
			2,
			false,
		},
		{
			"comments and blanks skipped",
			args{
				src: "# produced upstream\n\npath region\nn2.out X:0-10\n",
			},
			[]Job{
				{Path: "n2.out", Region: region.New("X", 0, 10), Label: "X:0-10", Line: 4},
			},
			0,
			false,
		},
		{
			"missing required column is fatal",
			args{
				src: "path label\nn2.out N2\n",
			},
			nil,
			0,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped, err := ParseControl(strings.NewReader(tt.args.src))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseControl() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ferr *FormatError
				if !errors.As(err, &ferr) {
					t.Errorf("ParseControl() error type = %T, want *FormatError", err)
				}
				return
			}
			if skipped != tt.wantSkipped {
				t.Errorf("ParseControl() skipped = %d, want %d", skipped, tt.wantSkipped)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseControl() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Run_isolatesFailures(t *testing.T) {
	jobs := []Job{
		{Path: "a.out", Region: region.New("X", 0, 10)},
		{Path: "broken.out", Region: region.New("X", 0, 10)},
		{Path: "c.out", Region: region.New("X", 0, 10)},
	}

	var ran []string
	results := Run(jobs, func(j Job) (track.Track, int, error) {
		ran = append(ran, j.Path)
		if j.Path == "broken.out" {
			return track.Track{}, 0, fmt.Errorf("cannot open %s", j.Path)
		}
		return track.NewRepeat(j.Region, nil, j.Label), 2, nil
	})

	if !reflect.DeepEqual(ran, []string{"a.out", "broken.out", "c.out"}) {
		t.Errorf("Run() executed %v, want all jobs in order", ran)
	}
	if len(results) != 3 {
		t.Fatalf("Run() results = %d, want 3", len(results))
	}
	if results[1].Err == nil {
		t.Error("Run() lost the failing unit's error")
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("Run() let one unit's failure leak into siblings")
	}
	if results[0].Skipped != 2 {
		t.Errorf("Run() skipped = %d, want 2", results[0].Skipped)
	}
	if got := Failed(results); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
}
