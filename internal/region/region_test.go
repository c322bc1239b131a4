package region

import (
	"errors"
	"testing"
)

func Test_Parse(t *testing.T) {
	type args struct {
		text string
	}
	tests := []struct {
		name    string
		args    args
		want    Region
		wantErr bool
	}{
		{
			"contig with bounds",
			args{
				text: "X:30000000-35000000",
			},
			New("X", 30000000, 35000000),
			false,
		},
		{
			"whole contig",
			args{
				text: "X",
			},
			Whole("X"),
			false,
		},
		{
			"start at zero",
			args{
				text: "tig00000001:0-500",
			},
			New("tig00000001", 0, 500),
			false,
		},
		{
			"start not below end",
			args{
				text: "X:100-50",
			},
			Region{},
			true,
		},
		{
			"start equals end",
			args{
				text: "X:100-100",
			},
			Region{},
			true,
		},
		{
			"empty contig",
			args{
				text: ":100-200",
			},
			Region{},
			true,
		},
		{
			"non-integer start",
			args{
				text: "X:abc-200",
			},
			Region{},
			true,
		},
		{
			"missing dash",
			args{
				text: "X:100",
			},
			Region{},
			true,
		},
		{
			"trailing tokens",
			args{
				text: "X:100-200-300",
			},
			Region{},
			true,
		},
		{
			"negative start",
			args{
				text: "X:-5-200",
			},
			Region{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Errorf("Parse() error type = %T, want *ParseError", err)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Region_String_roundTrip(t *testing.T) {
	for _, text := range []string{"X:30000000-35000000", "X", "tig00000001:0-500"} {
		r, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", text, err)
		}
		if r.String() != text {
			t.Errorf("String() = %q, want %q", r.String(), text)
		}
	}
}

func Test_Region_Resolve(t *testing.T) {
	whole := Whole("X").Resolve(1000)
	if !whole.Equal(New("X", 0, 1000)) {
		t.Errorf("Resolve() = %v, want X:0-1000", whole)
	}

	bounded := New("X", 10, 20).Resolve(1000)
	if !bounded.Equal(New("X", 10, 20)) {
		t.Errorf("Resolve() changed bounded region to %v", bounded)
	}
}

func Test_Region_Overlaps(t *testing.T) {
	type args struct {
		start int
		end   int
	}
	r := New("X", 100, 200)
	tests := []struct {
		name string
		args args
		want bool
	}{
		{"inside", args{120, 140}, true},
		{"partial left", args{50, 101}, true},
		{"partial right", args{199, 300}, true},
		{"touching left edge", args{50, 100}, false},
		{"touching right edge", args{200, 300}, false},
		{"disjoint", args{500, 600}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Overlaps(tt.args.start, tt.args.end); got != tt.want {
				t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.args.start, tt.args.end, got, tt.want)
			}
		})
	}
}
