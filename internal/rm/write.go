package rm

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
)

// column order of the normalized TSV output
var tsvColumns = []string{
	"contig",
	"start",
	"end",
	"strand",
	"repeat_name",
	"repeat_class",
	"repeat_family",
	"score",
	"strain",
}

// WriteTSV writes features as the canonical tab-separated table with a
// header row, one row per feature, in input order.
func WriteTSV(w io.Writer, feats []Feature) error {
	if _, err := fmt.Fprintln(w, strings.Join(tsvColumns, "\t")); err != nil {
		return err
	}
	for _, f := range feats {
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			f.Contig, f.Start, f.End, f.Strand, f.Name, f.Class, f.Family, f.Score, f.Strain)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteGFF writes features as GFF2 records in the shape produced by
// the usual RepeatMasker conversion tools.
func WriteGFF(w io.Writer, feats []Feature) error {
	gw := gff.NewWriter(w, 60, true)
	for _, f := range feats {
		score := float64(f.Score)
		strand := seq.Plus
		if f.Strand == "-" {
			strand = seq.Minus
		}
		rec := &gff.Feature{
			SeqName:    f.Contig,
			Source:     "RepeatMasker",
			Feature:    "repeat",
			FeatStart:  f.Start,
			FeatEnd:    f.End,
			FeatScore:  &score,
			FeatStrand: strand,
			FeatFrame:  gff.NoFrame,
			FeatAttributes: gff.Attributes{
				{Tag: "Repeat", Value: fmt.Sprintf("%s %s/%s", f.Name, f.Class, f.Family)},
			},
		}
		if _, err := gw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
