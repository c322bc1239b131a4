package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TDMillar-Biology/rmtools/internal/rm"
)

// normalizeCmd converts RepeatMasker .out annotations into a
// canonical 0-based tabular form for downstream tooling.
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a RepeatMasker .out file to a tabular form",
	Long: `Normalize a RepeatMasker .out file to a BED-compatible TSV.

Coordinates are converted from RepeatMasker's 1-based inclusive form to
0-based half-open assembly coordinates, the class/family column is split,
and complement ('C') strand is re-encoded as '-'. Rows that cannot be
parsed are skipped and counted, not fatal.`,
	Run: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringP("rm-out", "r", "", "path to the RepeatMasker .out file")
	normalizeCmd.Flags().StringP("out", "o", "", "output file path")
	normalizeCmd.Flags().StringP("strain", "s", "", "strain or assembly label stored with every row")
	normalizeCmd.Flags().StringP("contig", "c", "", "only keep annotations on this contig")
	normalizeCmd.Flags().BoolP("gff", "g", false, "write GFF2 instead of TSV")

	normalizeCmd.MarkFlagRequired("rm-out")
	normalizeCmd.MarkFlagRequired("out")
	normalizeCmd.MarkFlagRequired("strain")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) {
	rmPath, _ := cmd.Flags().GetString("rm-out")
	outPath, _ := cmd.Flags().GetString("out")
	strain, _ := cmd.Flags().GetString("strain")
	contig, _ := cmd.Flags().GetString("contig")
	asGFF, _ := cmd.Flags().GetBool("gff")

	feats, skipped, err := parseRMFile(rmPath, strain, contig)
	if err != nil {
		stderr.Fatalf("failed to parse %s: %v", rmPath, err)
	}
	reportSkipped(skipped, rmPath)

	out, err := os.Create(outPath)
	if err != nil {
		stderr.Fatalf("failed to create %s: %v", outPath, err)
	}
	defer out.Close()

	if asGFF {
		err = rm.WriteGFF(out, feats)
	} else {
		err = rm.WriteTSV(out, feats)
	}
	if err != nil {
		stderr.Fatalf("failed to write %s: %v", outPath, err)
	}
}
