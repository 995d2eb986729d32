package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	diffpatch "github.com/sourcegraph/go-diff-patch"
	"kastelo.dev/compressxml"
)

func writePreview(w io.Writer, recs []compressxml.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(compressxml.RecordHeader, "\t"))
	for _, rec := range recs {
		fmt.Fprintln(tw, strings.Join(rec.Row(), "\t"))
	}
	return tw.Flush()
}

func writeCSV(dir string, sheets []compressxml.Sheet) error {
	for _, sh := range sheets {
		fd, err := os.Create(filepath.Join(dir, sh.Name+".csv"))
		if err != nil {
			return err
		}
		cw := csv.NewWriter(fd)
		_ = cw.Write(sh.Header)
		_ = cw.WriteAll(sh.Rows)
		if err := cw.Error(); err != nil {
			fd.Close()
			return err
		}
		if err := fd.Close(); err != nil {
			return err
		}
	}
	return nil
}

// sheetsText renders sheets one row per line, for comparing reports.
func sheetsText(sheets []compressxml.Sheet) string {
	var b strings.Builder
	for _, sh := range sheets {
		fmt.Fprintf(&b, "[%s]\n", sh.Name)
		b.WriteString(strings.Join(sh.Header, "\t"))
		b.WriteByte('\n')
		for _, row := range sh.Rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// diffSheets returns a unified diff between two converted reports, or the
// empty string when they have the same contents.
func diffSheets(name string, old, new []compressxml.Sheet) string {
	oldText, newText := sheetsText(old), sheetsText(new)
	if oldText == newText {
		return ""
	}
	return diffpatch.GeneratePatch(name, oldText, newText)
}
