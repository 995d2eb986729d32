package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"kastelo.dev/compressxml"
)

func convert(t *testing.T, in string) []compressxml.Sheet {
	t.Helper()
	root, err := compressxml.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	return compressxml.Convert(root)
}

func TestWritePreview(t *testing.T) {
	root, err := compressxml.Parse(strings.NewReader(`<r><a k="v">one</a><b>two</b></r>`))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writePreview(&buf, compressxml.Preview(root, 1)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[0]); !reflect.DeepEqual(fields, compressxml.RecordHeader) {
		t.Errorf("header %v", fields)
	}
	if fields := strings.Fields(lines[1]); !reflect.DeepEqual(fields, []string{"r", "a", "a", "one", "k=v"}) {
		t.Errorf("row %v", fields)
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	sheets := convert(t, `<r><nozzle><mark>N1</mark></nozzle></r>`)
	if err := writeCSV(dir, sheets); err != nil {
		t.Fatal(err)
	}

	fd, err := os.Open(filepath.Join(dir, "nozzle.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	rows, err := csv.NewReader(fd).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	exp := [][]string{
		compressxml.RecordHeader,
		{"nozzle1", "nozzle/mark", "mark", "N1", ""},
	}
	if !reflect.DeepEqual(rows, exp) {
		t.Errorf("rows %#v", rows)
	}
	if _, err := os.Stat(filepath.Join(dir, "All_Data.csv")); err != nil {
		t.Error(err)
	}
}

func TestSheetsText(t *testing.T) {
	sheets := []compressxml.Sheet{
		{Name: "s", Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}},
	}
	if got, exp := sheetsText(sheets), "[s]\nA\tB\n1\t2\n"; got != exp {
		t.Errorf("got %q, expected %q", got, exp)
	}
}

func TestDiffSheets(t *testing.T) {
	old := convert(t, `<r><generalVesselInfo><name>V-101</name></generalVesselInfo></r>`)
	same := convert(t, "<r>\n  <generalVesselInfo><name>V-101</name></generalVesselInfo>\n</r>")
	changed := convert(t, `<r><generalVesselInfo><name>V-102</name></generalVesselInfo></r>`)

	if patch := diffSheets("new.xml", old, same); patch != "" {
		t.Errorf("expected no differences, got %q", patch)
	}
	patch := diffSheets("new.xml", old, changed)
	if !strings.Contains(patch, "V-101") || !strings.Contains(patch, "V-102") {
		t.Errorf("patch does not show the change: %q", patch)
	}
}
