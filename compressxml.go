// Package compressxml flattens COMPRESS pressure vessel reports (XML) into
// tables suitable for a spreadsheet.
package compressxml // import "kastelo.dev/compressxml"

import "strings"

// Sections are the report sections extracted into their own sheets, in
// sheet order.
var Sections = []string{
	"generalVesselInfo",
	"heatExchangerGeneralInfo",
	"heatExchangerDesignConditions",
	"pressureChamberConditions",
	"vesselResults",
	"closure1",
	"closure2",
	"nozzle",
}

const (
	DataFormSheet = "DataForm_Details"
	AllDataSheet  = "All_Data"
)

var (
	RecordHeader   = []string{"Item", "Path", "Tag", "Value", "Attributes"}
	KeyValueHeader = []string{"Key", "Value", "Raw_Line"}
)

// Node is one element of a parsed document.
type Node struct {
	Name     string
	Text     string
	Attrs    []Attr
	Children []*Node
}

type Attr struct {
	Name  string
	Value string
}

// Walk calls fn for n and all its descendants in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Descendants returns all elements below n named name, in document order.
// n itself is never included.
func (n *Node) Descendants(name string) []*Node {
	var res []*Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) {
			if d.Name == name {
				res = append(res, d)
			}
		})
	}
	return res
}

// Child returns the direct children of n named name.
func (n *Node) Child(name string) []*Node {
	var res []*Node
	for _, c := range n.Children {
		if c.Name == name {
			res = append(res, c)
		}
	}
	return res
}

func (n *Node) attributes() string {
	if len(n.Attrs) == 0 {
		return ""
	}
	parts := make([]string, len(n.Attrs))
	for i, a := range n.Attrs {
		parts[i] = a.Name + "=" + a.Value
	}
	return strings.Join(parts, ", ")
}

// Record is one text bearing element.
type Record struct {
	Item       string
	Path       string
	Tag        string
	Value      string
	Attributes string
}

func (r Record) Row() []string {
	return []string{r.Item, r.Path, r.Tag, r.Value, r.Attributes}
}

// KeyValue is one %KEY%=VALUE line from a data form.
type KeyValue struct {
	Key     string
	Value   string
	RawLine string
}

func (kv KeyValue) Row() []string {
	return []string{kv.Key, kv.Value, kv.RawLine}
}

// Sheet is a named table, written as one worksheet.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

func RecordSheet(name string, recs []Record) Sheet {
	s := Sheet{Name: name, Header: RecordHeader}
	for _, r := range recs {
		s.Rows = append(s.Rows, r.Row())
	}
	return s
}

func KeyValueSheet(name string, kvs []KeyValue) Sheet {
	s := Sheet{Name: name, Header: KeyValueHeader}
	for _, kv := range kvs {
		s.Rows = append(s.Rows, kv.Row())
	}
	return s
}
