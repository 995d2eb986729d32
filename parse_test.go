package compressxml

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	fd, err := os.Open("testdata/vessel.xml")
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()

	root, err := Parse(fd)
	if err != nil {
		t.Fatal(err)
	}

	if root.Name != "compressReport" {
		t.Errorf("root %q", root.Name)
	}
	if exp := []Attr{{"version", "2024"}}; !reflect.DeepEqual(root.Attrs, exp) {
		t.Errorf("root attrs %#v, expected %#v", root.Attrs, exp)
	}
	if len(root.Children) != 6 {
		t.Fatalf("%d children, expected 6", len(root.Children))
	}

	mawp := root.Descendants("mawp")
	if len(mawp) != 1 {
		t.Fatalf("%d mawp, expected 1", len(mawp))
	}
	if mawp[0].Text != "150" {
		t.Errorf("mawp text %q", mawp[0].Text)
	}
	if got := mawp[0].attributes(); got != "units=psi, basis=hot & corroded" {
		t.Errorf("mawp attributes %q", got)
	}
}

func TestParseText(t *testing.T) {
	cases := []struct {
		in   string
		text []string
	}{
		{`<a>hello</a>`, []string{"hello"}},
		{`<a>head<b>inner</b>tail</a>`, []string{"head", "inner"}},
		{`<a><b/>tail only</a>`, []string{"", ""}},
		{`<a>x<!-- note -->y<b/></a>`, []string{"xy", ""}},
		{`<a><![CDATA[<raw>]]> text</a>`, []string{"<raw> text"}},
		{`<a>1 &lt; 2</a>`, []string{"1 < 2"}},
	}

	for _, tc := range cases {
		root, err := Parse(strings.NewReader(tc.in))
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		var texts []string
		root.Walk(func(n *Node) { texts = append(texts, n.Text) })
		if !reflect.DeepEqual(texts, tc.text) {
			t.Errorf("Parse(%q) texts %#v, expected %#v", tc.in, texts, tc.text)
		}
	}
}

func TestParseAttributes(t *testing.T) {
	in := `<r xmlns="urn:default" xmlns:x="urn:x" b="2" a="1" x:c="3" xml:lang="en"/>`
	root, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	exp := []Attr{
		{"b", "2"},
		{"a", "1"},
		{"{urn:x}c", "3"},
		{"{http://www.w3.org/XML/1998/namespace}lang", "en"},
	}
	if !reflect.DeepEqual(root.Attrs, exp) {
		t.Errorf("attrs %#v, expected %#v", root.Attrs, exp)
	}
	if root.Name != "r" {
		t.Errorf("name %q, expected local name", root.Name)
	}
}

func TestParseCharset(t *testing.T) {
	in := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><r>caf\xe9</r>"
	root, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if root.Text != "café" {
		t.Errorf("text %q", root.Text)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		``,
		`   `,
		`<?xml version="1.0"?><!-- nothing -->`,
		`<a>`,
		`<a></b>`,
		`<a/><b/>`,
		`<a/>trailing`,
		`leading<a/>`,
		`<a>&nbsp;</a>`,
		`<?xml version="1.0" encoding="no-such-charset"?><a/>`,
	}

	for _, in := range cases {
		_, err := Parse(strings.NewReader(in))
		if err == nil {
			t.Errorf("unexpected success: %q", in)
		} else if !errors.Is(err, ErrMalformed) {
			t.Errorf("error for %q does not wrap ErrMalformed: %v", in, err)
		}
	}
}

func TestParseTrailingWhitespace(t *testing.T) {
	if _, err := Parse(strings.NewReader("\ufeff<a/>\n\n<!-- end -->\n")); err != nil {
		t.Error(err)
	}
}
