package compressxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrMalformed is returned, wrapped, for input that is not a single well
// formed XML document.
var ErrMalformed = errors.New("malformed XML")

type frame struct {
	node   *Node
	text   strings.Builder
	closed bool
}

// closeText fixes the node text once the first child element (or the end
// tag) is seen. Character data after that point is tail text and belongs to
// no node.
func (f *frame) closeText() {
	if f.closed {
		return
	}
	f.node.Text = f.text.String()
	f.closed = true
}

func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var root *Node
	var stack []*frame

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Name:  t.Name.Local,
				Attrs: attributes(t.Attr),
			}
			if len(stack) == 0 {
				if root != nil {
					line, _ := dec.InputPos()
					return nil, fmt.Errorf("%w: junk after document element: line %d", ErrMalformed, line)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.closeText()
				parent.node.Children = append(parent.node.Children, n)
			}
			stack = append(stack, &frame{node: n})

		case xml.EndElement:
			stack[len(stack)-1].closeText()
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(strings.TrimPrefix(string(t), "\ufeff")) != "" {
					line, _ := dec.InputPos()
					return nil, fmt.Errorf("%w: text outside document element: line %d", ErrMalformed, line)
				}
				continue
			}
			if f := stack[len(stack)-1]; !f.closed {
				f.text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no element found", ErrMalformed)
	}
	return root, nil
}

// attributes drops namespace declarations and renders namespaced names as
// {uri}local.
func attributes(attrs []xml.Attr) []Attr {
	var res []Attr
	for _, a := range attrs {
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			continue
		case a.Name.Space == "xmlns":
			continue
		case a.Name.Space != "":
			res = append(res, Attr{Name: "{" + a.Name.Space + "}" + a.Name.Local, Value: a.Value})
		default:
			res = append(res, Attr{Name: a.Name.Local, Value: a.Value})
		}
	}
	return res
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		enc, err = ianaindex.IANA.Encoding(label)
	}
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
