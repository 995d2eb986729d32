package compressxml

import "strings"

// Flatten returns a record for n and each of its descendants that carries
// non-blank text, in document order. Paths are label/tag, or just the tag
// when label is empty.
func Flatten(n *Node, item, label string) []Record {
	var recs []Record
	n.Walk(func(c *Node) {
		value := strings.TrimSpace(c.Text)
		if value == "" {
			return
		}
		path := c.Name
		if label != "" {
			path = label + "/" + c.Name
		}
		recs = append(recs, Record{
			Item:       item,
			Path:       path,
			Tag:        c.Name,
			Value:      value,
			Attributes: c.attributes(),
		})
	})
	return recs
}
