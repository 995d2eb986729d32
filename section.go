package compressxml

import "strconv"

// ExtractSection flattens every element named tag below root. The i:th
// occurrence gets item tag+i, counting from one. A tag that does not occur
// gives nil.
func ExtractSection(root *Node, tag string) []Record {
	var recs []Record
	for i, n := range root.Descendants(tag) {
		recs = append(recs, Flatten(n, tag+strconv.Itoa(i+1), tag)...)
	}
	return recs
}

type SectionRecords struct {
	Section string
	Records []Record
}

// ExtractSections runs ExtractSection for each of Sections, in order,
// leaving out sections without records.
func ExtractSections(root *Node) []SectionRecords {
	var res []SectionRecords
	for _, sec := range Sections {
		recs := ExtractSection(root, sec)
		if len(recs) == 0 {
			continue
		}
		res = append(res, SectionRecords{Section: sec, Records: recs})
	}
	return res
}
