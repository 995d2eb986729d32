package compressxml

// DocumentRecords flattens the whole document. Every record has the root
// element name as item and the bare tag as path.
func DocumentRecords(root *Node) []Record {
	return Flatten(root, root.Name, "")
}

// AllData is the records of all sections, in section order, followed by
// DocumentRecords.
func AllData(root *Node) []Record {
	var recs []Record
	for _, sec := range ExtractSections(root) {
		recs = append(recs, sec.Records...)
	}
	return append(recs, DocumentRecords(root)...)
}

// Preview returns at most limit rows of DocumentRecords. A limit of zero or
// less returns everything.
func Preview(root *Node, limit int) []Record {
	recs := DocumentRecords(root)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
