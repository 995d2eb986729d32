package compressxml

// Convert lays out the sheets of a report workbook: one per section with
// data, DataForm_Details when any form lines were found, and All_Data last.
// All_Data is present even when it has no rows.
func Convert(root *Node) []Sheet {
	var sheets []Sheet
	for _, sec := range ExtractSections(root) {
		sheets = append(sheets, RecordSheet(sec.Section, sec.Records))
	}
	if kvs := ParseDataForm(root); len(kvs) > 0 {
		sheets = append(sheets, KeyValueSheet(DataFormSheet, kvs))
	}
	return append(sheets, RecordSheet(AllDataSheet, AllData(root)))
}
