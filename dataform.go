package compressxml

import (
	"strings"
	"unicode/utf8"
)

// ParseDataForm collects the %KEY%=VALUE lines of every dataForm/formData
// element. Lines not in that form are skipped.
func ParseDataForm(root *Node) []KeyValue {
	var res []KeyValue
	for _, form := range root.Descendants("dataForm") {
		for _, data := range form.Child("formData") {
			if strings.TrimSpace(data.Text) == "" {
				continue
			}
			for _, line := range strings.Split(data.Text, "\n") {
				if kv, ok := parseFormLine(line); ok {
					res = append(res, kv)
				}
			}
		}
	}
	return res
}

// parseFormLine expects %KEY%=VALUE. The character after the closing
// percent sign is skipped whatever it is, so %KEY%VALUE=X gives the value
// ALUE=X.
func parseFormLine(raw string) (KeyValue, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] != '%' || !strings.Contains(line, "=") || strings.Count(line, "%") < 2 {
		return KeyValue{}, false
	}

	keyEnd := 1 + strings.IndexByte(line[1:], '%')
	var value string
	if rest := line[keyEnd+1:]; rest != "" {
		_, width := utf8.DecodeRuneInString(rest)
		value = rest[width:]
	}

	return KeyValue{
		Key:     line[1:keyEnd],
		Value:   value,
		RawLine: raw,
	}, true
}
