package output

import (
	"encoding/json"
)

// ToJSON serializes v (a workbook, sheet or generation result) to JSON.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
