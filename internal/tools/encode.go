package tools

import "encoding/json"

// encodeJSON renders tool output the way the model sees it: two-space
// indented JSON. Map keys marshal in sorted order, so repeated calls over
// the same data produce identical text.
func encodeJSON(value any) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
