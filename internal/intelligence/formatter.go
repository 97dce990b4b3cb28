package intelligence

import (
	"encoding/json"
	"fmt"
)

// FormatOutline serializes an outline to the submission schema with
// two-space indentation. The outline array is always present, never null,
// and its order equals document order. Output is byte-identical for equal
// inputs.
func FormatOutline(o Outline) ([]byte, error) {
	if o.Entries == nil {
		o.Entries = []OutlineEntry{}
	}
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling outline: %w", err)
	}
	return append(data, '\n'), nil
}
