package dto

import (
	"bytes"
	"encoding/json"
)

// LooseNumber accepts a JSON number or a string holding one. Forms post budgets as
// strings, API clients as numbers. The raw text is kept for lenient parsing later.
type LooseNumber string

func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = LooseNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = LooseNumber(num.String())
	return nil
}
