package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NumericText keeps the literal text of a JSON field that may arrive either
// as a number or as a string. null and absent both decode to "".
type NumericText string

func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected number or string, got %s", data)
	}
	*n = NumericText(num.String())
	return nil
}

func (n NumericText) String() string {
	return string(n)
}
