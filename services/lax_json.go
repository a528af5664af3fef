package services

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LaxInt decodes a JSON number or numeric string into an int. Anything else,
// including null, decodes to 0 instead of failing.
type LaxInt int

func (n *LaxInt) UnmarshalJSON(data []byte) error {
	*n = 0

	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	if i, err := strconv.Atoi(raw); err == nil {
		*n = LaxInt(i)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		f >= math.MinInt32 && f <= math.MaxInt32 {
		*n = LaxInt(int(f))
	}
	return nil
}

// LaxString decodes a JSON string as-is and any other scalar as its literal
// text. null decodes to "".
type LaxString string

func (s *LaxString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LaxString(v)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	*s = LaxString(data)
	return nil
}
