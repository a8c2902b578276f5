package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Number is a float64 that tolerates JSON values encoded as either a number
// or a numeric string. The gateway is inconsistent about this for prices and
// quantities, so every money/quantity field uses Number instead of float64.
type Number float64

// UnmarshalJSON accepts 12.5, "12.5" and "" (treated as zero).
func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty numeric value")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric value %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// MarshalJSON always emits a plain JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float64 returns the underlying value.
func (n Number) Float64() float64 {
	return float64(n)
}
