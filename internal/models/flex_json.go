package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt is an integer that also accepts a string-encoded or integral float
// JSON value, so "25" and 25 decode the same.
type FlexInt int

// UnmarshalJSON implements lenient integer decoding.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	// Fast path: native number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return f.fromString(n.String())
	}

	// Slow path: quoted value
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flex int: expected integer, got %s", string(data))
	}
	return f.fromString(strings.TrimSpace(s))
}

func (f *FlexInt) fromString(s string) error {
	if i, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(i)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("flex int: invalid integer %q", s)
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Errorf("flex int: %q is not a whole number", s)
	}
	*f = FlexInt(int(v))
	return nil
}

// Int returns the plain int value.
func (f FlexInt) Int() int { return int(f) }
