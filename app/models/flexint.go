package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cast"
)

// FlexInt is an integer that also decodes from a numeric JSON string.
// The blog API answers updates with "id" and "likes" quoted.
type FlexInt int

// UnmarshalJSON accepts 3, "3" and null.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if s, ok := raw.(string); ok && s == "" {
		*f = 0
		return nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", data, err)
	}
	*f = FlexInt(n)
	return nil
}

// String returns the decimal form used in paths and element ids.
func (f FlexInt) String() string {
	return strconv.Itoa(int(f))
}

// Int returns f as a plain int.
func (f FlexInt) Int() int {
	return int(f)
}
