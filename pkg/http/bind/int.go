package bind

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Int is an integer field that also accepts a quoted numeric string, since
// form-driven clients often send select values as strings.
type Int int

// UnmarshalJSON accepts 3 and "3" alike.
func (i *Int) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected integer, got %s", b)
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return fmt.Errorf("expected integer, got %s", b)
	}
	*i = Int(v)
	return nil
}

// Ints converts a slice of Int to plain ints.
func Ints(in []Int) []int {
	out := make([]int, len(in))
	for idx, v := range in {
		out[idx] = int(v)
	}
	return out
}
