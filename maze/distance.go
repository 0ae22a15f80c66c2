package maze

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Unreachable is the distance recorded for cells the solver never reached.
var Unreachable = math.Inf(1)

// DistanceField maps a row-major cell index to its distance from the start.
//
// On the wire unreachable cells arrive as null (JSON has no infinity) or as a
// negative number; both decode to Unreachable. Any other number, including
// integer sentinels such as 2147483647, is kept as a finite distance.
type DistanceField []float64

// Reachable reports whether index holds a real distance.
func (d DistanceField) Reachable(index int) bool {
	return index >= 0 && index < len(d) && !math.IsInf(d[index], 1) && !math.IsNaN(d[index])
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DistanceField) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	field := make(DistanceField, len(raw))
	for i, v := range raw {
		if v == nil || *v < 0 {
			field[i] = Unreachable
			continue
		}
		field[i] = *v
	}
	*d = field
	return nil
}

// MarshalJSON implements json.Marshaler, writing null for unreachable cells.
func (d DistanceField) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
