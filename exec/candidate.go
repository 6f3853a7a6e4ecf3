package exec

import (
	"encoding/json"
	"math"
	"strconv"
)

// candidateKind classifies the values passed to [Parse].
type candidateKind uint8

const (
	kindOther candidateKind = iota
	kindString
	kindNumber
)

// classify returns the kind of candidate along with its string value for
// strings and its integer value for numbers. Floats count as numbers only if
// they are integral.
func classify(candidate any) (candidateKind, string, int64) {
	switch v := candidate.(type) {
	case string:
		return kindString, v, 0
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return kindOther, "", 0
		}
		return kindNumber, "", n
	case int:
		return kindNumber, "", int64(v)
	case int8:
		return kindNumber, "", int64(v)
	case int16:
		return kindNumber, "", int64(v)
	case int32:
		return kindNumber, "", int64(v)
	case int64:
		return kindNumber, "", v
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return kindNumber, "", int64(v)
	case uint16:
		return kindNumber, "", int64(v)
	case uint32:
		return kindNumber, "", int64(v)
	case uint64:
		return fromUint(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	default:
		return kindOther, "", 0
	}
}

func fromUint(v uint64) (candidateKind, string, int64) {
	if v > math.MaxInt64 {
		return kindOther, "", 0
	}
	return kindNumber, "", int64(v)
}

func fromFloat(v float64) (candidateKind, string, int64) {
	if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return kindOther, "", 0
	}
	return kindNumber, "", int64(v)
}
