package dynval

// Numeric coercion. The engine's value model carries numbers without a fixed
// width; callers read them back through whichever typed accessor they want,
// and we narrow or widen here. Decoded documents hold int64/uint64/float64,
// but values set straight from caller maps can be any Go numeric type.

func IsNumber(v any) bool {
	return KindOf(v) == KindNumber
}

func AsInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uintptr:
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func AsUint64(v any) (uint64, bool) {
	switch v := v.(type) {
	case int:
		return uint64(v), true
	case int8:
		return uint64(v), true
	case int16:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uintptr:
		return uint64(v), true
	case float32:
		return uint64(v), true
	case float64:
		return uint64(v), true
	default:
		return 0, false
	}
}

func AsFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uintptr:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// AsBool accepts booleans and numbers; a number is true when nonzero.
func AsBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if f, ok := AsFloat64(v); ok {
		return f != 0, true
	}
	return false, false
}

func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsArray returns the elements of an array value. Lists under construction
// count as arrays too, so a document can be read back before encoding.
func AsArray(v any) ([]any, bool) {
	switch v := v.(type) {
	case []any:
		return v, true
	case *List:
		if v == nil {
			return nil, false
		}
		return v.Elems, true
	default:
		return nil, false
	}
}

func AsDict(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok || isBlobMap(m) {
		return nil, false
	}
	return m, true
}
