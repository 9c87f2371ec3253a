// Package dynval models the dynamic values that documents are made of:
// a tagged-kind view over plain Go values (numbers of any width, strings,
// booleans, arrays, nested mappings, blobs), numeric narrowing/widening,
// and the msgpack codec that moves whole documents in and out of storage.
package dynval

// Kind classifies a dynamic value the way the document model sees it:
// numbers are one kind regardless of width, and recognized blob-tagged
// mappings are blobs, not dicts.
type Kind uint8

const (
	KindMissing Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindDict
	KindBlob
)

var kindNames = [...]string{"missing", "bool", "number", "string", "array", "dict", "blob"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// KindOf reports the dynamic kind of v. A nil reads as Missing: the model
// does not distinguish a stored null from an absent key.
func KindOf(v any) Kind {
	switch v := v.(type) {
	case nil:
		return KindMissing
	case bool:
		return KindBool
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr, float32, float64:
		return KindNumber
	case []any:
		return KindArray
	case *List:
		return KindArray
	case *Blob:
		return KindBlob
	case map[string]any:
		if isBlobMap(v) {
			return KindBlob
		}
		return KindDict
	default:
		return KindMissing
	}
}

// List is a mutable sequence under construction. It is attached to its
// parent mapping at creation time, so appends made before the document is
// encoded are all visible; the encoder flattens it to a plain array.
type List struct {
	Elems []any
}

func (l *List) Append(v any) {
	l.Elems = append(l.Elems, v)
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Elems)
}
