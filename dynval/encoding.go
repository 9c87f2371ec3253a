package dynval

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Documents are stored as msgpack maps with sorted string keys. Encoding
// normalizes live builder values first: a *List flattens to a plain array,
// a *Blob becomes its tagged mapping. Decoding keeps numbers wide (int64,
// uint64, float64) so the coercion helpers see a small set of types.

func EncodeDoc(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	err := enc.Encode(Normalize(doc))
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeDoc(data []byte) (map[string]any, error) {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	dec.UseLooseInterfaceDecoding(true)
	var doc map[string]any
	err := dec.Decode(&doc)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Normalize returns a copy of doc with builder values replaced by their
// storable forms, recursively.
func Normalize(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case *List:
		if v == nil {
			return []any(nil)
		}
		return normalizeSlice(v.Elems)
	case *Blob:
		if v == nil {
			return nil
		}
		return v.taggedMap()
	case []any:
		return normalizeSlice(v)
	case map[string]any:
		return Normalize(v)
	default:
		return v
	}
}

func normalizeSlice(elems []any) []any {
	out := make([]any, len(elems))
	for i, e := range elems {
		out[i] = normalizeValue(e)
	}
	return out
}
