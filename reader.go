package doclite

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/doclite/doclite/dynval"
)

// DocReader is a read-only snapshot of one document's properties, detached
// from the engine: it stays valid after the session ends. Typed getters
// fail soft, returning the zero value and false when the key is absent or
// holds a value of an incompatible kind.
type DocReader struct {
	id    string
	props map[string]any
}

func (r *DocReader) ID() string {
	if r == nil {
		return ""
	}
	return r.id
}

// Free releases the snapshot. Getters on a freed reader behave as if every
// key were absent. Safe to call twice and on nil.
func (r *DocReader) Free() {
	if r != nil {
		r.props = nil
	}
}

func (r *DocReader) get(key string) any {
	if r == nil || key == "" {
		return nil
	}
	return r.props[key]
}

// Has reports key presence regardless of the value's kind.
func (r *DocReader) Has(key string) bool {
	if r == nil || key == "" {
		return false
	}
	_, found := r.props[key]
	return found
}

// Keys returns the document's top-level keys, sorted.
func (r *DocReader) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.props))
	for k := range r.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Kind reports the dynamic kind of the value under key (dynval.Missing when
// absent).
func (r *DocReader) Kind(key string) dynval.Kind {
	return dynval.KindOf(r.get(key))
}

func (r *DocReader) GetInt64(key string) (int64, bool) {
	v := r.get(key)
	if !dynval.IsNumber(v) {
		return 0, false
	}
	return dynval.AsInt64(v)
}

func (r *DocReader) GetUint64(key string) (uint64, bool) {
	v := r.get(key)
	if !dynval.IsNumber(v) {
		return 0, false
	}
	return dynval.AsUint64(v)
}

func (r *DocReader) GetFloat64(key string) (float64, bool) {
	v := r.get(key)
	if !dynval.IsNumber(v) {
		return 0, false
	}
	return dynval.AsFloat64(v)
}

// GetBool accepts booleans and, via truthiness, numbers.
func (r *DocReader) GetBool(key string) (bool, bool) {
	return dynval.AsBool(r.get(key))
}

func (r *DocReader) GetString(key string) (string, bool) {
	return dynval.AsString(r.get(key))
}

// CopyString copies at most len(dst) bytes of the string under key into dst
// and returns the count; 0 when absent or not a string. Excess bytes are
// dropped.
func (r *DocReader) CopyString(key string, dst []byte) int {
	s, ok := dynval.AsString(r.get(key))
	if !ok {
		return 0
	}
	return copy(dst, s)
}

// Float64s returns the sequence under key as float64 elements, coercing
// non-numeric elements to 0. Nil when absent or not a sequence.
func (r *DocReader) Float64s(key string) []float64 {
	elems, ok := dynval.AsArray(r.get(key))
	if !ok {
		return nil
	}
	out := make([]float64, len(elems))
	for i, e := range elems {
		out[i], _ = dynval.AsFloat64(e)
	}
	return out
}

// Float64sInto copies min(sequence length, len(out)) leading elements into
// out and returns the count; 0 when absent or not a sequence.
func (r *DocReader) Float64sInto(key string, out []float64) int {
	elems, ok := dynval.AsArray(r.get(key))
	if !ok {
		return 0
	}
	n := min(len(elems), len(out))
	for i := 0; i < n; i++ {
		out[i], _ = dynval.AsFloat64(elems[i])
	}
	return n
}

// Int64s is Float64s for integer reads.
func (r *DocReader) Int64s(key string) []int64 {
	elems, ok := dynval.AsArray(r.get(key))
	if !ok {
		return nil
	}
	out := make([]int64, len(elems))
	for i, e := range elems {
		out[i], _ = dynval.AsInt64(e)
	}
	return out
}

// Int64sInto is Float64sInto for integer reads.
func (r *DocReader) Int64sInto(key string, out []int64) int {
	elems, ok := dynval.AsArray(r.get(key))
	if !ok {
		return 0
	}
	n := min(len(elems), len(out))
	for i := 0; i < n; i++ {
		out[i], _ = dynval.AsInt64(elems[i])
	}
	return n
}

// Blob returns the binary value under key.
func (r *DocReader) Blob(key string) (*dynval.Blob, bool) {
	return dynval.AsBlob(r.get(key))
}

// BlobInto copies at most len(dst) bytes of the blob's content into dst and
// at most len(ctDst) bytes of its content type into ctDst, returning both
// counts. Zero counts when absent or not a blob.
func (r *DocReader) BlobInto(key string, dst, ctDst []byte) (n, ctn int) {
	b, ok := dynval.AsBlob(r.get(key))
	if !ok {
		return 0, 0
	}
	return copy(dst, b.Data), copy(ctDst, b.ContentType)
}

// Dict returns the nested mapping under key as a sub-reader sharing the
// snapshot.
func (r *DocReader) Dict(key string) (*DocReader, bool) {
	m, ok := dynval.AsDict(r.get(key))
	if !ok {
		return nil, false
	}
	return &DocReader{id: r.id, props: m}, true
}

// Decode maps the whole document onto target (a struct pointer or map),
// using `doclite` field tags. Numeric fields narrow or widen the way the
// typed getters do.
func (r *DocReader) Decode(target any) error {
	if r == nil {
		return fmt.Errorf("doclite: nil reader")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "doclite",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.props)
}
