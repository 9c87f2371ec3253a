package doclite

import (
	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/doclite/doclite/dynval"
)

// DocWriter is a mutable, in-progress document. Exactly one of Save or
// Discard ends its life; every setter after that is a no-op. Setters with a
// nil writer or an empty key are no-ops too, matching the rest of the
// package's treatment of caller-contract violations.
type DocWriter struct {
	s     *Session
	id    string
	props map[string]any
	done  bool
}

// NewDoc starts a document under docID, overwriting any existing document
// with that id on save. An empty id gets a generated one; read it back with
// ID.
func (s *Session) NewDoc(docID string) *DocWriter {
	if s == nil || s.ended {
		return nil
	}
	if docID == "" {
		docID = uuid.NewString()
	}
	return &DocWriter{
		s:     s,
		id:    docID,
		props: make(map[string]any),
	}
}

func (w *DocWriter) ID() string {
	if w == nil {
		return ""
	}
	return w.id
}

func (w *DocWriter) dead() bool {
	return w == nil || w.done
}

func (w *DocWriter) SetInt64(key string, v int64) {
	if w.dead() || key == "" {
		return
	}
	w.props[key] = v
}

func (w *DocWriter) SetUint64(key string, v uint64) {
	if w.dead() || key == "" {
		return
	}
	w.props[key] = v
}

func (w *DocWriter) SetFloat64(key string, v float64) {
	if w.dead() || key == "" {
		return
	}
	w.props[key] = v
}

func (w *DocWriter) SetBool(key string, v bool) {
	if w.dead() || key == "" {
		return
	}
	w.props[key] = v
}

func (w *DocWriter) SetString(key string, v string) {
	if w.dead() || key == "" {
		return
	}
	w.props[key] = v
}

// SetFloat64s attaches a fresh sequence of the given elements under key.
func (w *DocWriter) SetFloat64s(key string, vals []float64) {
	if w.dead() || key == "" {
		return
	}
	elems := make([]any, len(vals))
	for i, v := range vals {
		elems[i] = v
	}
	w.props[key] = elems
}

// SetInt64s attaches a fresh sequence of the given elements under key.
func (w *DocWriter) SetInt64s(key string, vals []int64) {
	if w.dead() || key == "" {
		return
	}
	elems := make([]any, len(vals))
	for i, v := range vals {
		elems[i] = v
	}
	w.props[key] = elems
}

// SetBlob attaches a binary value under key. A "" contentType means
// application/octet-stream. Returns false on a dead writer or empty key.
func (w *DocWriter) SetBlob(key string, data []byte, contentType string) bool {
	if w.dead() || key == "" {
		return false
	}
	w.props[key] = dynval.NewBlob(contentType, data)
	return true
}

// SetFields bulk-sets every entry of fields as a dynamic value. Nested maps
// and slices are carried as nested mappings and sequences.
func (w *DocWriter) SetFields(fields map[string]any) {
	if w.dead() {
		return
	}
	for k, v := range fields {
		if k == "" {
			continue
		}
		w.props[k] = v
	}
}

// Dict is a nested mapping under construction. It is attached to the
// document the moment BeginDict returns; EndDict seals it.
type Dict struct {
	m    map[string]any
	done bool
}

func (w *DocWriter) BeginDict(key string) *Dict {
	if w.dead() || key == "" {
		return nil
	}
	d := &Dict{m: make(map[string]any)}
	w.props[key] = d.m
	return d
}

func (w *DocWriter) EndDict(d *Dict) {
	if d != nil {
		d.done = true
	}
}

func (d *Dict) dead() bool {
	return d == nil || d.done
}

func (d *Dict) SetInt64(key string, v int64) {
	if d.dead() || key == "" {
		return
	}
	d.m[key] = v
}

func (d *Dict) SetUint64(key string, v uint64) {
	if d.dead() || key == "" {
		return
	}
	d.m[key] = v
}

func (d *Dict) SetFloat64(key string, v float64) {
	if d.dead() || key == "" {
		return
	}
	d.m[key] = v
}

func (d *Dict) SetBool(key string, v bool) {
	if d.dead() || key == "" {
		return
	}
	d.m[key] = v
}

func (d *Dict) SetString(key string, v string) {
	if d.dead() || key == "" {
		return
	}
	d.m[key] = v
}

// Array is a nested sequence under construction, attached at BeginArray and
// sealed by EndArray. Appends between the two grow the attached sequence.
type Array struct {
	list *dynval.List
	done bool
}

func (w *DocWriter) BeginArray(key string) *Array {
	if w.dead() || key == "" {
		return nil
	}
	a := &Array{list: &dynval.List{}}
	w.props[key] = a.list
	return a
}

func (w *DocWriter) EndArray(a *Array) {
	if a != nil {
		a.done = true
	}
}

func (a *Array) dead() bool {
	return a == nil || a.done
}

func (a *Array) AppendInt64(v int64) {
	if !a.dead() {
		a.list.Append(v)
	}
}

func (a *Array) AppendUint64(v uint64) {
	if !a.dead() {
		a.list.Append(v)
	}
}

func (a *Array) AppendFloat64(v float64) {
	if !a.dead() {
		a.list.Append(v)
	}
}

func (a *Array) AppendBool(v bool) {
	if !a.dead() {
		a.list.Append(v)
	}
}

func (a *Array) AppendString(v string) {
	if !a.dead() {
		a.list.Append(v)
	}
}

// Save commits the document into the session's collection, inside the
// session transaction when one is active. The writer is spent afterwards
// whether or not the save succeeded; failures are logged and reported as
// false.
func (w *DocWriter) Save() bool {
	if w.dead() || w.s.ended {
		return false
	}
	w.done = true
	db := w.s.db

	raw, err := dynval.EncodeDoc(w.props)
	if err != nil {
		db.logf("doclite: SAVE %s/%s: encoding document: %v", db.coll, w.id, err)
		w.props = nil
		return false
	}
	err = w.s.update(func(b *bbolt.Bucket) error {
		return b.Put([]byte(w.id), raw)
	})
	w.props = nil
	if err != nil {
		db.logf("doclite: SAVE %s/%s: %v", db.coll, w.id, err)
		return false
	}
	if db.verbose {
		db.logf("doclite: SAVE %s/%s", db.coll, w.id)
	}
	return true
}

// Discard drops the writer and everything set on it without touching the
// collection. Safe on a writer that was never saved, on nil, and after
// Save.
func (w *DocWriter) Discard() {
	if w == nil {
		return
	}
	w.done = true
	w.props = nil
}
