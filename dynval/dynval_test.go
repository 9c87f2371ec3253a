package dynval

import (
	"reflect"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		v any
		k Kind
	}{
		{nil, KindMissing},
		{true, KindBool},
		{"x", KindString},
		{int64(1), KindNumber},
		{uint8(1), KindNumber},
		{3.5, KindNumber},
		{[]any{1}, KindArray},
		{&List{}, KindArray},
		{map[string]any{"a": 1}, KindDict},
		{NewBlob("", []byte("x")), KindBlob},
		{NewBlob("", []byte("x")).taggedMap(), KindBlob},
		{struct{}{}, KindMissing},
	}
	for _, c := range cases {
		if got := KindOf(c.v); got != c.k {
			t.Errorf("** KindOf(%v) = %v, wanted %v", c.v, got, c.k)
		}
	}
}

func TestNumericCoercion(t *testing.T) {
	if v, ok := AsInt64(3.9); !ok || v != 3 {
		t.Errorf("** AsInt64(3.9) = %v, %v", v, ok)
	}
	if v, ok := AsFloat64(int8(-2)); !ok || v != -2 {
		t.Errorf("** AsFloat64(int8) = %v, %v", v, ok)
	}
	if v, ok := AsUint64(uint64(1 << 63)); !ok || v != 1<<63 {
		t.Errorf("** AsUint64 = %v, %v", v, ok)
	}
	if _, ok := AsInt64("5"); ok {
		t.Error("** AsInt64 accepted a string")
	}
	if b, ok := AsBool(int64(7)); !ok || !b {
		t.Errorf("** AsBool(7) = %v, %v", b, ok)
	}
	if b, ok := AsBool(0.0); !ok || b {
		t.Errorf("** AsBool(0.0) = %v, %v", b, ok)
	}
	if _, ok := AsBool("yes"); ok {
		t.Error("** AsBool accepted a string")
	}
}

func TestDocRoundTrip(t *testing.T) {
	list := &List{}
	list.Append(int64(1))
	list.Append("two")

	doc := map[string]any{
		"i":    int64(-5),
		"u":    uint64(1 << 62),
		"f":    2.25,
		"s":    "text",
		"b":    true,
		"arr":  list,
		"blob": NewBlob("text/plain", []byte("abc")),
		"sub":  map[string]any{"k": int64(9)},
	}

	raw, err := EncodeDoc(doc)
	if err != nil {
		t.Fatalf("** encode: %v", err)
	}
	back, err := DecodeDoc(raw)
	if err != nil {
		t.Fatalf("** decode: %v", err)
	}

	if v, _ := AsInt64(back["i"]); v != -5 {
		t.Errorf("** i = %v", back["i"])
	}
	if v, _ := AsUint64(back["u"]); v != 1<<62 {
		t.Errorf("** u = %v", back["u"])
	}
	if v, _ := AsFloat64(back["f"]); v != 2.25 {
		t.Errorf("** f = %v", back["f"])
	}
	if v, _ := AsString(back["s"]); v != "text" {
		t.Errorf("** s = %v", back["s"])
	}

	elems, ok := AsArray(back["arr"])
	if !ok || len(elems) != 2 {
		t.Fatalf("** arr = %v", back["arr"])
	}
	if v, _ := AsInt64(elems[0]); v != 1 {
		t.Errorf("** arr[0] = %v", elems[0])
	}
	if v, _ := AsString(elems[1]); v != "two" {
		t.Errorf("** arr[1] = %v", elems[1])
	}

	blob, ok := AsBlob(back["blob"])
	if !ok {
		t.Fatalf("** blob = %v", back["blob"])
	}
	if blob.ContentType != "text/plain" || !reflect.DeepEqual(blob.Data, []byte("abc")) {
		t.Errorf("** blob = %+v", blob)
	}
	if blob.Digest != NewBlob("", []byte("abc")).Digest {
		t.Errorf("** digest mismatch: %x", blob.Digest)
	}

	sub, ok := AsDict(back["sub"])
	if !ok {
		t.Fatalf("** sub = %v", back["sub"])
	}
	if v, _ := AsInt64(sub["k"]); v != 9 {
		t.Errorf("** sub.k = %v", sub["k"])
	}

	// a blob-tagged mapping must not read back as a plain dict
	if _, ok := AsDict(back["blob"]); ok {
		t.Error("** blob mapping readable as dict")
	}
	if KindOf(back["blob"]) != KindBlob {
		t.Errorf("** KindOf(blob) = %v", KindOf(back["blob"]))
	}
}

func TestNormalizeDoesNotAliasBuilders(t *testing.T) {
	list := &List{}
	list.Append(int64(1))
	doc := map[string]any{"arr": list}

	norm := Normalize(doc)
	list.Append(int64(2))

	elems, _ := AsArray(norm["arr"])
	if len(elems) != 1 {
		t.Errorf("** normalized array grew with the builder: %v", elems)
	}
}

func TestEmptyDoc(t *testing.T) {
	raw, err := EncodeDoc(map[string]any{})
	if err != nil {
		t.Fatalf("** encode: %v", err)
	}
	back, err := DecodeDoc(raw)
	if err != nil {
		t.Fatalf("** decode: %v", err)
	}
	if len(back) != 0 {
		t.Errorf("** back = %v", back)
	}
}
