package doclite

import (
	"errors"
	"strings"
	"testing"
)

func TestCollectionError_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := collErrf("inventory", "parts", "p1", inner, "oops %d", 1)
	var ce *CollectionError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %T, wanted *CollectionError", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(err, inner) = false, wanted true")
	}
	s := err.Error()
	if !strings.Contains(s, "inventory.parts/p1") || !strings.Contains(s, "oops 1") || !strings.Contains(s, "inner") {
		t.Fatalf("err.Error() = %q, wanted scope.coll/id, msg and inner", s)
	}

	s = (&CollectionError{Scope: "s", Collection: "c", Err: inner}).Error()
	if s != "s.c: inner" {
		t.Fatalf("CollectionError.Error() = %q, wanted %q", s, "s.c: inner")
	}

	s = (&CollectionError{Scope: "s", Collection: "c", Msg: "gone"}).Error()
	if s != "s.c: gone" {
		t.Fatalf("CollectionError.Error() = %q, wanted %q", s, "s.c: gone")
	}
}
