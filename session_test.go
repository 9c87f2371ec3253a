package doclite

import "testing"

func TestTransactionCommit(t *testing.T) {
	db := setup(t)

	s := must(db.BeginWith(true))
	eq(t, s.InTransaction(), true)
	w := s.NewDoc("d1")
	w.SetInt64("n", 1)
	eq(t, w.Save(), true)

	// the session sees its own uncommitted write
	nonNil(t, s.Get("d1"))
	s.End()

	s2 := db.Begin()
	defer s2.End()
	nonNil(t, s2.Get("d1"))
}

func TestTransactionRollback(t *testing.T) {
	db := setup(t)

	s := db.Begin()
	w := s.NewDoc("keep")
	w.SetInt64("n", 1)
	eq(t, w.Save(), true)
	s.End()

	s = must(db.BeginWith(true))
	w = s.NewDoc("gone")
	w.SetInt64("n", 2)
	eq(t, w.Save(), true)
	w = s.NewDoc("keep")
	w.SetInt64("n", 99)
	eq(t, w.Save(), true)
	s.EndWith(false)

	s2 := db.Begin()
	defer s2.End()
	isnil(t, s2.Get("gone"))
	r := s2.Get("keep")
	nonNil(t, r)
	n, ok := r.GetInt64("n")
	eq(t, ok, true)
	eq(t, n, 1)
}

func TestBeginWithoutTransaction(t *testing.T) {
	db := setup(t)
	s := must(db.BeginWith(false))
	eq(t, s.InTransaction(), false)
	s.End()
}

func TestSessionEndTwice(t *testing.T) {
	db := setup(t)
	s := must(db.BeginWith(true))
	s.End()
	s.End()
	s.EndWith(false)

	// a spent session refuses new work
	isnil(t, s.Get("d1"))
	isnil(t, s.NewDoc("d1"))
	eq(t, s.Delete("d1"), false)

	var nilSession *Session
	nilSession.End()
	isnil(t, nilSession.Get("d1"))
}

func TestExistsAndDelete(t *testing.T) {
	db := setup(t)
	s := db.Begin()
	defer s.End()

	eq(t, s.Exists("d1"), false)

	w := s.NewDoc("d1")
	w.SetString("name", "thing")
	eq(t, w.Save(), true)
	eq(t, s.Exists("d1"), true)

	eq(t, s.Delete("d1"), true)
	eq(t, s.Exists("d1"), false)
	isnil(t, s.Get("d1"))

	// deleting an absent document is not an error
	eq(t, s.Delete("d1"), true)
}

func TestDeleteInsideRolledBackTransaction(t *testing.T) {
	db := setup(t)
	s := db.Begin()
	w := s.NewDoc("d1")
	w.SetInt64("n", 1)
	eq(t, w.Save(), true)
	s.End()

	s = must(db.BeginWith(true))
	eq(t, s.Delete("d1"), true)
	eq(t, s.Exists("d1"), false)
	s.EndWith(false)

	s2 := db.Begin()
	defer s2.End()
	eq(t, s2.Exists("d1"), true)
}
