package doclite

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/doclite/doclite/dynval"
)

// Session is a short-lived binding to a database's connection+collection,
// optionally wrapping an engine transaction around the operations performed
// through it. Sessions must not outlive their database handle.
type Session struct {
	db    *Database
	btx   *bbolt.Tx // non-nil while a transaction is active
	ended bool
}

// Begin starts a session without a transaction: every save performed
// through it is its own engine update.
func (db *Database) Begin() *Session {
	if db == nil || db.closed {
		return nil
	}
	return &Session{db: db}
}

// BeginWith starts a session, opening an engine write transaction when txn
// is true. Until the session ends, its writes are invisible outside it and
// other write transactions block.
func (db *Database) BeginWith(txn bool) (*Session, error) {
	s := db.Begin()
	if s == nil {
		return nil, fmt.Errorf("doclite: handle is closed")
	}
	if txn {
		btx, err := db.conn.bdb.Begin(true)
		if err != nil {
			db.logf("doclite: BEGIN_TXN failed: %v", err)
			return nil, collErrf(db.scope, db.coll, "", err, "begin transaction")
		}
		s.btx = btx
	}
	return s, nil
}

// EndWith ends the session. An active transaction is committed when commit
// is true and rolled back otherwise; a commit failure is logged but not
// escalated. The session is unusable afterwards. Safe on nil and safe to
// call twice.
func (s *Session) EndWith(commit bool) {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	if s.btx == nil {
		return
	}
	var err error
	if commit {
		err = s.btx.Commit()
	} else {
		err = s.btx.Rollback()
	}
	if err != nil {
		s.db.logf("doclite: END_TXN failed: %v", err)
	}
	s.btx = nil
}

// End is EndWith(commit=true).
func (s *Session) End() {
	s.EndWith(true)
}

// InTransaction reports whether the session holds an active transaction.
func (s *Session) InTransaction() bool {
	return s != nil && s.btx != nil
}

// Get fetches a document by id. A missing document yields a nil reader,
// not an error.
func (s *Session) Get(docID string) *DocReader {
	if s == nil || s.ended || docID == "" {
		return nil
	}
	var raw []byte
	err := s.view(func(b *bbolt.Bucket) error {
		if v := b.Get([]byte(docID)); v != nil {
			// the value aliases the engine's pages; copy before the
			// transaction goes away
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		s.db.logf("doclite: GET %s/%s: %v", s.db.coll, docID, err)
		return nil
	}
	if raw == nil {
		if s.db.verbose {
			s.db.logf("doclite: GET.NOTFOUND %s/%s", s.db.coll, docID)
		}
		return nil
	}
	props, err := dynval.DecodeDoc(raw)
	if err != nil {
		s.db.logf("doclite: GET %s/%s: decoding document: %v", s.db.coll, docID, err)
		return nil
	}
	if s.db.verbose {
		s.db.logf("doclite: GET %s/%s", s.db.coll, docID)
	}
	return &DocReader{id: docID, props: props}
}

// Exists reports whether a document with the given id is present, without
// decoding it.
func (s *Session) Exists(docID string) bool {
	if s == nil || s.ended || docID == "" {
		return false
	}
	var found bool
	err := s.view(func(b *bbolt.Bucket) error {
		found = b.Get([]byte(docID)) != nil
		return nil
	})
	return err == nil && found
}

// Delete removes a document by id. Returns false when the engine rejects
// the delete; deleting an absent document succeeds.
func (s *Session) Delete(docID string) bool {
	if s == nil || s.ended || docID == "" {
		return false
	}
	err := s.update(func(b *bbolt.Bucket) error {
		return b.Delete([]byte(docID))
	})
	if err != nil {
		s.db.logf("doclite: DELETE %s/%s: %v", s.db.coll, docID, err)
		return false
	}
	if s.db.verbose {
		s.db.logf("doclite: DELETE %s/%s", s.db.coll, docID)
	}
	return true
}

// view runs f over the session's collection bucket, inside the session
// transaction when one is active.
func (s *Session) view(f func(b *bbolt.Bucket) error) error {
	if s.btx != nil {
		b, err := s.db.bucketIn(s.btx)
		if err != nil {
			return err
		}
		return f(b)
	}
	return s.db.conn.bdb.View(func(btx *bbolt.Tx) error {
		b, err := s.db.bucketIn(btx)
		if err != nil {
			return err
		}
		return f(b)
	})
}

// update is view's writable counterpart: the session transaction when one
// is active, a one-shot engine update otherwise.
func (s *Session) update(f func(b *bbolt.Bucket) error) error {
	if s.btx != nil {
		b, err := s.db.bucketIn(s.btx)
		if err != nil {
			return err
		}
		return f(b)
	}
	return s.db.conn.bdb.Update(func(btx *bbolt.Tx) error {
		b, err := s.db.bucketIn(btx)
		if err != nil {
			return err
		}
		return f(b)
	})
}
