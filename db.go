package doclite

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
)

const (
	// DefaultScope and DefaultCollection name the collection every database
	// starts with.
	DefaultScope      = "_default"
	DefaultCollection = "_default"

	fileExt = ".doclite"
)

// conn is the shared engine connection. Handles opened via OpenCollection
// alias the connection of their base handle; the engine closes when the
// last holder releases its reference.
type conn struct {
	bdb  *bbolt.DB
	refs atomic.Int64
}

func (c *conn) retain() *conn {
	c.refs.Add(1)
	return c
}

func (c *conn) release() {
	if c.refs.Add(-1) > 0 {
		return
	}
	err := c.bdb.Close()
	if err != nil {
		panic(fmt.Errorf("doclite: closing: %w", err))
	}
}

// Database binds the engine connection to one collection. It is the factory
// for sessions and for sibling handles over other named collections.
type Database struct {
	conn    *conn
	scope   string
	coll    string
	logf    func(format string, args ...any)
	verbose bool
	closed  bool
}

type Options struct {
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
	FileMode  os.FileMode
}

// Open opens (creating if absent) the database file called name under dir
// and resolves its default collection. The returned handle owns the
// connection until Close.
func Open(name, dir string, opt Options) (*Database, error) {
	if name == "" {
		return nil, fmt.Errorf("doclite: empty database name")
	}
	if opt.Logf == nil {
		opt.Logf = log.Printf
	}
	if opt.FileMode == 0 {
		opt.FileMode = 0666
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, fmt.Errorf("doclite: %w", err)
		}
	}

	bopt := &bbolt.Options{}
	*bopt = *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	}

	bdb, err := bbolt.Open(filepath.Join(dir, name+fileExt), opt.FileMode, bopt)
	if err != nil {
		return nil, fmt.Errorf("doclite: %w", err)
	}

	err = bdb.Update(func(btx *bbolt.Tx) error {
		sb, err := btx.CreateBucketIfNotExists([]byte(DefaultScope))
		if err != nil {
			return err
		}
		_, err = sb.CreateBucketIfNotExists([]byte(DefaultCollection))
		return err
	})
	if err != nil {
		// partial open: the connection is up but unusable, unwind it
		bdb.Close()
		return nil, collErrf(DefaultScope, DefaultCollection, "", err, "resolving default collection")
	}

	db := &Database{
		conn:    &conn{bdb: bdb},
		scope:   DefaultScope,
		coll:    DefaultCollection,
		logf:    opt.Logf,
		verbose: opt.Verbose,
	}
	db.conn.retain()
	return db, nil
}

// Close drops this handle's reference to the connection. The engine handle
// closes when the last sibling is gone. Safe on a nil or already closed
// handle.
func (db *Database) Close() {
	if db == nil || db.closed {
		return
	}
	db.closed = true
	db.conn.release()
}

// Scope and Collection report the collection this handle is bound to.
func (db *Database) Scope() string      { return db.scope }
func (db *Database) Collection() string { return db.coll }

// OpenCollection resolves a named collection inside a named scope and
// returns a sibling handle bound to it. Both must already exist. The
// sibling shares this handle's connection.
func (db *Database) OpenCollection(scope, coll string) (*Database, error) {
	if db == nil || db.closed {
		return nil, fmt.Errorf("doclite: handle is closed")
	}
	if scope == "" || coll == "" {
		return nil, fmt.Errorf("doclite: empty scope or collection name")
	}
	err := db.conn.bdb.View(func(btx *bbolt.Tx) error {
		sb := btx.Bucket([]byte(scope))
		if sb == nil {
			return collErrf(scope, coll, "", nil, "no such scope")
		}
		if sb.Bucket([]byte(coll)) == nil {
			return collErrf(scope, coll, "", nil, "no such collection")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return db.sibling(scope, coll), nil
}

// CreateCollection is like OpenCollection but creates the scope and the
// collection when they do not exist yet.
func (db *Database) CreateCollection(scope, coll string) (*Database, error) {
	if db == nil || db.closed {
		return nil, fmt.Errorf("doclite: handle is closed")
	}
	if scope == "" || coll == "" {
		return nil, fmt.Errorf("doclite: empty scope or collection name")
	}
	err := db.conn.bdb.Update(func(btx *bbolt.Tx) error {
		sb, err := btx.CreateBucketIfNotExists([]byte(scope))
		if err != nil {
			return err
		}
		_, err = sb.CreateBucketIfNotExists([]byte(coll))
		return err
	})
	if err != nil {
		return nil, collErrf(scope, coll, "", err, "creating collection")
	}
	return db.sibling(scope, coll), nil
}

func (db *Database) sibling(scope, coll string) *Database {
	return &Database{
		conn:    db.conn.retain(),
		scope:   scope,
		coll:    coll,
		logf:    db.logf,
		verbose: db.verbose,
	}
}

// Count returns the number of documents in this handle's collection.
func (db *Database) Count() (int, error) {
	if db == nil || db.closed {
		return 0, fmt.Errorf("doclite: handle is closed")
	}
	var n int
	err := db.conn.bdb.View(func(btx *bbolt.Tx) error {
		b, err := db.bucketIn(btx)
		if err != nil {
			return err
		}
		n = b.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// bucketIn resolves this handle's collection bucket inside an engine
// transaction. The bucket can be gone if a sibling's collection was dropped
// behind our back, so the nil checks stay.
func (db *Database) bucketIn(btx *bbolt.Tx) (*bbolt.Bucket, error) {
	sb := btx.Bucket([]byte(db.scope))
	if sb == nil {
		return nil, collErrf(db.scope, db.coll, "", nil, "no such scope")
	}
	b := sb.Bucket([]byte(db.coll))
	if b == nil {
		return nil, collErrf(db.scope, db.coll, "", nil, "no such collection")
	}
	return b, nil
}
