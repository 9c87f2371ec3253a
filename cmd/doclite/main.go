// Command doclite is a playground CLI over a doclite database.
//
// Usage:
//
//	doclite put --id my-doc [--field key=value]... [--blob key=path]
//	doclite get <id>
//	doclite del <id>
//	doclite keys <id>
//	doclite count
//
// All verbs take --dir, --name and optionally --scope/--collection.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/doclite/doclite"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage())
	}
	switch args[0] {
	case "put":
		return cmdPut(args[1:])
	case "get":
		return cmdGet(args[1:])
	case "del", "delete":
		return cmdDel(args[1:])
	case "keys":
		return cmdKeys(args[1:])
	case "count":
		return cmdCount(args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage())
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage())
	}
}

func usage() string {
	return strings.TrimSpace(`
usage: doclite <put|get|del|keys|count> [flags]

common flags:
  --dir DIR           database directory (default ".")
  --name NAME         database name (default "doclite")
  --scope NAME        scope of the collection to use
  --collection NAME   collection to use (requires --scope)
`)
}

type target struct {
	dir, name, scope, coll string
}

func (t *target) register(fs *flag.FlagSet) {
	fs.StringVar(&t.dir, "dir", ".", "database directory")
	fs.StringVar(&t.name, "name", "doclite", "database name")
	fs.StringVar(&t.scope, "scope", "", "scope name")
	fs.StringVar(&t.coll, "collection", "", "collection name")
}

func (t *target) open() (*doclite.Database, func(), error) {
	base, err := doclite.Open(t.name, t.dir, doclite.Options{})
	if err != nil {
		return nil, nil, err
	}
	if t.scope == "" && t.coll == "" {
		return base, base.Close, nil
	}
	db, err := base.OpenCollection(t.scope, t.coll)
	if err != nil {
		base.Close()
		return nil, nil, err
	}
	return db, func() { db.Close(); base.Close() }, nil
}

func cmdPut(args []string) error {
	fs := flag.NewFlagSet("put", flag.ContinueOnError)
	var t target
	t.register(fs)
	id := fs.String("id", "", "document id (generated when empty)")
	fields := fs.StringArray("field", nil, "key=value pair; value parsed as int, float, bool, else string")
	blobs := fs.StringArray("blob", nil, "key=path pair; file contents stored as a blob")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, done, err := t.open()
	if err != nil {
		return err
	}
	defer done()

	s := db.Begin()
	defer s.End()
	w := s.NewDoc(*id)
	for _, f := range *fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("bad --field %q, want key=value", f)
		}
		setParsed(w, k, v)
	}
	for _, b := range *blobs {
		k, path, ok := strings.Cut(b, "=")
		if !ok {
			return fmt.Errorf("bad --blob %q, want key=path", b)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		w.SetBlob(k, data, "")
	}
	docID := w.ID()
	if !w.Save() {
		return fmt.Errorf("save failed for %q", docID)
	}
	fmt.Println(docID)
	return nil
}

func setParsed(w *doclite.DocWriter, key, val string) {
	if i, err := strconv.ParseInt(val, 10, 64); err == nil {
		w.SetInt64(key, i)
	} else if f, err := strconv.ParseFloat(val, 64); err == nil {
		w.SetFloat64(key, f)
	} else if b, err := strconv.ParseBool(val); err == nil {
		w.SetBool(key, b)
	} else {
		w.SetString(key, val)
	}
}

func withDoc(args []string, verb string, f func(s *doclite.Session, id string) error) error {
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	var t target
	t.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: doclite %s [flags] <id>", verb)
	}

	db, done, err := t.open()
	if err != nil {
		return err
	}
	defer done()

	s := db.Begin()
	defer s.End()
	return f(s, fs.Arg(0))
}

func cmdGet(args []string) error {
	return withDoc(args, "get", func(s *doclite.Session, id string) error {
		r := s.Get(id)
		if r == nil {
			return fmt.Errorf("no document %q", id)
		}
		defer r.Free()
		for _, k := range r.Keys() {
			fmt.Printf("%s\t%s\t%s\n", k, r.Kind(k), renderValue(r, k))
		}
		return nil
	})
}

func renderValue(r *doclite.DocReader, key string) string {
	if s, ok := r.GetString(key); ok {
		return s
	}
	if f, ok := r.GetFloat64(key); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if b, ok := r.GetBool(key); ok {
		return strconv.FormatBool(b)
	}
	if b, ok := r.Blob(key); ok {
		return fmt.Sprintf("%s, %d bytes, digest %x", b.ContentType, len(b.Data), b.Digest)
	}
	if vals := r.Float64s(key); vals != nil {
		return fmt.Sprint(vals)
	}
	return "-"
}

func cmdDel(args []string) error {
	return withDoc(args, "del", func(s *doclite.Session, id string) error {
		if !s.Delete(id) {
			return fmt.Errorf("delete failed for %q", id)
		}
		return nil
	})
}

func cmdKeys(args []string) error {
	return withDoc(args, "keys", func(s *doclite.Session, id string) error {
		r := s.Get(id)
		if r == nil {
			return fmt.Errorf("no document %q", id)
		}
		defer r.Free()
		for _, k := range r.Keys() {
			fmt.Println(k)
		}
		return nil
	})
}

func cmdCount(args []string) error {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	var t target
	t.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	db, done, err := t.open()
	if err != nil {
		return err
	}
	defer done()
	n, err := db.Count()
	if err != nil {
		return err
	}
	fmt.Println(n)
	return nil
}
