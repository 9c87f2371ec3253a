package doclite

import (
	"fmt"
	"strings"
)

// CollectionError carries the scope/collection (and document id, when there
// is one) a failed engine call was addressed to.
type CollectionError struct {
	Scope      string
	Collection string
	DocID      string
	Msg        string
	Err        error
}

func collErrf(scope, coll, docID string, err error, format string, args ...any) error {
	return &CollectionError{scope, coll, docID, fmt.Sprintf(format, args...), err}
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

func (e *CollectionError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Scope)
	buf.WriteByte('.')
	buf.WriteString(e.Collection)
	if e.DocID != "" {
		buf.WriteByte('/')
		buf.WriteString(e.DocID)
	}
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
		if e.Err != nil {
			buf.WriteString(": ")
			buf.WriteString(e.Err.Error())
		}
	} else if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}
