/*
Package doclite is a convenience layer for document IO over an embedded
key-value engine (in this case, Bolt).

It does not implement storage, indexing or querying; the engine owns all of
that. What this package adds on top:

1. Databases, handles binding the engine connection to one named collection
(the default one, or a named collection inside a named scope).

2. Sessions, short-lived handles over a database that optionally wrap an
engine transaction around the work done through them.

3. Document writers and readers with typed field accessors over the dynamic
value model (see the dynval package), including nested mappings, sequences
and blobs.

# Technical Details

**Buckets.**
Scopes are top-level Bolt buckets; collections are buckets nested inside
their scope. A document is one key-value pair in its collection bucket:
the key is the document id, the value is the msgpack encoding of the
document's property mapping.

**Connections.**
Handles returned by OpenCollection share the connection of the handle they
were opened from. The connection is reference counted and the engine handle
closes when the last holder calls Close.

**Transactions.**
A session begun with a transaction holds one writable engine transaction
for its whole life. Saves and reads performed through it see its own
uncommitted writes; EndWith(false) discards them. A session without a
transaction performs each save as its own engine update.
*/
package doclite
