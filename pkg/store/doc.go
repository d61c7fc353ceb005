// Package store persists seating layouts.
//
// A layout document is addressed by an opaque venue id and holds a name and
// an ordered list of tables. Backends implement [Store]:
//
//   - [MemoryStore]: process memory, for tests and the demo server
//   - [FileStore]: one JSON file per venue under a directory
//   - [Cached]: a read-through, write-through cache in front of any Store
//   - remote.Client: the layout HTTP API (package store/remote)
//   - mongostore.Store: a MongoDB collection (package store/mongostore)
//
// The [Adapter] is what the editor talks to. It turns backend failures into
// structured errors and never fails hard on load: an unreachable backend
// yields an empty, editable layout plus the error to report.
//
// # Wire format
//
// Tables are serialized with exactly the fields x, y, width, height, name,
// type, people and isReserved (see [TableRecord]). A save request body is
//
//	{"tableLayout": {"name": "main layout", "tables": [...]}}
//
// and a venue fetch returns an object whose tableLayout array holds
// {"tableLayout": {...}} entries; the first entry is the current layout.
package store
