// Package pkg provides the core libraries for tableplan, an interactive
// seating-layout editor for venues.
//
// # Overview
//
// A venue's floor plan is an ordered list of tables. Operators place, move,
// resize and annotate tables on a canvas, step back and forth through their
// edits and save the result to a layout store. The pkg directory is organized
// into three areas:
//
//  1. Domain - [layout], [transform], [selection], [history], [editor]
//  2. Persistence - [store], [cache], [httputil]
//  3. Surfaces - [render], [server], [assets], [config]
//
// # Architecture
//
// The data flow of an editing session:
//
//	Layout Store (file, HTTP, MongoDB)
//	         ↓
//	  store.Adapter.Load        wire records → layout.TableList
//	         ↓
//	  editor.Editor             selection, drag transforms, history
//	         ↓
//	  store.Adapter.Save        layout.TableList → wire records
//
// Every edit replaces the live [layout.TableList] with a new value and pushes
// it onto the [history.History]. Lists are never mutated in place, so an
// older snapshot can be reinstalled by undo without copying.
//
// # Packages
//
// [layout] holds the table model and the immutable list operations.
//
// [transform] turns pointer drags into committed geometry and enforces the
// minimum table size.
//
// [selection] tracks the selected index across deletes and history moves.
//
// [history] is the linear undo/redo stack.
//
// [editor] composes the above into the operations a canvas surface calls.
//
// [store] defines the Layout Store contract, the wire format and its
// backends. [cache] provides the file, memory and Redis caches behind
// [store.Cached].
//
// [render] draws layouts to a terminal frame and exports them through
// Graphviz. [server] serves the Layout Store over HTTP.
//
// [errors] provides structured error codes shared by all packages, and
// [observability] exposes hooks for tracing editor, store, cache and HTTP
// activity.
//
// [layout]: github.com/matzehuels/tableplan/pkg/layout
// [transform]: github.com/matzehuels/tableplan/pkg/transform
// [selection]: github.com/matzehuels/tableplan/pkg/selection
// [history]: github.com/matzehuels/tableplan/pkg/history
// [editor]: github.com/matzehuels/tableplan/pkg/editor
// [store]: github.com/matzehuels/tableplan/pkg/store
// [store.Cached]: github.com/matzehuels/tableplan/pkg/store#Cached
// [cache]: github.com/matzehuels/tableplan/pkg/cache
// [httputil]: github.com/matzehuels/tableplan/pkg/httputil
// [render]: github.com/matzehuels/tableplan/pkg/render
// [server]: github.com/matzehuels/tableplan/pkg/server
// [assets]: github.com/matzehuels/tableplan/pkg/assets
// [config]: github.com/matzehuels/tableplan/pkg/config
// [errors]: github.com/matzehuels/tableplan/pkg/errors
// [observability]: github.com/matzehuels/tableplan/pkg/observability
// [layout.TableList]: github.com/matzehuels/tableplan/pkg/layout#TableList
// [history.History]: github.com/matzehuels/tableplan/pkg/history#History
package pkg
