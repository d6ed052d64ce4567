// Package catalog persists bibliographic records in SQLite and serves the
// immutable snapshots that duplicate and variation searches run over.
//
// The Store manages database connections, schema initialization, record
// import, distinct field-value queries, and field renames used when
// consolidating metadata variations. A snapshot is read once at the start of
// a search and never mutated by the matching engine.
//
// Treat this package as the single source of truth for record persistence;
// schema changes bump the version in schema.go and users re-import their
// catalog dump.
package catalog
