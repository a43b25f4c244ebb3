// Package storage provides Storage backends for solve runs.
//
// # Backends
//
//   - SQLite: persistent, file based. Works with either the pure Go driver
//     (modernc.org/sqlite, driver name "sqlite") or the cgo driver
//     (github.com/mattn/go-sqlite3, driver name "sqlite3").
//   - Memory: map based, for tests and for one-shot runs that only need
//     the history of the current process.
//
// Open picks a backend from the storage configuration section.
package storage
