// Package watch notifies callers when packet input files change.
//
// A FileWatcher wraps fsnotify. Bursts of events (editors often write a file
// as truncate, write, rename) are collapsed by a Debouncer so the callback runs
// once per changed file per quiet period. When the watched path is a single file its parent
// directory is watched instead, so atomic replace-by-rename saves are still
// seen.
package watch
