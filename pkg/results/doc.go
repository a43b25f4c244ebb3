// Package results records solve runs so they can be listed and compared
// later.
//
// # Architecture
//
//  1. Recorder - builds a Run from a solve (run id, input hash, answers)
//  2. Storage - persists runs (storage subpackage: SQLite or memory)
//  3. Retention - prunes old runs by age or count, optionally on a cron
//     schedule (retention subpackage)
//  4. Export - writes runs as JSON or CSV (export subpackage)
//
// # Runs
//
// Each Run captures the input path and its SHA-256 hash, the digit mode the
// parser ran with, the pair and document counts, both answers, the duration
// and whether the solve failed. Runs are immutable once stored.
//
// # Usage
//
//	store, err := storage.Open(&cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	rec := results.NewRecorder(store, results.WithBackend(cfg.Storage.Backend))
//	run, err := rec.RecordSuccess(ctx, results.Input{Path: path, Content: data}, report)
package results
