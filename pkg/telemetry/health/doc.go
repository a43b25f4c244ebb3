// Package health serves liveness and readiness endpoints for long-running
// slushy commands such as watch.
//
// Components register a CheckFunc under a name. Readiness runs every check
// concurrently, each with its own timeout, and reports "ready" only when all
// of them pass:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("storage", func(ctx context.Context) error {
//	    _, err := store.Count(ctx, nil)
//	    return err
//	})
//	health.Register(mux, checker, version.Version)
package health
