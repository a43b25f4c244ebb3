// Package server runs the small HTTP server that long-running slushy commands
// use to expose metrics and health endpoints.
//
// The server binds when Start is called, serves in the background and shuts
// down gracefully when the context passed to Start is done or Shutdown is
// called. Every request goes through panic recovery and request logging.
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", collector.Handler())
//	health.Register(mux, checker, version)
//
//	srv := server.New(":9090", mux)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//	defer srv.Shutdown(context.Background())
package server
