package main

import (
    "context"
    "errors"
    "log"
    "net/http"
    "time"

    "github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
    var addr string
    cmd := &cobra.Command{
        Use:   "serve",
        Short: "Serve the site, composing pages per request",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            cfg := configFrom(cmd.Context())
            if addr != "" {
                cfg.Addr = addr
            }
            s, bundle, err := newSite(cfg)
            if err != nil {
                return err
            }

            srv := &http.Server{
                Addr:              cfg.Addr,
                Handler:           newRouter(s, bundle, cfg.Prod()),
                ReadHeaderTimeout: 10 * time.Second,
                ReadTimeout:       15 * time.Second,
                WriteTimeout:      15 * time.Second,
                IdleTimeout:       60 * time.Second,
            }

            errc := make(chan error, 1)
            go func() {
                log.Printf("web listening on %s (site=%s, env=%s)", cfg.Addr, cfg.SiteDir, cfg.Env)
                errc <- srv.ListenAndServe()
            }()

            select {
            case err := <-errc:
                if errors.Is(err, http.ErrServerClosed) {
                    return nil
                }
                return err
            case <-cmd.Context().Done():
            }
            log.Printf("shutting down")
            ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
            defer cancel()
            return srv.Shutdown(ctx)
        },
    }
    cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides addr from config)")
    return cmd
}
