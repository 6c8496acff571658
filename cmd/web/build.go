package main

import (
    "fmt"
    "log"
    "time"

    "github.com/spf13/cobra"
)

func buildCommand() *cobra.Command {
    var out string
    cmd := &cobra.Command{
        Use:   "build",
        Short: "Export the composed site as static files",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            cfg := configFrom(cmd.Context())
            if out != "" {
                cfg.OutDir = out
            }
            if cfg.OutDir == "" {
                return fmt.Errorf("output directory is required")
            }
            s, _, err := newSite(cfg)
            if err != nil {
                return err
            }
            rep, err := s.Build(cmd.Context(), cfg.OutDir)
            if err != nil {
                return fmt.Errorf("build: %w", err)
            }
            log.Printf("built %d pages, copied %d files, wrote %d runtime files to %s in %s",
                rep.Pages, rep.Files, rep.Runtime, cfg.OutDir, rep.Duration.Round(time.Millisecond))
            return nil
        },
    }
    cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides out_dir from config)")
    return cmd
}
