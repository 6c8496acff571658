package main

import (
    "context"
    "fmt"

    "github.com/spf13/cobra"

    "robofed.org/web/internal/config"
)

type configKey struct{}

// rootCommand instantiates the CLI with all sub-commands bound.
func rootCommand() *cobra.Command {
    configFilePath := "robofed.yaml"
    cmd := &cobra.Command{
        Use:          "robofed [command] [flags]",
        Short:        "Serve or export the federation website",
        Args:         cobra.NoArgs,
        SilenceUsage: true,
        CompletionOptions: cobra.CompletionOptions{
            HiddenDefaultCmd: true,
        },
        PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
            cfg, err := config.Load(configFilePath)
            if err != nil {
                return fmt.Errorf("load configuration: %w", err)
            }
            cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
            return nil
        },
    }
    cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", configFilePath, "path to the configuration file")
    cmd.AddCommand(
        serveCommand(),
        buildCommand(),
    )
    return cmd
}

// configFrom returns the configuration loaded by the root command.
func configFrom(ctx context.Context) *config.Config {
    if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
        return cfg
    }
    return config.Default()
}
