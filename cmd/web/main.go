package main

import (
    "context"
    "log"
    "os"
    "os/signal"
    "syscall"
)

func main() {
    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()
    if err := rootCommand().ExecuteContext(ctx); err != nil {
        log.Printf("robofed: %v", err)
        stop()
        os.Exit(1)
    }
}
