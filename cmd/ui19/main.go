package main

import (
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata" // EXPORT_TZ must resolve in minimal containers

	"github.com/joho/godotenv"

	"github.com/csg33k/ui19-exporter/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "err", err)
	}
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
