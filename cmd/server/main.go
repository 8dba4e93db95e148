package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata" // EXPORT_TZ must resolve in minimal containers

	"github.com/joho/godotenv"

	"github.com/csg33k/ui19-exporter/internal/adapters/pdf"
	sqliteadapter "github.com/csg33k/ui19-exporter/internal/adapters/sqlite"
	"github.com/csg33k/ui19-exporter/internal/adapters/ui19"
	"github.com/csg33k/ui19-exporter/internal/config"
	"github.com/csg33k/ui19-exporter/internal/handlers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	repo, err := sqliteadapter.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "dsn", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	exp := ui19.New(ui19.WithLocation(cfg.Location))
	h := handlers.New(repo, exp, pdf.New(), slog.Default())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("UI-19 exporter running", "url", "http://localhost:"+cfg.Port, "db", cfg.DBPath, "tz", cfg.Location.String())
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
