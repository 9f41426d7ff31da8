// Command trips-report writes the trips PDF to a caller-supplied path and
// exits; it is the command-line form of the admin panel's export button.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/example/airlink-admin/internal/logging"
	"github.com/example/airlink-admin/internal/report"
	"github.com/example/airlink-admin/internal/storage"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("PG_DSN"), "store connection string")
	out := flag.String("out", "reporte_viajes.pdf", "output PDF path")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "missing -dsn (or PG_DSN)")
		os.Exit(2)
	}

	logger := logging.NewLogger(*logLevel)

	db, err := storage.Open(*dsn)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gen := report.NewGenerator(db, logger)
	if err := gen.TripsReport(context.Background(), *out); err != nil {
		os.Exit(1)
	}
}
