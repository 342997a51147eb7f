package main

// cnpvproc processes a CNPV 2018 census data release.  It reads every
// territory archive under the data folder, concatenates the decoded
// tables per record type, substitutes categorical value labels from the
// data dictionary archive, and writes one CSV or parquet file per
// record type to the output directory.

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	cnpv "github.com/bacata55/cnpv-2018"
)

func main() {

	dataFolder := flag.String("data", "", "folder holding the territory archives")
	dictPath := flag.String("dict", "", "data dictionary archive")
	outDir := flag.String("out", "", "output directory")
	format := flag.String("format", "", "output format, csv or parquet")
	configPath := flag.String("config", "", "yaml configuration file")
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	setupLogging(*logLevel)

	cfg := cnpv.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = cnpv.LoadConfig(*configPath)
		if err != nil {
			fatal("invalid configuration", err)
		}
	}
	if *dataFolder != "" {
		cfg.DataFolder = *dataFolder
	}
	if *dictPath != "" {
		cfg.DictPath = *dictPath
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	if *format != "" {
		cfg.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", err)
	}

	slog.Info("processing census data",
		"data", cfg.DataFolder, "dict", cfg.DictPath)

	dec := new(cnpv.Decoder)
	tables, err := dec.CreateProcessedTables(cfg.DataFolder, cfg.DictPath)
	if err != nil {
		fatal("processing failed", err)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		fatal("cannot create output directory", err)
	}

	for _, rt := range cnpv.RecordTypes {
		t := tables[rt]
		path := filepath.Join(cfg.OutDir, rt.String()+"."+cfg.Format)

		if err := writeTable(t, path, cfg.Format); err != nil {
			fatal("cannot write "+path, err)
		}

		slog.Info("wrote table", "table", rt.String(),
			"rows", t.NumRow(), "columns", t.NumCol(), "path", path)
	}
}

func writeTable(t *cnpv.Table, path, format string) error {

	if format == "parquet" {
		return cnpv.WriteParquet(t, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := cnpv.WriteCSV(t, f); err != nil {
		return err
	}

	return f.Close()
}

func setupLogging(level string) {

	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
