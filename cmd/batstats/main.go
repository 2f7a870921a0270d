package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"

	"github.com/spektr-org/batstats/command"
	"github.com/spektr-org/batstats/config"
	"github.com/spektr-org/batstats/helpers"
	"github.com/spektr-org/batstats/league"
	"github.com/spektr-org/batstats/render"
	"github.com/spektr-org/batstats/schema"
	"github.com/spektr-org/batstats/server"
)

// ============================================================================
// BATSTATS CLI — 2016 MLB batting analytics
// ============================================================================

const version = "0.3.0"

// argList collects repeated -arg key=value flags.
type argList command.Args

func (a argList) String() string {
	parts := make([]string, 0, len(a))
	for k, v := range a {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (a argList) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("want key=value, got %q", s)
	}
	a[strings.ToLower(strings.TrimSpace(k))] = v
	return nil
}

func main() {
	args := argList{}

	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to the batting CSV, or SQLite database file (env BATSTATS_DATA)")
	source := flag.String("source", "", "Data source: csv, sqlite, postgres (env BATSTATS_SOURCE)")
	table := flag.String("table", "", "Table name for SQL sources (env BATSTATS_TABLE)")
	importPath := flag.String("import", "", "Copy this CSV into the SQL source table and exit")
	cmdName := flag.String("command", "", "Run one command and exit")
	flag.Var(args, "arg", "Command argument key=value (repeatable)")
	format := flag.String("format", "text", "Output format: text, json, pretty, csv")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	chartDir := flag.String("charts", "", "Directory for graph PNGs (env BATSTATS_CHART_DIR)")
	serve := flag.Bool("serve", false, "Serve commands over HTTP")
	addr := flag.String("addr", "", "HTTP listen address (env BATSTATS_ADDR)")
	verbose := flag.Bool("v", false, "Log every command in the console")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `batstats — 2016 MLB batting analytics

Usage:
  batstats --file mlb-stats2016.csv
  batstats --file mlb-stats2016.csv --command Get-Mean-Stat --arg stat=HR
  batstats --file mlb-stats2016.csv --command Graph-Team-By-Stat --arg stat=HR --charts out
  batstats --source sqlite --file stats.db --import mlb-stats2016.csv
  batstats --source postgres --serve --addr :8080

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment (also read from .env):
  BATSTATS_SOURCE, BATSTATS_DATA, BATSTATS_TABLE, BATSTATS_ADDR,
  BATSTATS_CORS_ORIGINS, BATSTATS_CHART_DIR
  POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB
  DATABASE_URL      Used when POSTGRES_DB is unset

Formats:
  text      Aligned tables (default)
  json      Full JSON result
  pretty    Pretty-printed JSON
  csv       Chart/table data as CSV (ready for Sheets/Excel)

With no --command and no --serve, batstats starts the interactive console.
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("batstats %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	overrideString(&cfg.Source.Kind, strings.ToLower(*source))
	overrideString(&cfg.Source.Path, *filePath)
	overrideString(&cfg.Source.Table, *table)
	overrideString(&cfg.Server.Addr, *addr)
	overrideString(&cfg.ChartDir, *chartDir)
	if err := cfg.Source.Resolve(); err != nil {
		fatalf("Invalid data source: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Import mode ───────────────────────────────────────────────────────
	if *importPath != "" {
		if err := importCSV(ctx, *importPath, cfg.Source); err != nil {
			fatalf("Import failed: %v", err)
		}
		return
	}

	// ── Load data ─────────────────────────────────────────────────────────
	store, err := loadStore(ctx, cfg.Source)
	if err != nil {
		fatalf("Failed to load batting data: %v", err)
	}
	log.Printf("📊 batstats: loaded %d players from %s", store.Len(), cfg.Source.Kind)

	season := league.Season2016()
	d := command.NewDispatcher(store, season)

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		if err := server.New(d, cfg.Server).Run(ctx); err != nil {
			fatalf("%v", err)
		}
		log.Printf("✓ batstats: shutdown complete")
		return
	}

	// ── Output writer ─────────────────────────────────────────────────────
	var writer io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── One-shot mode ─────────────────────────────────────────────────────
	if *cmdName != "" {
		runOnce(d, *cmdName, command.Args(args), writer, *format, cfg.ChartDir)
		if *outFile != "" {
			log.Printf("📄 Output written to %s", *outFile)
		}
		return
	}

	// ── Console ───────────────────────────────────────────────────────────
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	c := newConsole(d, season.Year(), os.Stdin, writer, *format, cfg.ChartDir)
	c.copy = clipboard.WriteAll
	if err := c.run(); err != nil {
		fatalf("Console: %v", err)
	}
}

func runOnce(d *command.Dispatcher, name string, args command.Args, w io.Writer, format, chartDir string) {
	cmd, err := command.Parse(name)
	if err != nil {
		fatalf("%s", command.Message(cmd, err))
	}
	res, err := d.Execute(cmd, args)
	if err != nil {
		fatalf("%s", command.Message(cmd, err))
	}
	if err := render.Write(w, res, format); err != nil {
		fatalf("Failed to write output: %v", err)
	}
	if cmd.IsGraph() && chartDir != "" {
		path, err := render.SavePNG(chartDir, cmd.String(), res.ChartConfig)
		if err != nil {
			fatalf("Failed to save chart: %v", err)
		}
		log.Printf("📈 Chart written to %s", path)
	}
}

// ============================================================================
// DATA SOURCES
// ============================================================================

func loadStore(ctx context.Context, src config.SourceConfig) (*league.Store, error) {
	sch := schema.Batting()

	if src.Kind == config.SourceCSV {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src.Path, err)
		}
		return helpers.LoadCSV(data, sch)
	}

	db, err := helpers.OpenSQL(ctx, src.Kind, src.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return helpers.LoadSQLStore(ctx, db, src.Table, sch)
}

func importCSV(ctx context.Context, path string, src config.SourceConfig) error {
	if src.Kind == config.SourceCSV {
		return fmt.Errorf("import needs a sqlite or postgres source")
	}
	sch := schema.Batting()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	records, err := helpers.ParseCSV(data, sch)
	if err != nil {
		return err
	}
	// Reject what the store would reject before writing anything.
	if _, err := league.NewStore(records); err != nil {
		return err
	}

	db, err := helpers.OpenSQL(ctx, src.Kind, src.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := helpers.SaveSQL(ctx, db, src.Kind, src.Table, sch, records); err != nil {
		return err
	}
	log.Printf("📥 batstats: imported %d players into %s.%s", len(records), src.Kind, src.Table)
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
