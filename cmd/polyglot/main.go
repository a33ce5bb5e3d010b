package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"polyglot/internal/application"
	"polyglot/internal/config"
	"polyglot/internal/domain/service"
	"polyglot/internal/domain/valueobject"
	"polyglot/internal/infrastructure/database"
	"polyglot/internal/infrastructure/i18n"
	"polyglot/internal/infrastructure/logging"
	"polyglot/internal/infrastructure/metrics"
	"polyglot/internal/ports/output"
	"polyglot/pkg/errmsg"
)

const usage = `polyglot resolves localized messages from message bundles.

Usage:
  polyglot [-lang <locale>] [-metrics] <command> [options]

Commands:
  resolve <key> [name=value ...]  Resolve one message and bind its parameters
  messages                        Print every message of -lang (English fallback)
  bundles                         List the bundles the source serves
  detect <accept-language>        Pick the best served locale for a header
  validate                        Check every bundle holds the well-known keys
  missing                         List keys each bundle lacks compared to the others
  migrate                         Apply database migrations (DATABASE_URL)
  import [-from <dir>]            Copy bundles (embedded by default) into Postgres

Environment:
  POLYGLOT_SOURCE          embedded | dir | postgres (default embedded)
  POLYGLOT_BUNDLE_DIR      bundle directory for the dir source
  DATABASE_URL             Postgres DSN for the postgres source, migrate and import
  POLYGLOT_LOG_LEVEL       debug | info | warn | error (default info)
  POLYGLOT_DEFAULT_LOCALE  default for -lang (default en)
  POLYGLOT_TIMEZONE        zone used to print bundle timestamps (default UTC)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app holds what every command needs.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	recorder   *metrics.Recorder
	repo       output.MessageBundleRepository
	messages   *application.MessageService
	translator output.T
	locale     valueobject.Locale
	stdout     io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	global := flag.NewFlagSet("polyglot", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	lang := global.String("lang", cfg.DefaultLocale, "target locale, e.g. fr or en_US")
	dumpMetrics := global.Bool("metrics", false, "print Prometheus metrics on exit")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	logger := logging.New(cfg.LogLevel, stderr, false)
	locale, err := valueobject.ParseLocale(*lang)
	if err != nil {
		logger.Error("invalid -lang", "lang", *lang, logging.Err(err))
		return 2
	}

	cmd, rest := global.Arg(0), global.Args()[1:]

	// migrate and import talk to Postgres directly, whatever the source.
	switch cmd {
	case "migrate":
		return exitCode(logger, runMigrate(ctx, cfg, logger))
	case "import":
		return exitCode(logger, runImport(ctx, cfg, logger, rest, stdout))
	}

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("open bundle source failed", "source", cfg.Source, logging.Err(err))
		return 1
	}
	defer closeRepo()

	recorder := metrics.NewRecorder("")
	a := &app{
		cfg:        cfg,
		logger:     logger,
		recorder:   recorder,
		repo:       repo,
		messages:   application.NewMessageService(repo, service.NewMessageResolutionService(), recorder, logger),
		translator: i18n.NewTranslator(repo, logger),
		locale:     locale,
		stdout:     stdout,
	}

	code := a.dispatch(ctx, cmd, rest, stderr)
	if *dumpMetrics {
		if err := recorder.WriteText(stdout); err != nil {
			logger.Error("write metrics failed", logging.Err(err))
			return 1
		}
	}
	return code
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string, stderr io.Writer) int {
	var err error
	switch cmd {
	case "resolve":
		err = a.resolve(ctx, args)
	case "messages":
		err = a.printMessages(ctx)
	case "bundles":
		err = a.printBundles(ctx)
	case "detect":
		err = a.detect(ctx, args)
	case "validate":
		var ok bool
		ok, err = a.validate(ctx)
		if err == nil && !ok {
			return 1
		}
	case "missing":
		err = a.missing(ctx)
	case "help":
		fmt.Fprint(a.stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n%s", cmd, usage)
		return 2
	}
	if err != nil {
		a.logger.Debug("command failed", "command", cmd, logging.Err(err))
		fmt.Fprintln(stderr, errmsg.DomainErrorMessage(a.translator, a.locale.String(), err))
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (output.MessageBundleRepository, func(), error) {
	noop := func() {}
	switch cfg.Source {
	case config.SourceDir:
		repo, err := i18n.NewFileRepository(os.DirFS(cfg.BundleDir), logger)
		return repo, noop, err
	case config.SourcePostgres:
		db, err := database.Open(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, noop, err
		}
		return database.NewBundleRepository(db), func() { db.Close() }, nil
	default:
		repo, err := i18n.NewFileRepository(i18n.Embedded(), logger)
		return repo, noop, err
	}
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return database.Open(ctx, cfg.DatabaseURL, logger)
}

func runMigrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	return database.RunMigrations(ctx, db, logger)
}

func runImport(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	from := fs.String("from", "", "bundle directory to import (default: embedded bundles)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bundleFS := i18n.Embedded()
	if *from != "" {
		bundleFS = os.DirFS(*from)
	}
	src, err := i18n.NewFileRepository(bundleFS, logger)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(ctx, db, logger); err != nil {
		return err
	}

	n, err := application.NewBundleImporter(src, database.NewBundleRepository(db), logger).Import(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "imported %d bundles\n", n)
	return nil
}

func exitCode(logger *slog.Logger, err error) int {
	if err != nil {
		logger.Error("command failed", logging.Err(err))
		return 1
	}
	return 0
}
