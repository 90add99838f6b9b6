package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ogurasousui/codex-employee-service/internal/platform/config"
	"github.com/ogurasousui/codex-employee-service/internal/platform/logger"
)

const defaultMigrationsDir = "assets/migrations"

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "", "directory containing migration files (defaults to MIGRATIONS_DIR env or assets/migrations)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [flags] [up|down|drop|version|force <version>]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(firstNonEmpty(*configPath, os.Getenv("CONFIG_PATH"), "assets/local.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.WithComponent(logger.New(cfg.Log), "migrate")

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"up"}
	}

	dir := firstNonEmpty(*migrationsDir, os.Getenv("MIGRATIONS_DIR"), defaultMigrationsDir)
	if err := runMigration(log, args, dir, cfg.Database.DSN()); err != nil {
		log.Error("migration failed", slog.String("action", args[0]), slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("migration completed", slog.String("action", args[0]))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func runMigration(log *slog.Logger, args []string, dir, dsn string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action := args[0]; action {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		return ignoreNoChange(m.Down())
	case "drop":
		return m.Drop()
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse version %q: %w", args[1], err)
		}
		return m.Force(version)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info("current version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
