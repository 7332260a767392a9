package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/ecomercado/backend/internal/infrastructure/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	var (
		dir     = flag.String("dir", "migrations", "directory containing migration files")
		down    = flag.Bool("down", false, "roll back all migrations instead of applying them")
		steps   = flag.Int("steps", 0, "apply exactly N migrations (negative rolls back)")
		version = flag.Bool("version", false, "print the current migration version and exit")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	m, err := migrate.New("file://"+*dir, postgresURL(cfg.Database))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize migrations: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	if *version {
		v, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("no migrations applied")
				return
			}
			fmt.Fprintf(os.Stderr, "failed to read version: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("version %d (dirty=%v)\n", v, dirty)
		return
	}

	switch {
	case *steps != 0:
		err = m.Steps(*steps)
	case *down:
		err = m.Down()
	default:
		err = m.Up()
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("database is up to date")
			return
		}
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migrations applied successfully")
}

func postgresURL(db config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(db.User), url.QueryEscape(db.Password),
		db.Host, db.Port, db.DBName, db.SSLMode)
}
