// Command migrate applies the formatdiff PostgreSQL schema.
package main

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/formatdiff/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// CLI defines the migrate command line.
type CLI struct {
	DSN string `name:"dsn" env:"FORMATDIFF_DB_DSN" help:"Database URL. Defaults to the database section of the service config."`

	Up      UpCmd      `cmd:"" help:"Run all up migrations."`
	Down    DownCmd    `cmd:"" help:"Run all down migrations."`
	Steps   StepsCmd   `cmd:"" help:"Run N migrations (positive=up, negative=down)."`
	Version VersionCmd `cmd:"" help:"Print current migration version."`
	Force   ForceCmd   `cmd:"" help:"Force set version (use with caution)."`
}

type UpCmd struct{}

func (c *UpCmd) Run(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run up migrations: %w", err)
	}
	fmt.Println("migrations applied successfully")
	return nil
}

type DownCmd struct{}

func (c *DownCmd) Run(m *migrate.Migrate) error {
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run down migrations: %w", err)
	}
	fmt.Println("migrations reverted successfully")
	return nil
}

type StepsCmd struct {
	N int `arg:"" help:"Number of migrations."`
}

func (c *StepsCmd) Run(m *migrate.Migrate) error {
	if err := m.Steps(c.N); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	fmt.Printf("applied %d migration steps\n", c.N)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(m *migrate.Migrate) error {
	v, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	return nil
}

type ForceCmd struct {
	Version int `arg:"" help:"Version to force."`
}

func (c *ForceCmd) Run(m *migrate.Migrate) error {
	if err := m.Force(c.Version); err != nil {
		return fmt.Errorf("force version: %w", err)
	}
	fmt.Printf("forced to version %d\n", c.Version)
	return nil
}

func newMigrate(dsn string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func (c *CLI) dsn() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.Database.URL(), nil
}

func main() {
	// .env must be loaded before kong resolves env-backed flags.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("migrate"),
		kong.Description("Apply the formatdiff database schema."),
		kong.UsageOnError(),
	)

	dsn, err := cli.dsn()
	ctx.FatalIfErrorf(err)

	m, err := newMigrate(dsn)
	ctx.FatalIfErrorf(err)
	defer m.Close()

	ctx.FatalIfErrorf(ctx.Run(m))
}
