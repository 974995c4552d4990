package postgres

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"book_catalog_tgbot/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func connString(cfg *config.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DbName,
	)
}

func NewPostgresClient(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", connString(cfg))
	if err != nil {
		slog.Error("error while connecting postgres", slog.String("err", err.Error()))
		panic(err)
	}

	slog.Info("postgres connected")

	return db
}

// MustMigrate applies the embedded migrations. ErrNoChange is not a
// failure.
func MustMigrate(cfg *config.Config) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		slog.Error("error while reading embedded migrations", slog.String("err", err.Error()))
		panic(err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, connString(cfg))
	if err != nil {
		slog.Error("error while creating migrator", slog.String("err", err.Error()))
		panic(err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		slog.Error("error while applying migrations", slog.String("err", err.Error()))
		panic(err)
	}

	slog.Info("migrations applied")
}
