package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Postgres provides storage in PostgreSQL.
type Postgres struct {
	bun *bun.DB
}

// Connect connects to the database and pings the DB to ensure the
// connection is working.
func Connect(ctx context.Context, connStr string) (*Postgres, error) {
	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connStr)))
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	db := bun.NewDB(sqlDB, pgdialect.New())
	return &Postgres{
		bun: db,
	}, nil
}

// EnsureSchema creates the posts, comments and likes tables if they do not
// exist, including the uniqueness constraint on (user_id, entity_id,
// entity_type) that backs the reaction upsert. Soft-deleting an entity
// leaves its like rows in place; they become unreachable because every
// read path filters on deletion_status.
func (pg *Postgres) EnsureSchema(ctx context.Context) error {
	models := []any{
		(*post)(nil),
		(*comment)(nil),
		(*like)(nil),
	}
	for _, m := range models {
		if _, err := pg.bun.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (pg *Postgres) Close() error {
	return pg.bun.Close()
}
