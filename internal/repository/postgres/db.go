// internal/repository/postgres/db.go
package postgres

import (
	"context"
	"fmt"

	"parkreg-service/internal/domain/vehicle"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool *pgxpool.Pool
}

func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// BeginTx opens a transaction. pgx.Tx satisfies the domain's Tx interface,
// so the coordinator can commit/rollback without importing pgx.
func (db *DB) BeginTx(ctx context.Context) (vehicle.Tx, error) {
	return db.pool.Begin(ctx)
}

// pgxTx recovers the concrete pgx transaction behind a domain Tx handle.
func pgxTx(tx vehicle.Tx) (pgx.Tx, error) {
	ptx, ok := tx.(pgx.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	return ptx, nil
}
