package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"httpshare/internal/dbx"
	"httpshare/internal/server/history/migrations"
)

// retentionKeep caps how many rows the transfer log retains. Create prunes
// everything older in the same transaction as the insert.
const retentionKeep = 1000

// PostgresRepository implements Repository over database/sql with the pgx
// driver. Statements run against a dbx.DBTX so they work both directly and
// inside a transaction.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to the given handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists one transfer row and trims the log down to retentionKeep
// rows, atomically.
func (r *PostgresRepository) Create(ctx context.Context, t *Transfer) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := insertTransfer(ctx, tx, t); err != nil {
			return err
		}
		return pruneTransfers(ctx, tx, retentionKeep)
	})
}

func insertTransfer(ctx context.Context, db dbx.DBTX, t *Transfer) error {
	query := `
		INSERT INTO transfers (id, file_name, size, checksum, media_type, remote_addr, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	res, err := db.ExecContext(ctx, query,
		t.ID, t.FileName, t.Size, t.Checksum, t.MediaType, t.RemoteAddr, t.ReceivedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

// pruneTransfers deletes every row beyond the keep newest ones.
func pruneTransfers(ctx context.Context, db dbx.DBTX, keep int) error {
	query := `
		DELETE FROM transfers
		WHERE id IN (SELECT id FROM transfers ORDER BY received_at DESC OFFSET $1);
	`
	if _, err := db.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("prune error: %w", err)
	}
	return nil
}

// SelectRecent returns up to limit transfers ordered by received_at desc.
func (r *PostgresRepository) SelectRecent(ctx context.Context, limit int) ([]*Transfer, error) {
	query := `
		SELECT id, file_name, size, checksum, media_type, remote_addr, received_at
		FROM transfers ORDER BY received_at DESC LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select transfers: %w", err)
	}
	defer rows.Close()

	var result []*Transfer
	for rows.Next() {
		var item Transfer
		if err := rows.Scan(&item.ID, &item.FileName, &item.Size, &item.Checksum,
			&item.MediaType, &item.RemoteAddr, &item.ReceivedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Open connects to Postgres via the pgx stdlib driver, runs the embedded
// goose migrations, and returns a ready repository together with the
// underlying handle (the caller owns Close).
func Open(ctx context.Context, dsn string) (*PostgresRepository, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return NewPostgresRepository(db), db, nil
}
