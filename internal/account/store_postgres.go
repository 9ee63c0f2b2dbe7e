package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"tokenbound/internal/derive"
	"tokenbound/pkg/domain"
	"tokenbound/pkg/platform/sentinel"
)

// PostgresStore persists account records in PostgreSQL. Insert-if-absent
// rides on the primary key and ON CONFLICT DO NOTHING, so the at-most-one
// creation invariant holds across processes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed account store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Token ids are stored as NUMERIC(20,0) text because uint64 exceeds BIGINT.

func (s *PostgresStore) CreateIfAbsent(ctx context.Context, record Record) (Record, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (chain_id, token_contract, token_id, account_id, implementation_id, salt, created_at)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)
		ON CONFLICT (chain_id, token_contract, token_id) DO NOTHING`,
		record.Key.ChainID,
		record.Key.TokenContract.String(),
		strconv.FormatUint(record.Key.TokenID, 10),
		record.AccountID.String(),
		record.ImplementationID.String(),
		record.Salt.String(),
		record.CreatedAt,
	)
	if err != nil {
		return Record{}, false, fmt.Errorf("insert account: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return Record{}, false, fmt.Errorf("insert account: %w", err)
	}
	if inserted == 1 {
		return record, true, nil
	}
	existing, err := s.Find(ctx, record.Key)
	if err != nil {
		return Record{}, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) Find(ctx context.Context, key domain.Key) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT account_id, implementation_id, salt, created_at
		FROM accounts
		WHERE chain_id = $1 AND token_contract = $2 AND token_id = $3::numeric`,
		key.ChainID,
		key.TokenContract.String(),
		strconv.FormatUint(key.TokenID, 10),
	)
	var (
		accountID string
		implID    string
		saltHex   string
		record    Record
	)
	if err := row.Scan(&accountID, &implID, &saltHex, &record.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("find account: %w", err)
	}
	record.Key = key
	var err error
	if record.AccountID, err = domain.ParseAddress(accountID); err != nil {
		return Record{}, fmt.Errorf("find account: corrupt account_id: %w", err)
	}
	if record.ImplementationID, err = domain.ParseAddress(implID); err != nil {
		return Record{}, fmt.Errorf("find account: corrupt implementation_id: %w", err)
	}
	salt, err := derive.ParseSalt(saltHex)
	if err != nil {
		return Record{}, fmt.Errorf("find account: corrupt salt: %w", err)
	}
	record.Salt = salt
	return record, nil
}
