package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"tokenbound/pkg/domain"
	"tokenbound/pkg/platform/sentinel"
)

// PostgresStore persists asset records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed asset store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateIfAbsent(ctx context.Context, record Record) (Record, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (chain_id, token_contract, token_id, account_id, name, uri, registered_at, registered)
		VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, TRUE)
		ON CONFLICT (chain_id, token_contract, token_id) DO NOTHING`,
		record.Key.ChainID,
		record.Key.TokenContract.String(),
		strconv.FormatUint(record.Key.TokenID, 10),
		record.AccountID.String(),
		record.Name,
		record.URI,
		record.RegisteredAt,
	)
	if err != nil {
		return Record{}, false, fmt.Errorf("insert asset: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return Record{}, false, fmt.Errorf("insert asset: %w", err)
	}
	if inserted == 1 {
		record.Registered = true
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
		SELECT account_id, name, uri, registered_at, registered
		FROM assets
		WHERE chain_id = $1 AND token_contract = $2 AND token_id = $3::numeric`,
		key.ChainID,
		key.TokenContract.String(),
		strconv.FormatUint(key.TokenID, 10),
	)
	return s.scan(row, key)
}

func (s *PostgresStore) FindByAccount(ctx context.Context, accountID domain.Address) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT chain_id, token_contract, token_id, name, uri, registered_at, registered
		FROM assets
		WHERE account_id = $1`,
		accountID.String(),
	)
	var (
		chainID  int64
		contract string
		tokenID  string
		record   Record
	)
	if err := row.Scan(&chainID, &contract, &tokenID, &record.Name, &record.URI, &record.RegisteredAt, &record.Registered); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("find asset by account: %w", err)
	}
	contractAddr, err := domain.ParseAddress(contract)
	if err != nil {
		return Record{}, fmt.Errorf("find asset by account: corrupt token_contract: %w", err)
	}
	id, err := strconv.ParseUint(tokenID, 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("find asset by account: corrupt token_id: %w", err)
	}
	record.Key = domain.Key{ChainID: chainID, TokenContract: contractAddr, TokenID: id}
	record.AccountID = accountID
	return record, nil
}

func (s *PostgresStore) scan(row *sql.Row, key domain.Key) (Record, error) {
	var (
		accountID string
		record    Record
	)
	if err := row.Scan(&accountID, &record.Name, &record.URI, &record.RegisteredAt, &record.Registered); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("find asset: %w", err)
	}
	addr, err := domain.ParseAddress(accountID)
	if err != nil {
		return Record{}, fmt.Errorf("find asset: corrupt account_id: %w", err)
	}
	record.Key = key
	record.AccountID = addr
	return record, nil
}
