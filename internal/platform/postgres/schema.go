// Package postgres owns the registry schema. Both registries key on the
// (chain_id, token_contract, token_id) tuple; the primary key is what makes
// INSERT ... ON CONFLICT DO NOTHING an atomic claim.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Token ids are NUMERIC(20,0): uint64 values can exceed BIGINT range.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	chain_id          BIGINT        NOT NULL,
	token_contract    TEXT          NOT NULL,
	token_id          NUMERIC(20,0) NOT NULL,
	account_id        TEXT          NOT NULL,
	implementation_id TEXT          NOT NULL,
	salt              TEXT          NOT NULL,
	created_at        TIMESTAMPTZ   NOT NULL,
	PRIMARY KEY (chain_id, token_contract, token_id)
);

CREATE TABLE IF NOT EXISTS assets (
	chain_id       BIGINT        NOT NULL,
	token_contract TEXT          NOT NULL,
	token_id       NUMERIC(20,0) NOT NULL,
	account_id     TEXT          NOT NULL,
	name           TEXT          NOT NULL,
	uri            TEXT          NOT NULL,
	registered_at  TIMESTAMPTZ   NOT NULL,
	registered     BOOLEAN       NOT NULL DEFAULT TRUE,
	PRIMARY KEY (chain_id, token_contract, token_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS assets_account_id_idx ON assets (account_id);
`

// EnsureSchema creates the registry tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
