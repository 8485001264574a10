package postgres

import (
	"context"
	"fmt"
)

// schema es idempotente; EnsureSchema lo ejecuta al arrancar y en los tests de integración.
const schema = `
CREATE TABLE IF NOT EXISTS stock_ledger (
	id               BIGSERIAL PRIMARY KEY,
	store_id         TEXT NOT NULL,
	transaction_date DATE NOT NULL,
	supplier         TEXT NOT NULL DEFAULT '',
	item_code        TEXT NOT NULL,
	item_name        TEXT NOT NULL,
	tax_type         TEXT NOT NULL DEFAULT '과세',
	specification    TEXT NOT NULL DEFAULT '',
	unit             TEXT NOT NULL DEFAULT '',
	qty              NUMERIC(14,3) NOT NULL,
	unit_price       BIGINT NOT NULL DEFAULT 0,
	amount           BIGINT NOT NULL DEFAULT 0,
	status           TEXT NOT NULL,
	from_store       TEXT NOT NULL DEFAULT '000000',
	created_by       TEXT NOT NULL,
	trans_no         BIGINT NOT NULL DEFAULT 0,
	accu_qty         NUMERIC(14,3) NOT NULL DEFAULT 0,
	tx_ref           UUID,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS stock_ledger_store_date_idx ON stock_ledger (store_id, transaction_date);

CREATE TABLE IF NOT EXISTS store_stock (
	id          BIGSERIAL PRIMARY KEY,
	store_id    TEXT NOT NULL,
	item_code   TEXT NOT NULL,
	item_name   TEXT NOT NULL DEFAULT '',
	current_qty NUMERIC(14,3) NOT NULL DEFAULT 0,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT store_stock_store_item_key UNIQUE (store_id, item_code)
);

CREATE TABLE IF NOT EXISTS store_counts (
	id         BIGSERIAL PRIMARY KEY,
	store_id   TEXT NOT NULL,
	count_date DATE NOT NULL,
	item_code  TEXT NOT NULL,
	item_name  TEXT NOT NULL DEFAULT '',
	qty        NUMERIC(14,3) NOT NULL,
	created_by TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT store_counts_store_item_date_key UNIQUE (store_id, item_code, count_date)
);

CREATE TABLE IF NOT EXISTS items (
	item_code     TEXT PRIMARY KEY,
	item_name     TEXT NOT NULL,
	specification TEXT NOT NULL DEFAULT '',
	unit          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS stores (
	store_code TEXT PRIMARY KEY,
	store_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS suppliers (
	name       TEXT PRIMARY KEY,
	sort_order INT NOT NULL DEFAULT 0
);
`

// EnsureSchema crea las tablas e índices que aún no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
