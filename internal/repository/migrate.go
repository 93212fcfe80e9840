package repository

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS bookings (
	id          BIGSERIAL PRIMARY KEY,
	token       TEXT NOT NULL UNIQUE,
	slug        TEXT NOT NULL,
	prenom      TEXT NOT NULL,
	nom         TEXT NOT NULL,
	societe     TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL,
	telephone   TEXT NOT NULL,
	adresse     TEXT NOT NULL,
	ville       TEXT NOT NULL,
	code_postal TEXT NOT NULL,
	date_rdv    DATE NOT NULL,
	heure_rdv   TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS bookings_date_rdv_idx ON bookings (date_rdv);
`

// Migrate creates the bookings schema if it does not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate bookings schema: %w", err)
	}
	return nil
}
