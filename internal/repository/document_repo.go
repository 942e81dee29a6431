package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
)

// DocumentKind selects the document table.
type DocumentKind string

const (
	// Package leaflet.
	DocumentPL DocumentKind = "pl"
	// Summary of product characteristics.
	DocumentSPC DocumentKind = "spc"
)

// dateColumn returns the per-table date column; anything else is rejected so
// the table name never comes from input.
func (k DocumentKind) dateColumn() (string, error) {
	switch k {
	case DocumentPL:
		return "pldate", nil
	case DocumentSPC:
		return "spcdate", nil
	}
	return "", fmt.Errorf("unknown document kind %q", string(k))
}

type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Versions returns every stored version of a drug's document, newest first,
// with the binary encoded as base64.
func (r *DocumentRepository) Versions(ctx context.Context, kind DocumentKind, drugID string) ([]models.Document, error) {
	dateCol, err := kind.dateColumn()
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`SELECT version,
			TO_CHAR(%s, 'YYYY-MM-DD') AS docdate,
			doctype,
			username,
			encode(doc, 'base64') AS doc
		FROM %s
		WHERE drugid = $1
		ORDER BY version DESC`, dateCol, string(kind))

	out := []models.Document{}
	if err := r.db.SelectContext(ctx, &out, q, drugID); err != nil {
		return nil, err
	}
	return out, nil
}
