package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
)

const pltabColumns = `plcolumn, plcode, pllang, pltext, plstext, eutct, selectable, seq, htmlstyle`

// PltabRepository reads and writes localized reference values.
type PltabRepository struct {
	db *sqlx.DB
}

func NewPltabRepository(db *sqlx.DB) *PltabRepository {
	return &PltabRepository{db: db}
}

// List returns the selectable values of one column in one language.
func (r *PltabRepository) List(ctx context.Context, column, lang string) ([]models.PltabEntry, error) {
	const q = `SELECT ` + pltabColumns + `
		FROM pltab
		WHERE pllang = $1 AND plcolumn = $2 AND selectable = 1
		ORDER BY seq, pltext`
	out := []models.PltabEntry{}
	if err := r.db.SelectContext(ctx, &out, q, lang, column); err != nil {
		return nil, err
	}
	return out, nil
}

// Options returns one {value, label} pair per code of a column. The label is
// taken from the lang row when there is one, otherwise from any other
// language, and falls back to the code.
func (r *PltabRepository) Options(ctx context.Context, column, lang string) ([]models.Option, error) {
	const q = `SELECT DISTINCT ON (plcode) plcode, COALESCE(NULLIF(pltext, ''), plcode) AS pltext
		FROM pltab
		WHERE plcolumn = $1 AND selectable = 1
		ORDER BY plcode, (pllang = $2) DESC, pllang`
	out := []models.Option{}
	if err := r.db.SelectContext(ctx, &out, q, column, lang); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PltabRepository) Get(ctx context.Context, column, code, lang string) (*models.PltabEntry, error) {
	const q = `SELECT ` + pltabColumns + `
		FROM pltab
		WHERE plcolumn = $1 AND plcode = $2 AND pllang = $3 AND selectable = 1`
	var e models.PltabEntry
	if err := r.db.GetContext(ctx, &e, q, column, code, lang); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *PltabRepository) Insert(ctx context.Context, e *models.PltabEntry) (*models.PltabEntry, error) {
	const q = `INSERT INTO pltab (` + pltabColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + pltabColumns
	var out models.PltabEntry
	err := r.db.GetContext(ctx, &out, q,
		e.Column, e.Code, e.Language, e.LongText, e.ShortText, e.ExternalRef, e.Selectable, e.Seq, e.HTMLStyle)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the mutable fields of a selectable entry. Returns nil when no
// such entry exists.
func (r *PltabRepository) Update(ctx context.Context, e *models.PltabEntry) (*models.PltabEntry, error) {
	const q = `UPDATE pltab
		SET pltext = $4, plstext = $5, eutct = $6, selectable = $7, seq = $8, htmlstyle = $9
		WHERE plcolumn = $1 AND plcode = $2 AND pllang = $3 AND selectable = 1
		RETURNING ` + pltabColumns
	var out models.PltabEntry
	err := r.db.GetContext(ctx, &out, q,
		e.Column, e.Code, e.Language, e.LongText, e.ShortText, e.ExternalRef, e.Selectable, e.Seq, e.HTMLStyle)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
