package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
)

type ATCRepository struct {
	db *sqlx.DB
}

func NewATCRepository(db *sqlx.DB) *ATCRepository {
	return &ATCRepository{db: db}
}

// Search matches q against the code or, case-insensitively, the description.
func (r *ATCRepository) Search(ctx context.Context, q string, limit int) ([]models.ATC, error) {
	const query = `SELECT atccode, atcdescr
		FROM atc
		WHERE atccode LIKE $1 OR atcdescr ILIKE $1
		ORDER BY atccode
		LIMIT $2`
	out := []models.ATC{}
	if err := r.db.SelectContext(ctx, &out, query, "%"+q+"%", limit); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ATCRepository) GetByCode(ctx context.Context, code string) (*models.ATC, error) {
	var a models.ATC
	if err := r.db.GetContext(ctx, &a, `SELECT atccode, atcdescr FROM atc WHERE atccode = $1`, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *ATCRepository) Create(ctx context.Context, a *models.ATC) (*models.ATC, error) {
	const q = `INSERT INTO atc (atccode, atcdescr) VALUES ($1, $2) RETURNING atccode, atcdescr`
	var out models.ATC
	if err := r.db.GetContext(ctx, &out, q, a.ATCCode, a.ATCDescr); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ATCRepository) Update(ctx context.Context, a *models.ATC) (*models.ATC, error) {
	const q = `UPDATE atc SET atcdescr = $2 WHERE atccode = $1 RETURNING atccode, atcdescr`
	var out models.ATC
	if err := r.db.GetContext(ctx, &out, q, a.ATCCode, a.ATCDescr); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
