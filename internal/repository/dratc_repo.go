package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
)

// DrugATCRepository covers the dratc link table.
type DrugATCRepository struct {
	db *sqlx.DB
}

func NewDrugATCRepository(db *sqlx.DB) *DrugATCRepository {
	return &DrugATCRepository{db: db}
}

func (r *DrugATCRepository) List(ctx context.Context, limit int) ([]models.DrugATC, error) {
	out := []models.DrugATC{}
	if err := r.db.SelectContext(ctx, &out, `SELECT drugid, atccode FROM dratc ORDER BY drugid, atccode LIMIT $1`, limit); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DrugATCRepository) Get(ctx context.Context, drugID, atcCode string) (*models.DrugATC, error) {
	var l models.DrugATC
	err := r.db.GetContext(ctx, &l, `SELECT drugid, atccode FROM dratc WHERE drugid = $1 AND atccode = $2`, drugID, atcCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *DrugATCRepository) Create(ctx context.Context, l *models.DrugATC) (*models.DrugATC, error) {
	var out models.DrugATC
	err := r.db.GetContext(ctx, &out,
		`INSERT INTO dratc (drugid, atccode) VALUES ($1, $2) RETURNING drugid, atccode`, l.DrugID, l.ATCCode)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Rekey moves the link (drugID, atcCode) to next. Returns nil when absent.
func (r *DrugATCRepository) Rekey(ctx context.Context, drugID, atcCode string, next models.DrugATC) (*models.DrugATC, error) {
	const q = `UPDATE dratc SET drugid = $1, atccode = $2
		WHERE drugid = $3 AND atccode = $4
		RETURNING drugid, atccode`
	var out models.DrugATC
	if err := r.db.GetContext(ctx, &out, q, next.DrugID, next.ATCCode, drugID, atcCode); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
