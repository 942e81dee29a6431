package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
)

const drformColumns = `pharmid, drugid, formcode, seq, strength, administered, pharmdescr, drvolum, unitcode, formcateg`

// DrugFormRepository covers drform.
type DrugFormRepository struct {
	db *sqlx.DB
}

func NewDrugFormRepository(db *sqlx.DB) *DrugFormRepository {
	return &DrugFormRepository{db: db}
}

func (r *DrugFormRepository) List(ctx context.Context, limit int) ([]models.DrugForm, error) {
	out := []models.DrugForm{}
	if err := r.db.SelectContext(ctx, &out, `SELECT `+drformColumns+` FROM drform ORDER BY pharmid LIMIT $1`, limit); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DrugFormRepository) GetByID(ctx context.Context, pharmID string) (*models.DrugForm, error) {
	var f models.DrugForm
	if err := r.db.GetContext(ctx, &f, `SELECT `+drformColumns+` FROM drform WHERE pharmid = $1`, pharmID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *DrugFormRepository) Create(ctx context.Context, f *models.DrugForm) (*models.DrugForm, error) {
	const q = `INSERT INTO drform (` + drformColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + drformColumns
	var out models.DrugForm
	err := r.db.GetContext(ctx, &out, q,
		f.PharmID, f.DrugID, f.FormCode, f.Seq, f.Strength, f.Administered, f.PharmDescr, f.DrVolum, f.UnitCode, f.FormCateg)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DrugFormRepository) Update(ctx context.Context, f *models.DrugForm) (*models.DrugForm, error) {
	const q = `UPDATE drform
		SET drugid = $2, formcode = $3, seq = $4, strength = $5, administered = $6,
			pharmdescr = $7, drvolum = $8, unitcode = $9, formcateg = $10
		WHERE pharmid = $1
		RETURNING ` + drformColumns
	var out models.DrugForm
	err := r.db.GetContext(ctx, &out, q,
		f.PharmID, f.DrugID, f.FormCode, f.Seq, f.Strength, f.Administered, f.PharmDescr, f.DrVolum, f.UnitCode, f.FormCateg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
