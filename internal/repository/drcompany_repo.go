package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
)

const drcompanyColumns = `drcomid, compid, drugid, cotype, comments, process, seq`

// DrugCompanyRepository covers the drcompany link table.
type DrugCompanyRepository struct {
	db *sqlx.DB
}

func NewDrugCompanyRepository(db *sqlx.DB) *DrugCompanyRepository {
	return &DrugCompanyRepository{db: db}
}

func (r *DrugCompanyRepository) GetByID(ctx context.Context, drComID string) (*models.DrugCompany, error) {
	var l models.DrugCompany
	if err := r.db.GetContext(ctx, &l, `SELECT `+drcompanyColumns+` FROM drcompany WHERE drcomid = $1`, drComID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *DrugCompanyRepository) Create(ctx context.Context, l *models.DrugCompany) (*models.DrugCompany, error) {
	const q = `INSERT INTO drcompany (` + drcompanyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + drcompanyColumns
	var out models.DrugCompany
	if err := r.db.GetContext(ctx, &out, q, l.DrComID, l.CompID, l.DrugID, l.CoType, l.Comments, l.Process, l.Seq); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DrugCompanyRepository) Update(ctx context.Context, l *models.DrugCompany) (*models.DrugCompany, error) {
	const q = `UPDATE drcompany
		SET compid = $2, drugid = $3, cotype = $4, comments = $5, process = $6, seq = $7
		WHERE drcomid = $1
		RETURNING ` + drcompanyColumns
	var out models.DrugCompany
	if err := r.db.GetContext(ctx, &out, q, l.DrComID, l.CompID, l.DrugID, l.CoType, l.Comments, l.Process, l.Seq); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
