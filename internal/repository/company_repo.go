package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
)

const companyColumns = `compid, coname, cosname, street_number, town, zip, country, phone, coemail,
	regnumber, emeanumber, status, selectable`

var companySearch = search.Query{
	Select: `SELECT DISTINCT c.compid,
		c.coname,
		(c.street_number || ' ' || c.town) AS address,
		COALESCE(pl_country.pltext, c.country) AS country_text,
		c.regnumber`,
	From: `FROM company c`,
	Labels: `LEFT JOIN pltab pl_country ON c.country = pl_country.plcode
		AND pl_country.plcolumn = 'STCOUNTR' AND pl_country.pllang = $1`,
	Count:   `SELECT COUNT(DISTINCT c.compid) AS total`,
	OrderBy: `c.coname, c.compid`,
}

// CompanyFilter turns company search parameters into predicates.
func CompanyFilter(p models.CompanySearchParams) *search.Filter {
	return search.NewFilter().
		Contains("c.compid", p.CompID).
		Contains("c.coname", p.CoName).
		Contains("c.emeanumber", p.EMEANumber).
		Equal("c.country", p.Country)
}

type CompanyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Search runs the company count query and then its page query.
func (r *CompanyRepository) Search(ctx context.Context, f *search.Filter, lang string, page search.Page) ([]models.CompanyRow, int, error) {
	pageStmt, countStmt := companySearch.Build(f, []interface{}{lang}, page)

	var total int
	if err := r.db.GetContext(ctx, &total, countStmt.SQL, countStmt.Args...); err != nil {
		return nil, 0, err
	}
	rows := []models.CompanyRow{}
	if err := r.db.SelectContext(ctx, &rows, pageStmt.SQL, pageStmt.Args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// PickList returns companies whose name contains q, with the country label in lang.
func (r *CompanyRepository) PickList(ctx context.Context, q, lang string, page search.Page) ([]models.CompanyRow, error) {
	const query = `SELECT DISTINCT c.compid,
			c.coname,
			(c.street_number || ' ' || c.town) AS address,
			COALESCE(pl_country.pltext, c.country) AS country_text,
			c.regnumber
		FROM company c
		LEFT JOIN pltab pl_country ON c.country = pl_country.plcode
			AND pl_country.plcolumn = 'STCOUNTR' AND pl_country.pllang = $1
		WHERE UPPER(c.coname) LIKE $2
		ORDER BY c.coname
		LIMIT $3 OFFSET $4`
	out := []models.CompanyRow{}
	if err := r.db.SelectContext(ctx, &out, query, lang, "%"+q+"%", page.Limit, page.Offset); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, compID string) (*models.Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM company WHERE compid = $1`
	var c models.Company
	if err := r.db.GetContext(ctx, &c, q, compID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	const q = `INSERT INTO company (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + companyColumns
	var out models.Company
	err := r.db.GetContext(ctx, &out, q,
		c.CompID, c.CoName, c.CoSName, c.StreetNumber, c.Town, c.Zip, c.Country, c.Phone, c.CoEmail,
		c.RegNumber, c.EMEANumber, c.Status, c.Selectable)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces every attribute except the key. Returns nil when absent.
func (r *CompanyRepository) Update(ctx context.Context, c *models.Company) (*models.Company, error) {
	const q = `UPDATE company
		SET coname = $2, cosname = $3, street_number = $4, town = $5, zip = $6, country = $7,
			phone = $8, coemail = $9, regnumber = $10, emeanumber = $11, status = $12, selectable = $13
		WHERE compid = $1
		RETURNING ` + companyColumns
	var out models.Company
	err := r.db.GetContext(ctx, &out, q,
		c.CompID, c.CoName, c.CoSName, c.StreetNumber, c.Town, c.Zip, c.Country, c.Phone, c.CoEmail,
		c.RegNumber, c.EMEANumber, c.Status, c.Selectable)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
