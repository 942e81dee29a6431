package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
)

const drdpColumns = `drdpid, drugid, packnr, patext, dpsize, dpunit, dpstatus, dptype, lestatus, narcateg, barcode, eunumber`

// packageSelect projects a package with UNIPS, DRSTATUS, PATYPE and PRESC labels;
// the labels join on $1.
const packageSelect = `SELECT drdp.drdpid,
		drdp.drugid,
		drdp.packnr,
		drdp.patext,
		(drdp.dpsize || ' ' || COALESCE(pl_unit.pltext, drdp.dpunit)) AS size,
		COALESCE(pl_status.pltext, drdp.dpstatus) AS status_text,
		COALESCE(pl_type.pltext, drdp.dptype) AS type_text,
		COALESCE(pl_presc.pltext, drdp.lestatus) AS lestatus_text,
		drdp.narcateg,
		drdp.barcode,
		drdp.eunumber`

const packageLabels = `LEFT JOIN pltab pl_unit ON drdp.dpunit = pl_unit.plcode AND pl_unit.plcolumn = 'UNIPS' AND pl_unit.pllang = $1
		LEFT JOIN pltab pl_status ON drdp.dpstatus = pl_status.plcode AND pl_status.plcolumn = 'DRSTATUS' AND pl_status.pllang = $1
		LEFT JOIN pltab pl_type ON drdp.dptype = pl_type.plcode AND pl_type.plcolumn = 'PATYPE' AND pl_type.pllang = $1
		LEFT JOIN pltab pl_presc ON drdp.lestatus = pl_presc.plcode AND pl_presc.plcolumn = 'PRESC' AND pl_presc.pllang = $1`

var packageSearch = search.Query{
	Select:  packageSelect,
	From:    `FROM drdp`,
	Labels:  packageLabels,
	Count:   `SELECT COUNT(*) AS total`,
	OrderBy: `drdp.patext, drdp.drdpid`,
}

// PackageFilter turns package search parameters into predicates.
func PackageFilter(p models.PackageSearchParams) *search.Filter {
	return search.NewFilter().
		EqualID("drdp.drugid", p.DrugID).
		EqualID("drdp.packnr", p.PackNr).
		Contains("drdp.patext", p.PaText).
		EqualID("drdp.barcode", p.Barcode).
		Contains("drdp.eunumber", p.EUNumber).
		Code("drdp.dpstatus", p.DpStatus)
}

// PackageRepository covers drdp.
type PackageRepository struct {
	db *sqlx.DB
}

func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Search(ctx context.Context, f *search.Filter, lang string, page search.Page) ([]models.PackageRow, int, error) {
	pageStmt, countStmt := packageSearch.Build(f, []interface{}{lang}, page)

	rows := []models.PackageRow{}
	if err := r.db.SelectContext(ctx, &rows, pageStmt.SQL, pageStmt.Args...); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countStmt.SQL, countStmt.Args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByDrug returns the packages of one drug, optionally a single pack number.
func (r *PackageRepository) ListByDrug(ctx context.Context, drugID, packNr, lang string) ([]models.PackageRow, error) {
	q := packageSelect + ` FROM drdp ` + packageLabels + ` WHERE drdp.drugid = $2`
	args := []interface{}{lang, drugID}
	if packNr != "" {
		q += fmt.Sprintf(" AND drdp.packnr = $%d", len(args)+1)
		args = append(args, packNr)
	}
	q += ` ORDER BY drdp.patext`

	out := []models.PackageRow{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PackageRepository) Create(ctx context.Context, p *models.DrugPackage) (*models.DrugPackage, error) {
	const q = `INSERT INTO drdp (` + drdpColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + drdpColumns
	var out models.DrugPackage
	err := r.db.GetContext(ctx, &out, q,
		p.DrdpID, p.DrugID, p.PackNr, p.PaText, p.DpSize, p.DpUnit, p.DpStatus, p.DpType,
		p.LeStatus, p.NarCateg, p.Barcode, p.EUNumber)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a package of the given drug. Returns nil when absent.
func (r *PackageRepository) Update(ctx context.Context, p *models.DrugPackage) (*models.DrugPackage, error) {
	const q = `UPDATE drdp
		SET packnr = $3, patext = $4, dpsize = $5, dpunit = $6, dpstatus = $7, dptype = $8,
			lestatus = $9, narcateg = $10, barcode = $11, eunumber = $12
		WHERE drdpid = $1 AND drugid = $2
		RETURNING ` + drdpColumns
	var out models.DrugPackage
	err := r.db.GetContext(ctx, &out, q,
		p.DrdpID, p.DrugID, p.PackNr, p.PaText, p.DpSize, p.DpUnit, p.DpStatus, p.DpType,
		p.LeStatus, p.NarCateg, p.Barcode, p.EUNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
