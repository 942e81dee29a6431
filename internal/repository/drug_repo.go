package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
)

var drugSearch = search.Query{
	Select: `SELECT DISTINCT d.drugid,
		d.drname || ' ' || COALESCE(df.strength, '') AS drname,
		pl_status.pltext AS drstatus,
		pl_form.plstext AS form,
		pl_type.pltext AS drtype,
		atc.atccode,
		atc.atcdescr,
		s.substancs,
		c.coname AS company`,
	From: `FROM dr d
		LEFT JOIN drform df ON d.drugid = df.drugid
		LEFT JOIN dratc ON d.drugid = dratc.drugid
		LEFT JOIN atc ON dratc.atccode = atc.atccode
		LEFT JOIN drsub s ON d.drugid = s.drugid
		LEFT JOIN drcompany dc ON d.drugid = dc.drugid
		LEFT JOIN company c ON dc.compid = c.compid`,
	Labels: `LEFT JOIN pltab pl_status ON d.drstatus = pl_status.plcode AND pl_status.plcolumn = 'DRSTATUS' AND pl_status.pllang = $1
		LEFT JOIN pltab pl_form ON df.formcode = pl_form.plcode AND pl_form.plcolumn = 'FORM' AND pl_form.pllang = $1
		LEFT JOIN pltab pl_type ON d.drtype = pl_type.plcode AND pl_type.plcolumn = 'DRTYPE' AND pl_type.pllang = $1`,
	Count:   `SELECT COUNT(DISTINCT d.drugid) AS total`,
	OrderBy: `drname, drugid`,
}

// DrugFilter turns drug search parameters into predicates. Naming a company
// without a role restricts the match to the marketing authorisation holder.
func DrugFilter(p models.DrugSearchParams) *search.Filter {
	f := search.NewFilter()
	if p.DrNameMatch == models.DrugMatchStartsWith {
		f.StartsWith("d.drname", p.DrName)
	} else {
		f.Contains("d.drname", p.DrName)
	}
	f.Code("d.drstatus", p.DrStatus).
		Equal("df.formcode", p.Form).
		Code("d.drtype", p.DrType).
		Code("d.applicproc", p.ApplicProc).
		ATC("atc.atccode", p.ATC).
		Contains("s.substancs", p.Substance)

	if strings.TrimSpace(p.Company) != "" {
		role := p.CoType
		if strings.TrimSpace(role) == "" {
			role = models.DefaultCompanyRole
		}
		f.EqualID("dc.compid", p.Company).Equal("dc.cotype", role)
	} else {
		f.Equal("dc.cotype", p.CoType)
	}
	return f
}

// DrugRepository covers dr and drsub.
type DrugRepository struct {
	db *sqlx.DB
}

func NewDrugRepository(db *sqlx.DB) *DrugRepository {
	return &DrugRepository{db: db}
}

// Search runs the drug search page query and then its count query.
func (r *DrugRepository) Search(ctx context.Context, f *search.Filter, lang string, page search.Page) ([]models.DrugSearchRow, int, error) {
	pageStmt, countStmt := drugSearch.Build(f, []interface{}{lang}, page)
	log.Debug().Int("predicates", f.Len()).Interface("args", pageStmt.Args).Msg("drug search")

	rows := []models.DrugSearchRow{}
	if err := r.db.SelectContext(ctx, &rows, pageStmt.SQL, pageStmt.Args...); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countStmt.SQL, countStmt.Args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Autocomplete returns up to 20 distinct drug names containing q.
func (r *DrugRepository) Autocomplete(ctx context.Context, q string) ([]models.DrugName, error) {
	const query = `SELECT DISTINCT drname FROM dr WHERE UPPER(drname) LIKE $1 ORDER BY drname LIMIT 20`
	out := []models.DrugName{}
	if err := r.db.SelectContext(ctx, &out, query, "%"+q+"%"); err != nil {
		return nil, err
	}
	return out, nil
}

// Substances returns distinct active substances containing q.
func (r *DrugRepository) Substances(ctx context.Context, q string, page search.Page) ([]models.Substance, error) {
	const query = `SELECT DISTINCT substancs FROM drsub WHERE UPPER(substancs) LIKE $1 ORDER BY substancs LIMIT $2 OFFSET $3`
	out := []models.Substance{}
	if err := r.db.SelectContext(ctx, &out, query, "%"+q+"%", page.Limit, page.Offset); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDetail returns one drug with labels in lang, or nil when absent.
func (r *DrugRepository) GetDetail(ctx context.Context, drugID, lang string) (*models.DrugDetail, error) {
	const q = `SELECT d.drugid, d.drname, d.drstatus, d.drtype, d.applicproc, d.barcode, d.created_at, d.updated_at,
			pl_status.pltext AS status_text,
			pl_type.pltext AS type_text,
			pl_proc.pltext AS applicproc_text
		FROM dr d
		LEFT JOIN pltab pl_status ON d.drstatus = pl_status.plcode AND pl_status.plcolumn = 'DRSTATUS' AND pl_status.pllang = $2
		LEFT JOIN pltab pl_type ON d.drtype = pl_type.plcode AND pl_type.plcolumn = 'DRTYPE' AND pl_type.pllang = $2
		LEFT JOIN pltab pl_proc ON d.applicproc = pl_proc.plcode AND pl_proc.plcolumn = 'APPLICPROC' AND pl_proc.pllang = $2
		WHERE d.drugid = $1`
	var out models.DrugDetail
	if err := r.db.GetContext(ctx, &out, q, drugID, lang); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *DrugRepository) Create(ctx context.Context, d *models.Drug) (*models.Drug, error) {
	const q = `INSERT INTO dr (drugid, drname, drstatus, drtype, applicproc, barcode)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING drugid, drname, drstatus, drtype, applicproc, barcode, created_at, updated_at`
	var out models.Drug
	if err := r.db.GetContext(ctx, &out, q, d.DrugID, d.DrName, d.DrStatus, d.DrType, d.ApplicProc, d.Barcode); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update returns nil when the drug does not exist.
func (r *DrugRepository) Update(ctx context.Context, drugID string, u *models.DrugUpdate) (*models.Drug, error) {
	const q = `UPDATE dr
		SET drname = $2, drstatus = $3, drtype = $4, applicproc = $5, barcode = $6, updated_at = NOW()
		WHERE drugid = $1
		RETURNING drugid, drname, drstatus, drtype, applicproc, barcode, created_at, updated_at`
	var out models.Drug
	if err := r.db.GetContext(ctx, &out, q, drugID, u.DrName, u.DrStatus, u.DrType, u.ApplicProc, u.Barcode); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
