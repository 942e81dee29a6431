package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
)

// priceColumns projects one pcpricelist row; VAT is stored as a fraction and
// reported as a percentage.
const priceColumns = `TO_CHAR(datefrom, 'YYYY-MM-DD') AS datefrom,
		TO_CHAR(dateuntil, 'YYYY-MM-DD') AS dateuntil,
		xfactory AS producerprice,
		finalwhprice AS wholesaleprice,
		finaldtprice AS retailprice,
		finalhosprice AS hospitalprice,
		COALESCE(vat * 100, 0) AS vat,
		misyfa,
		negative`

// maxPriceRows bounds the history returned for one package.
const maxPriceRows = 50

type PriceListRepository struct {
	db *sqlx.DB
}

func NewPriceListRepository(db *sqlx.DB) *PriceListRepository {
	return &PriceListRepository{db: db}
}

// Current returns the package's price rows, currently valid ones first, then
// newest start date first, each labeled ACTIVE or EXPIRED.
func (r *PriceListRepository) Current(ctx context.Context, drdpID string) ([]models.PriceRow, error) {
	q := `SELECT ` + priceColumns + `,
			CASE WHEN dateuntil IS NULL OR dateuntil >= CURRENT_DATE THEN 'ACTIVE' ELSE 'EXPIRED' END AS status
		FROM pcpricelist
		WHERE drdpid = $1
		ORDER BY
			CASE WHEN dateuntil IS NULL OR dateuntil >= CURRENT_DATE THEN 0 ELSE 1 END,
			datefrom DESC
		LIMIT ` + fmt.Sprint(maxPriceRows)
	out := []models.PriceRow{}
	if err := r.db.SelectContext(ctx, &out, q, drdpID); err != nil {
		return nil, err
	}
	return out, nil
}

// History returns the package's price rows newest first, all labeled EXPIRED.
func (r *PriceListRepository) History(ctx context.Context, drdpID string) ([]models.PriceRow, error) {
	q := `SELECT ` + priceColumns + `, 'EXPIRED' AS status
		FROM pcpricelist
		WHERE drdpid = $1
		ORDER BY datefrom DESC
		LIMIT ` + fmt.Sprint(maxPriceRows)
	out := []models.PriceRow{}
	if err := r.db.SelectContext(ctx, &out, q, drdpID); err != nil {
		return nil, err
	}
	return out, nil
}

// Packages lists packages for the price-list pickers, optionally restricted to
// one drug and to packages that have a currently valid price.
func (r *PriceListRepository) Packages(ctx context.Context, drugID string, pricedOnly bool, page search.Page) ([]models.PackageRef, error) {
	q := `SELECT DISTINCT d.drdpid, d.packnr, d.patext
		FROM drdp d
		JOIN dr r ON d.drugid = r.drugid`
	if pricedOnly {
		q += ` JOIN pcpricelist p ON d.drdpid = p.drdpid`
	}
	q += ` WHERE 1=1`

	var args []interface{}
	if drugID != "" {
		args = append(args, drugID)
		q += fmt.Sprintf(" AND d.drugid = $%d", len(args))
	}
	if pricedOnly {
		q += ` AND (p.dateuntil IS NULL OR p.dateuntil >= CURRENT_DATE)`
	}
	q += fmt.Sprintf(" ORDER BY d.packnr NULLS LAST, d.patext LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	out := []models.PackageRef{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}
