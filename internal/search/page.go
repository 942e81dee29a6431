package search

import (
	"strconv"
	"strings"

	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// MaxLimit caps any page size a client may request.
const MaxLimit = 500

// Default page sizes per endpoint.
const (
	DrugPageSize    = 10
	CompanyPageSize = 20
	PackagePageSize = 20
	OptionPageSize  = 100
	ATCPageSize     = 20
	LinkPageSize    = 50
)

// Page is a LIMIT/OFFSET window.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads raw limit and offset query values. Empty values fall back
// to defLimit and 0; anything non-numeric, negative or a zero limit is rejected
// with utils.ErrInvalidPage. Limits above MaxLimit are clamped.
func ParsePage(rawLimit, rawOffset string, defLimit int) (Page, error) {
	p := Page{Limit: defLimit}

	if s := strings.TrimSpace(rawLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Page{}, utils.ErrInvalidPage
		}
		p.Limit = n
	}
	if s := strings.TrimSpace(rawOffset); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Page{}, utils.ErrInvalidPage
		}
		p.Offset = n
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}
