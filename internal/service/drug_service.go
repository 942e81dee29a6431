package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/GTDGit/pharmreg_api/internal/metrics"
	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// MinQueryLength gates autocomplete and pick-list lookups.
const MinQueryLength = 3

// DrugStore reads and writes drugs.
type DrugStore interface {
	Search(ctx context.Context, f *search.Filter, lang string, page search.Page) ([]models.DrugSearchRow, int, error)
	Autocomplete(ctx context.Context, q string) ([]models.DrugName, error)
	Substances(ctx context.Context, q string, page search.Page) ([]models.Substance, error)
	GetDetail(ctx context.Context, drugID, lang string) (*models.DrugDetail, error)
	Create(ctx context.Context, d *models.Drug) (*models.Drug, error)
	Update(ctx context.Context, drugID string, u *models.DrugUpdate) (*models.Drug, error)
}

type DrugService struct {
	repo        DrugStore
	defaultLang string
}

func NewDrugService(repo DrugStore, defaultLang string) *DrugService {
	return &DrugService{repo: repo, defaultLang: defaultLang}
}

// Search runs the dynamic drug search. At least one filter must be set.
func (s *DrugService) Search(ctx context.Context, p models.DrugSearchParams, page search.Page) (rows []models.DrugSearchRow, total int, err error) {
	defer func() { metrics.ObserveSearch("drug", total, err) }()

	if err = screen("drname", p.DrName, "substancs", p.Substance, "company", p.Company); err != nil {
		return nil, 0, err
	}

	f := repository.DrugFilter(p)
	if f.Len() == 0 {
		return nil, 0, utils.ErrNoFilter
	}
	return s.repo.Search(ctx, f, resolveLang(p.Lang, s.defaultLang), page)
}

// Autocomplete suggests drug names containing q. Short input yields an empty list.
func (s *DrugService) Autocomplete(ctx context.Context, q string) ([]models.DrugName, error) {
	q, ok := gate(q)
	if !ok {
		return []models.DrugName{}, nil
	}
	return s.repo.Autocomplete(ctx, q)
}

// Substances suggests active substances containing q. Short input yields an empty list.
func (s *DrugService) Substances(ctx context.Context, q string, page search.Page) ([]models.Substance, error) {
	q, ok := gate(q)
	if !ok {
		return []models.Substance{}, nil
	}
	return s.repo.Substances(ctx, q, page)
}

func (s *DrugService) Get(ctx context.Context, drugID, lang string) (*models.DrugDetail, error) {
	d, err := s.repo.GetDetail(ctx, drugID, resolveLang(lang, s.defaultLang))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, utils.NotFound("Drug not found")
	}
	return d, nil
}

func (s *DrugService) Create(ctx context.Context, d *models.Drug) (*models.Drug, error) {
	d.DrugID = strings.TrimSpace(d.DrugID)
	d.DrName = strings.TrimSpace(d.DrName)
	if d.DrugID == "" || d.DrName == "" {
		return nil, utils.Validation("drugid and drname are required")
	}
	return s.repo.Create(ctx, d)
}

func (s *DrugService) Update(ctx context.Context, drugID string, u *models.DrugUpdate) (*models.Drug, error) {
	if strings.TrimSpace(u.DrName) == "" {
		return nil, utils.Validation("drname is required")
	}
	d, err := s.repo.Update(ctx, drugID, u)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, utils.NotFound("Drug not found")
	}
	return d, nil
}

// gate normalizes a lookup term and reports whether it is long enough to query.
func gate(q string) (string, bool) {
	q = search.Normalize(q)
	return q, utf8.RuneCountInString(q) >= MinQueryLength
}

// screen runs search.Screen over field/value pairs.
func screen(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := search.Screen(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
