package service

import (
	"context"
	"strings"

	"github.com/GTDGit/pharmreg_api/internal/metrics"
	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// CompanyStore reads and writes companies.
type CompanyStore interface {
	Search(ctx context.Context, f *search.Filter, lang string, page search.Page) ([]models.CompanyRow, int, error)
	PickList(ctx context.Context, q, lang string, page search.Page) ([]models.CompanyRow, error)
	GetByID(ctx context.Context, compID string) (*models.Company, error)
	Create(ctx context.Context, c *models.Company) (*models.Company, error)
	Update(ctx context.Context, c *models.Company) (*models.Company, error)
}

type CompanyService struct {
	repo        CompanyStore
	defaultLang string
}

func NewCompanyService(repo CompanyStore, defaultLang string) *CompanyService {
	return &CompanyService{repo: repo, defaultLang: defaultLang}
}

func (s *CompanyService) Search(ctx context.Context, p models.CompanySearchParams, page search.Page) (rows []models.CompanyRow, total int, err error) {
	defer func() { metrics.ObserveSearch("company", total, err) }()

	if err = screen("compid", p.CompID, "coname", p.CoName, "emeanumber", p.EMEANumber); err != nil {
		return nil, 0, err
	}

	f := repository.CompanyFilter(p)
	if f.Len() == 0 {
		return nil, 0, utils.ErrNoFilter
	}
	return s.repo.Search(ctx, f, resolveLang(p.Lang, s.defaultLang), page)
}

// PickList returns companies whose name contains q. Short input yields an empty list.
func (s *CompanyService) PickList(ctx context.Context, q, lang string, page search.Page) ([]models.CompanyRow, error) {
	q, ok := gate(q)
	if !ok {
		return []models.CompanyRow{}, nil
	}
	return s.repo.PickList(ctx, q, resolveLang(lang, s.defaultLang), page)
}

func (s *CompanyService) Get(ctx context.Context, compID string) (*models.Company, error) {
	c, err := s.repo.GetByID(ctx, compID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, utils.NotFound("Company not found")
	}
	return c, nil
}

func (s *CompanyService) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	c.CompID = strings.TrimSpace(c.CompID)
	if c.CompID == "" || strings.TrimSpace(c.CoName) == "" {
		return nil, utils.Validation("compid and coname are required")
	}
	return s.repo.Create(ctx, c)
}

// Update replaces the company identified by compID; the body key is ignored.
func (s *CompanyService) Update(ctx context.Context, compID string, c *models.Company) (*models.Company, error) {
	c.CompID = compID
	out, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, utils.NotFound("Company not found")
	}
	return out, nil
}
