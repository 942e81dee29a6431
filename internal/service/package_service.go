package service

import (
	"context"

	"github.com/GTDGit/pharmreg_api/internal/metrics"
	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// PackageStore reads and writes drdp rows.
type PackageStore interface {
	Search(ctx context.Context, f *search.Filter, lang string, page search.Page) ([]models.PackageRow, int, error)
	ListByDrug(ctx context.Context, drugID, packNr, lang string) ([]models.PackageRow, error)
	Create(ctx context.Context, p *models.DrugPackage) (*models.DrugPackage, error)
	Update(ctx context.Context, p *models.DrugPackage) (*models.DrugPackage, error)
}

type PackageService struct {
	repo        PackageStore
	defaultLang string
}

func NewPackageService(repo PackageStore, defaultLang string) *PackageService {
	return &PackageService{repo: repo, defaultLang: defaultLang}
}

func (s *PackageService) Search(ctx context.Context, p models.PackageSearchParams, page search.Page) (rows []models.PackageRow, total int, err error) {
	defer func() { metrics.ObserveSearch("package", total, err) }()

	if err = screen("patext", p.PaText, "eunumber", p.EUNumber); err != nil {
		return nil, 0, err
	}

	f := repository.PackageFilter(p)
	if f.Len() == 0 {
		return nil, 0, utils.ErrNoFilter
	}
	return s.repo.Search(ctx, f, resolveLang(p.Lang, s.defaultLang), page)
}

// ListByDrug returns the packages of a drug, 404 when it has none.
func (s *PackageService) ListByDrug(ctx context.Context, drugID, packNr, lang string) ([]models.PackageRow, error) {
	rows, err := s.repo.ListByDrug(ctx, drugID, packNr, resolveLang(lang, s.defaultLang))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, utils.NotFound("No packages found")
	}
	return rows, nil
}

func (s *PackageService) Create(ctx context.Context, p *models.DrugPackage) (*models.DrugPackage, error) {
	if p.DrdpID == "" || p.DrugID == "" {
		return nil, utils.Validation("drdpid and drugid are required")
	}
	return s.repo.Create(ctx, p)
}

// Update replaces package drdpID of drug drugID; the body keys are ignored.
func (s *PackageService) Update(ctx context.Context, drugID, drdpID string, p *models.DrugPackage) (*models.DrugPackage, error) {
	p.DrugID = drugID
	p.DrdpID = drdpID
	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, utils.NotFound("Package not found")
	}
	return out, nil
}
