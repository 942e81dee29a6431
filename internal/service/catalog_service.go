package service

import (
	"context"
	"strings"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

type ATCStore interface {
	Search(ctx context.Context, q string, limit int) ([]models.ATC, error)
	GetByCode(ctx context.Context, code string) (*models.ATC, error)
	Create(ctx context.Context, a *models.ATC) (*models.ATC, error)
	Update(ctx context.Context, a *models.ATC) (*models.ATC, error)
}

type DrugATCStore interface {
	List(ctx context.Context, limit int) ([]models.DrugATC, error)
	Get(ctx context.Context, drugID, atcCode string) (*models.DrugATC, error)
	Create(ctx context.Context, l *models.DrugATC) (*models.DrugATC, error)
	Rekey(ctx context.Context, drugID, atcCode string, next models.DrugATC) (*models.DrugATC, error)
}

type DrugFormStore interface {
	List(ctx context.Context, limit int) ([]models.DrugForm, error)
	GetByID(ctx context.Context, pharmID string) (*models.DrugForm, error)
	Create(ctx context.Context, f *models.DrugForm) (*models.DrugForm, error)
	Update(ctx context.Context, f *models.DrugForm) (*models.DrugForm, error)
}

type DrugCompanyStore interface {
	GetByID(ctx context.Context, drComID string) (*models.DrugCompany, error)
	Create(ctx context.Context, l *models.DrugCompany) (*models.DrugCompany, error)
	Update(ctx context.Context, l *models.DrugCompany) (*models.DrugCompany, error)
}

type DocumentStore interface {
	Versions(ctx context.Context, kind repository.DocumentKind, drugID string) ([]models.Document, error)
}

// CatalogService covers the small registry tables: ATC codes, drug/ATC links,
// drug forms, drug/company links and the PL/SPC documents.
type CatalogService struct {
	atc       ATCStore
	drugATC   DrugATCStore
	forms     DrugFormStore
	companies DrugCompanyStore
	documents DocumentStore
}

func NewCatalogService(atc ATCStore, drugATC DrugATCStore, forms DrugFormStore, companies DrugCompanyStore, documents DocumentStore) *CatalogService {
	return &CatalogService{atc: atc, drugATC: drugATC, forms: forms, companies: companies, documents: documents}
}

// SearchATC matches q against codes and descriptions. An empty q is rejected.
func (s *CatalogService) SearchATC(ctx context.Context, q string, limit int) ([]models.ATC, error) {
	q = strings.ToUpper(strings.TrimSpace(q))
	if q == "" {
		return nil, utils.Validation("Query parameter is required")
	}
	if err := screen("q", q); err != nil {
		return nil, err
	}
	return s.atc.Search(ctx, q, limit)
}

func (s *CatalogService) GetATC(ctx context.Context, code string) (*models.ATC, error) {
	a, err := s.atc.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, utils.NotFound("ATC code not found")
	}
	return a, nil
}

func (s *CatalogService) CreateATC(ctx context.Context, a *models.ATC) (*models.ATC, error) {
	a.ATCCode = strings.ToUpper(strings.TrimSpace(a.ATCCode))
	if a.ATCCode == "" {
		return nil, utils.Validation("atccode is required")
	}
	return s.atc.Create(ctx, a)
}

func (s *CatalogService) UpdateATC(ctx context.Context, code string, a *models.ATC) (*models.ATC, error) {
	a.ATCCode = strings.ToUpper(strings.TrimSpace(code))
	out, err := s.atc.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, utils.NotFound("ATC code not found")
	}
	return out, nil
}

func (s *CatalogService) ListDrugATC(ctx context.Context, limit int) ([]models.DrugATC, error) {
	return s.drugATC.List(ctx, limit)
}

func (s *CatalogService) GetDrugATC(ctx context.Context, drugID, atcCode string) (*models.DrugATC, error) {
	l, err := s.drugATC.Get(ctx, drugID, strings.ToUpper(atcCode))
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, utils.NotFound("Drug ATC link not found")
	}
	return l, nil
}

func (s *CatalogService) CreateDrugATC(ctx context.Context, l *models.DrugATC) (*models.DrugATC, error) {
	l.ATCCode = strings.ToUpper(strings.TrimSpace(l.ATCCode))
	if l.DrugID == "" || l.ATCCode == "" {
		return nil, utils.Validation("drugid and atccode are required")
	}
	return s.drugATC.Create(ctx, l)
}

// RekeyDrugATC moves a link to new_drugid/new_atccode; a blank field keeps its old value.
func (s *CatalogService) RekeyDrugATC(ctx context.Context, drugID, atcCode string, in models.DrugATCRekey) (*models.DrugATC, error) {
	atcCode = strings.ToUpper(atcCode)
	next := models.DrugATC{DrugID: drugID, ATCCode: atcCode}
	if v := strings.TrimSpace(in.NewDrugID); v != "" {
		next.DrugID = v
	}
	if v := strings.TrimSpace(in.NewATCCode); v != "" {
		next.ATCCode = strings.ToUpper(v)
	}

	out, err := s.drugATC.Rekey(ctx, drugID, atcCode, next)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, utils.NotFound("Drug ATC link not found")
	}
	return out, nil
}

func (s *CatalogService) ListForms(ctx context.Context, limit int) ([]models.DrugForm, error) {
	return s.forms.List(ctx, limit)
}

func (s *CatalogService) GetForm(ctx context.Context, pharmID string) (*models.DrugForm, error) {
	f, err := s.forms.GetByID(ctx, pharmID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, utils.NotFound("Drug form not found")
	}
	return f, nil
}

func (s *CatalogService) CreateForm(ctx context.Context, f *models.DrugForm) (*models.DrugForm, error) {
	if f.PharmID == "" || f.DrugID == "" {
		return nil, utils.Validation("pharmid and drugid are required")
	}
	return s.forms.Create(ctx, f)
}

func (s *CatalogService) UpdateForm(ctx context.Context, pharmID string, f *models.DrugForm) (*models.DrugForm, error) {
	f.PharmID = pharmID
	out, err := s.forms.Update(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, utils.NotFound("Drug form not found")
	}
	return out, nil
}

func (s *CatalogService) GetDrugCompany(ctx context.Context, drComID string) (*models.DrugCompany, error) {
	l, err := s.companies.GetByID(ctx, drComID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, utils.NotFound("Drug company link not found")
	}
	return l, nil
}

func (s *CatalogService) CreateDrugCompany(ctx context.Context, l *models.DrugCompany) (*models.DrugCompany, error) {
	if l.DrComID == "" || l.CompID == "" || l.DrugID == "" {
		return nil, utils.Validation("drcomid, compid and drugid are required")
	}
	return s.companies.Create(ctx, l)
}

func (s *CatalogService) UpdateDrugCompany(ctx context.Context, drComID string, l *models.DrugCompany) (*models.DrugCompany, error) {
	l.DrComID = drComID
	out, err := s.companies.Update(ctx, l)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, utils.NotFound("Drug company link not found")
	}
	return out, nil
}

// Documents returns the PL or SPC versions of a drug, newest first.
func (s *CatalogService) Documents(ctx context.Context, kind repository.DocumentKind, drugID string) ([]models.Document, error) {
	docs, err := s.documents.Versions(ctx, kind, drugID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, utils.NotFound("No " + strings.ToUpper(string(kind)) + " data found")
	}
	return docs, nil
}
