package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// PltabStore reads and writes localized reference values.
type PltabStore interface {
	List(ctx context.Context, column, lang string) ([]models.PltabEntry, error)
	Options(ctx context.Context, column, lang string) ([]models.Option, error)
	Get(ctx context.Context, column, code, lang string) (*models.PltabEntry, error)
	Insert(ctx context.Context, e *models.PltabEntry) (*models.PltabEntry, error)
	Update(ctx context.Context, e *models.PltabEntry) (*models.PltabEntry, error)
}

// ReferenceCache holds lookup lists per (column, language).
type ReferenceCache interface {
	Get(ctx context.Context, column, lang string) ([]models.PltabEntry, bool)
	Put(ctx context.Context, column, lang string, entries []models.PltabEntry)
	Invalidate(ctx context.Context, column, lang string)
}

type PltabService struct {
	repo        PltabStore
	cache       ReferenceCache
	defaultLang string
}

func NewPltabService(repo PltabStore, cache ReferenceCache, defaultLang string) *PltabService {
	return &PltabService{repo: repo, cache: cache, defaultLang: defaultLang}
}

// Lookup returns the selectable values of one allow-listed column in lang.
func (s *PltabService) Lookup(ctx context.Context, column, lang string) ([]models.PltabEntry, error) {
	column = strings.ToUpper(strings.TrimSpace(column))
	lang = strings.ToUpper(strings.TrimSpace(lang))
	if column == "" || lang == "" {
		return nil, utils.Validation("Language and column parameters are required")
	}
	if !models.IsPltabColumn(column) {
		return nil, &utils.AppError{
			Status:  http.StatusBadRequest,
			Message: "Invalid column: " + column,
			Err:     utils.ErrInvalidColumn,
		}
	}

	if entries, ok := s.cache.Get(ctx, column, lang); ok {
		return entries, nil
	}

	entries, err := s.repo.List(ctx, column, lang)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, utils.NotFound("No data found")
	}

	s.cache.Put(ctx, column, lang, entries)
	return entries, nil
}

// Languages lists the UI languages, labeled in lang.
func (s *PltabService) Languages(ctx context.Context, lang string) ([]models.Option, error) {
	return s.repo.Options(ctx, models.PltabLanguages, resolveLang(lang, s.defaultLang))
}

// Columns lists the reference columns, labeled in lang.
func (s *PltabService) Columns(ctx context.Context, lang string) ([]models.Option, error) {
	return s.repo.Options(ctx, models.PltabColumnIndex, resolveLang(lang, s.defaultLang))
}

func (s *PltabService) Get(ctx context.Context, column, code, lang string) (*models.PltabEntry, error) {
	e, err := s.repo.Get(ctx, strings.ToUpper(column), code, strings.ToUpper(lang))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, utils.NotFound("Record not found")
	}
	return e, nil
}

// Insert adds a reference value. Selectable defaults to 1 and seq to 0.
func (s *PltabService) Insert(ctx context.Context, in *models.PltabInsert) (*models.PltabEntry, error) {
	e := applyFields(&models.PltabEntry{
		Column:   strings.ToUpper(strings.TrimSpace(in.Column)),
		Code:     strings.TrimSpace(in.Code),
		Language: strings.ToUpper(strings.TrimSpace(in.Language)),
	}, in.PltabFields)
	if e.Column == "" || e.Code == "" || e.Language == "" {
		return nil, utils.Validation("Column, code and language are required")
	}

	out, err := s.repo.Insert(ctx, e)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, out.Column, out.Language)
	return out, nil
}

// Update replaces the attributes of a selectable reference value.
func (s *PltabService) Update(ctx context.Context, column, code, lang string, fields models.PltabFields) (*models.PltabEntry, error) {
	e := applyFields(&models.PltabEntry{
		Column:   strings.ToUpper(column),
		Code:     code,
		Language: strings.ToUpper(lang),
	}, fields)

	out, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, utils.NotFound("Record not found")
	}
	s.cache.Invalidate(ctx, out.Column, out.Language)
	return out, nil
}

func applyFields(e *models.PltabEntry, f models.PltabFields) *models.PltabEntry {
	e.LongText = f.LongText
	e.ShortText = f.ShortText
	e.ExternalRef = f.ExternalRef
	e.HTMLStyle = f.HTMLStyle
	e.Selectable = 1
	if f.Selectable != nil {
		e.Selectable = *f.Selectable
	}
	if f.Seq != nil {
		e.Seq = *f.Seq
	}
	return e
}
