package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

func strPtr(s string) *string { return &s }

// --- auth ---

type fakeUsers struct {
	users   map[string]*models.User
	created []*models.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.created = append(f.created, u)
	return nil
}

type fakeTokens struct{ username, lang string }

func (f *fakeTokens) GenerateJWT(username, lang string) (string, error) {
	f.username, f.lang = username, lang
	return "token-" + username, nil
}

func newAuth(t *testing.T, active bool) (*AuthService, *fakeTokens) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!!"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUsers{users: map[string]*models.User{
		"maria": {ID: 1, Username: "maria", PasswordHash: string(hash), IsActive: active},
	}}
	tokens := &fakeTokens{}
	return NewAuthService(users, tokens, "EL"), tokens
}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := newAuth(t, true)

	res, err := svc.Login(context.Background(), " maria ", "s3cret!!", " en ")
	require.NoError(t, err)
	assert.Equal(t, "token-maria", res.Token)
	assert.Equal(t, "EN", res.Lang)
	assert.Equal(t, "EN", tokens.lang)
}

func TestAuthService_LoginDefaultsLanguage(t *testing.T) {
	svc, _ := newAuth(t, true)

	res, err := svc.Login(context.Background(), "maria", "s3cret!!", "")
	require.NoError(t, err)
	assert.Equal(t, "EL", res.Lang)
}

func TestAuthService_LoginFailures(t *testing.T) {
	active, _ := newAuth(t, true)
	inactive, _ := newAuth(t, false)

	_, err := active.Login(context.Background(), "maria", "wrong", "")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = active.Login(context.Background(), "nobody", "s3cret!!", "")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = inactive.Login(context.Background(), "maria", "s3cret!!", "")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = active.Login(context.Background(), "", "", "")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestAuthService_CreateUser(t *testing.T) {
	users := &fakeUsers{}
	svc := NewAuthService(users, &fakeTokens{}, "EL")

	u, err := svc.CreateUser(context.Background(), "nikos", "longenough")
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longenough")))
	assert.Len(t, users.created, 1)

	_, err = svc.CreateUser(context.Background(), "nikos", "short")
	assert.Error(t, err)
}

// --- pltab ---

type fakePltab struct {
	entries  []models.PltabEntry
	listed   int
	inserted *models.PltabEntry
	updated  *models.PltabEntry
	missing  bool
}

func (f *fakePltab) List(_ context.Context, column, lang string) ([]models.PltabEntry, error) {
	f.listed++
	return f.entries, nil
}

func (f *fakePltab) Options(_ context.Context, column, lang string) ([]models.Option, error) {
	return []models.Option{{Value: column, Label: lang}}, nil
}

func (f *fakePltab) Get(_ context.Context, column, code, lang string) (*models.PltabEntry, error) {
	if f.missing {
		return nil, nil
	}
	return &models.PltabEntry{Column: column, Code: code, Language: lang}, nil
}

func (f *fakePltab) Insert(_ context.Context, e *models.PltabEntry) (*models.PltabEntry, error) {
	f.inserted = e
	return e, nil
}

func (f *fakePltab) Update(_ context.Context, e *models.PltabEntry) (*models.PltabEntry, error) {
	if f.missing {
		return nil, nil
	}
	f.updated = e
	return e, nil
}

type fakeRefCache struct {
	data        map[string][]models.PltabEntry
	invalidated []string
}

func newFakeRefCache() *fakeRefCache {
	return &fakeRefCache{data: map[string][]models.PltabEntry{}}
}

func (c *fakeRefCache) Get(_ context.Context, column, lang string) ([]models.PltabEntry, bool) {
	e, ok := c.data[column+":"+lang]
	return e, ok
}

func (c *fakeRefCache) Put(_ context.Context, column, lang string, entries []models.PltabEntry) {
	c.data[column+":"+lang] = entries
}

func (c *fakeRefCache) Invalidate(_ context.Context, column, lang string) {
	delete(c.data, column+":"+lang)
	c.invalidated = append(c.invalidated, column+":"+lang)
}

func TestPltabService_LookupValidation(t *testing.T) {
	svc := NewPltabService(&fakePltab{}, newFakeRefCache(), "EL")

	_, err := svc.Lookup(context.Background(), "", "EL")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Language and column parameters are required", appErr.Message)

	_, err = svc.Lookup(context.Background(), "bogus", "EL")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid column: BOGUS", appErr.Message)
	assert.ErrorIs(t, err, utils.ErrInvalidColumn)
}

func TestPltabService_LookupEmptyIsNotFound(t *testing.T) {
	svc := NewPltabService(&fakePltab{}, newFakeRefCache(), "EL")

	_, err := svc.Lookup(context.Background(), "form", "el")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPltabService_LookupUsesCache(t *testing.T) {
	repo := &fakePltab{entries: []models.PltabEntry{{Column: "FORM", Code: "TAB", Language: "EL", Selectable: 1}}}
	refs := newFakeRefCache()
	svc := NewPltabService(repo, refs, "EL")

	for i := 0; i < 3; i++ {
		entries, err := svc.Lookup(context.Background(), " form ", "el")
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	}
	assert.Equal(t, 1, repo.listed)

	_, err := svc.Update(context.Background(), "form", "TAB", "el", models.PltabFields{LongText: strPtr("Tablet")})
	require.NoError(t, err)
	assert.Equal(t, []string{"FORM:EL"}, refs.invalidated)

	_, err = svc.Lookup(context.Background(), "FORM", "EL")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listed)
}

func TestPltabService_InsertDefaults(t *testing.T) {
	repo := &fakePltab{}
	svc := NewPltabService(repo, newFakeRefCache(), "EL")

	out, err := svc.Insert(context.Background(), &models.PltabInsert{Column: "form", Code: "CAP", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "FORM", out.Column)
	assert.Equal(t, "EN", out.Language)
	assert.Equal(t, 1, repo.inserted.Selectable)
	assert.Equal(t, 0, repo.inserted.Seq)

	zero, seq := 0, 4
	_, err = svc.Insert(context.Background(), &models.PltabInsert{
		Column: "FORM", Code: "CAP", Language: "EN",
		PltabFields: models.PltabFields{Selectable: &zero, Seq: &seq},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.inserted.Selectable)
	assert.Equal(t, 4, repo.inserted.Seq)

	_, err = svc.Insert(context.Background(), &models.PltabInsert{Column: "FORM", Language: "EN"})
	assert.Error(t, err)
}

func TestPltabService_UpdateMissing(t *testing.T) {
	refs := newFakeRefCache()
	svc := NewPltabService(&fakePltab{missing: true}, refs, "EL")

	_, err := svc.Update(context.Background(), "FORM", "XX", "EL", models.PltabFields{})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.Empty(t, refs.invalidated)
}

func TestPltabService_LanguagesDefaultLang(t *testing.T) {
	svc := NewPltabService(&fakePltab{}, newFakeRefCache(), "EL")

	opts, err := svc.Languages(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []models.Option{{Value: models.PltabLanguages, Label: "EL"}}, opts)
}

// --- drugs ---

type fakeDrugs struct {
	filter   *search.Filter
	lang     string
	queried  string
	detail   *models.DrugDetail
	searched bool
}

func (f *fakeDrugs) Search(_ context.Context, filter *search.Filter, lang string, _ search.Page) ([]models.DrugSearchRow, int, error) {
	f.searched = true
	f.filter, f.lang = filter, lang
	return []models.DrugSearchRow{{DrugID: "D1", DrName: "ASPIRIN"}}, 1, nil
}

func (f *fakeDrugs) Autocomplete(_ context.Context, q string) ([]models.DrugName, error) {
	f.queried = q
	return []models.DrugName{{DrName: "ASPIRIN"}}, nil
}

func (f *fakeDrugs) Substances(_ context.Context, q string, _ search.Page) ([]models.Substance, error) {
	f.queried = q
	return []models.Substance{{Substance: "ASA"}}, nil
}

func (f *fakeDrugs) GetDetail(_ context.Context, drugID, lang string) (*models.DrugDetail, error) {
	return f.detail, nil
}

func (f *fakeDrugs) Create(_ context.Context, d *models.Drug) (*models.Drug, error) { return d, nil }

func (f *fakeDrugs) Update(_ context.Context, drugID string, u *models.DrugUpdate) (*models.Drug, error) {
	return nil, nil
}

func TestDrugService_SearchRequiresFilter(t *testing.T) {
	repo := &fakeDrugs{}
	svc := NewDrugService(repo, "EL")

	_, _, err := svc.Search(context.Background(), models.DrugSearchParams{Lang: "EN"}, search.Page{Limit: 10})
	assert.ErrorIs(t, err, utils.ErrNoFilter)
	assert.False(t, repo.searched)
}

func TestDrugService_SearchDefaultsLanguage(t *testing.T) {
	repo := &fakeDrugs{}
	svc := NewDrugService(repo, "EL")

	rows, total, err := svc.Search(context.Background(), models.DrugSearchParams{DrName: "aspirin"}, search.Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, rows, 1)
	assert.Equal(t, "EL", repo.lang)
	assert.Equal(t, 1, repo.filter.Len())
}

func TestDrugService_SearchRejectsInjection(t *testing.T) {
	repo := &fakeDrugs{}
	svc := NewDrugService(repo, "EL")

	_, _, err := svc.Search(context.Background(), models.DrugSearchParams{DrName: "-1' and 1=1 union/* foo */select load_file('/etc/passwd')--"}, search.Page{Limit: 10})
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.False(t, repo.searched)
}

func TestDrugService_AutocompleteGate(t *testing.T) {
	repo := &fakeDrugs{}
	svc := NewDrugService(repo, "EL")

	names, err := svc.Autocomplete(context.Background(), " as ")
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
	assert.Empty(t, repo.queried)

	names, err = svc.Autocomplete(context.Background(), "asp")
	require.NoError(t, err)
	assert.Len(t, names, 1)
	assert.Equal(t, "ASP", repo.queried)
}

func TestDrugService_NotFound(t *testing.T) {
	svc := NewDrugService(&fakeDrugs{}, "EL")

	_, err := svc.Get(context.Background(), "D404", "")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.Update(context.Background(), "D404", &models.DrugUpdate{DrName: "X"})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

// --- packages ---

type fakePackages struct{ rows []models.PackageRow }

func (f *fakePackages) Search(_ context.Context, _ *search.Filter, _ string, _ search.Page) ([]models.PackageRow, int, error) {
	return f.rows, len(f.rows), nil
}

func (f *fakePackages) ListByDrug(_ context.Context, drugID, packNr, lang string) ([]models.PackageRow, error) {
	return f.rows, nil
}

func (f *fakePackages) Create(_ context.Context, p *models.DrugPackage) (*models.DrugPackage, error) {
	return p, nil
}

func (f *fakePackages) Update(_ context.Context, p *models.DrugPackage) (*models.DrugPackage, error) {
	return p, nil
}

func TestPackageService_ListByDrugEmpty(t *testing.T) {
	svc := NewPackageService(&fakePackages{}, "EL")

	_, err := svc.ListByDrug(context.Background(), "D1", "", "")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "No packages found", appErr.Message)
}

func TestPackageService_UpdateUsesPathKeys(t *testing.T) {
	svc := NewPackageService(&fakePackages{}, "EL")

	out, err := svc.Update(context.Background(), "D1", "P1", &models.DrugPackage{DrdpID: "other", DrugID: "other"})
	require.NoError(t, err)
	assert.Equal(t, "D1", out.DrugID)
	assert.Equal(t, "P1", out.DrdpID)
}

// --- price lists ---

type fakePrices struct {
	current, history []models.PriceRow
	refs             []models.PackageRef
	historyCalled    bool
}

func (f *fakePrices) Current(_ context.Context, _ string) ([]models.PriceRow, error) {
	return f.current, nil
}

func (f *fakePrices) History(_ context.Context, _ string) ([]models.PriceRow, error) {
	f.historyCalled = true
	return f.history, nil
}

func (f *fakePrices) Packages(_ context.Context, _ string, _ bool, _ search.Page) ([]models.PackageRef, error) {
	return f.refs, nil
}

func priceRow(from, status string, misyfa, negative bool) models.PriceRow {
	return models.PriceRow{
		DateFrom:    from,
		RetailPrice: decimal.NewNullDecimal(decimal.RequireFromString("12.40")),
		VAT:         decimal.NewFromInt(6),
		Misyfa:      misyfa,
		Negative:    negative,
		Status:      status,
	}
}

func TestPriceListService_Resolve(t *testing.T) {
	repo := &fakePrices{current: []models.PriceRow{
		priceRow("2024-03-01", models.PriceActive, true, false),
		priceRow("2023-01-01", models.PriceExpired, false, true),
	}}
	svc := NewPriceListService(repo)

	pl, err := svc.Resolve(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, 2, pl.Total)
	assert.False(t, repo.historyCalled)
	assert.Equal(t, models.PriceFlags{
		Misyfa:         true,
		Negative:       false,
		Rule:           RuleLeadingRow,
		SourceDateFrom: "2024-03-01",
	}, pl.Flags)
}

func TestPriceListService_FallsBackToHistory(t *testing.T) {
	repo := &fakePrices{history: []models.PriceRow{priceRow("2020-01-01", models.PriceExpired, false, true)}}
	svc := NewPriceListService(repo)

	pl, err := svc.Resolve(context.Background(), "P1")
	require.NoError(t, err)
	assert.True(t, repo.historyCalled)
	assert.True(t, pl.Flags.Negative)
	assert.Equal(t, models.PriceExpired, pl.Results[0].Status)
}

func TestPriceListService_NotFound(t *testing.T) {
	_, err := NewPriceListService(&fakePrices{}).Resolve(context.Background(), "P404")

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "No price list found", appErr.Message)
}

func TestFlagsFromLeadingRow_Ambiguous(t *testing.T) {
	rows := []models.PriceRow{
		priceRow("2024-03-01", models.PriceActive, true, false),
		priceRow("2024-01-01", models.PriceActive, false, false),
	}
	flags := FlagsFromLeadingRow(rows)
	assert.True(t, flags.Ambiguous)
	assert.True(t, flags.Misyfa)

	rows[1].Misyfa = true
	assert.False(t, FlagsFromLeadingRow(rows).Ambiguous)

	// Expired rows never make the flags ambiguous.
	rows[1].Status = models.PriceExpired
	rows[1].Negative = true
	assert.False(t, FlagsFromLeadingRow(rows).Ambiguous)
}

func TestPriceListService_PackageOptions(t *testing.T) {
	repo := &fakePrices{refs: []models.PackageRef{
		{DrdpID: "P3", PackNr: strPtr("02"), PaText: strPtr("BTx30")},
		{DrdpID: "P9"},
		{DrdpID: "P1", PackNr: strPtr("01"), PaText: strPtr("BTx20")},
	}}
	svc := NewPriceListService(repo)

	opts, err := svc.PackageOptions(context.Background(), "D1", false, search.Page{Limit: 100})
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, "01 BTx20", opts[0].Label)
	assert.Equal(t, "02 BTx30", opts[1].Label)
	assert.Equal(t, "ID: P9", opts[2].Label)
	assert.Equal(t, "P9", opts[2].Value)
}

// --- catalog ---

type fakeATC struct{ q string }

func (f *fakeATC) Search(_ context.Context, q string, _ int) ([]models.ATC, error) {
	f.q = q
	return []models.ATC{}, nil
}

func (f *fakeATC) GetByCode(_ context.Context, code string) (*models.ATC, error) { return nil, nil }

func (f *fakeATC) Create(_ context.Context, a *models.ATC) (*models.ATC, error) { return a, nil }

func (f *fakeATC) Update(_ context.Context, a *models.ATC) (*models.ATC, error) { return a, nil }

type fakeDrugATC struct {
	from []string
	next models.DrugATC
}

func (f *fakeDrugATC) List(_ context.Context, _ int) ([]models.DrugATC, error) { return nil, nil }

func (f *fakeDrugATC) Get(_ context.Context, _, _ string) (*models.DrugATC, error) { return nil, nil }

func (f *fakeDrugATC) Create(_ context.Context, l *models.DrugATC) (*models.DrugATC, error) {
	return l, nil
}

func (f *fakeDrugATC) Rekey(_ context.Context, drugID, atcCode string, next models.DrugATC) (*models.DrugATC, error) {
	f.from = []string{drugID, atcCode}
	f.next = next
	return &next, nil
}

type fakeDocuments struct{ docs []models.Document }

func (f *fakeDocuments) Versions(_ context.Context, kind repository.DocumentKind, _ string) ([]models.Document, error) {
	if kind != repository.DocumentPL && kind != repository.DocumentSPC {
		return nil, errors.New("unknown document kind")
	}
	return f.docs, nil
}

func newCatalog(atc *fakeATC, links *fakeDrugATC, docs *fakeDocuments) *CatalogService {
	return NewCatalogService(atc, links, nil, nil, docs)
}

func TestCatalogService_SearchATC(t *testing.T) {
	atc := &fakeATC{}
	svc := newCatalog(atc, &fakeDrugATC{}, &fakeDocuments{})

	_, err := svc.SearchATC(context.Background(), "  ", 20)
	assert.Error(t, err)

	out, err := svc.SearchATC(context.Background(), "n02", 20)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "N02", atc.q)

	_, err = svc.GetATC(context.Background(), "X")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCatalogService_RekeyDrugATC(t *testing.T) {
	links := &fakeDrugATC{}
	svc := newCatalog(&fakeATC{}, links, &fakeDocuments{})

	out, err := svc.RekeyDrugATC(context.Background(), "D1", "n02ba01", models.DrugATCRekey{NewATCCode: "n02ba02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"D1", "N02BA01"}, links.from)
	assert.Equal(t, models.DrugATC{DrugID: "D1", ATCCode: "N02BA02"}, *out)
}

func TestCatalogService_Documents(t *testing.T) {
	svc := newCatalog(&fakeATC{}, &fakeDrugATC{}, &fakeDocuments{})

	_, err := svc.Documents(context.Background(), repository.DocumentSPC, "D1")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "No SPC data found", appErr.Message)
}

// --- reference round trip ---

type memPltab struct {
	fakePltab
	rows map[string]models.PltabEntry
}

func (m *memPltab) key(column, code, lang string) string {
	return column + "|" + code + "|" + lang
}

func (m *memPltab) Insert(_ context.Context, e *models.PltabEntry) (*models.PltabEntry, error) {
	m.rows[m.key(e.Column, e.Code, e.Language)] = *e
	return e, nil
}

func (m *memPltab) Get(_ context.Context, column, code, lang string) (*models.PltabEntry, error) {
	e, ok := m.rows[m.key(column, code, lang)]
	if !ok || e.Selectable != 1 {
		return nil, nil
	}
	return &e, nil
}

func TestPltabService_InsertThenGet(t *testing.T) {
	store := &memPltab{rows: map[string]models.PltabEntry{}}
	svc := NewPltabService(store, newFakeRefCache(), "EL")
	ctx := context.Background()

	_, err := svc.Insert(ctx, &models.PltabInsert{
		Column:   "FORM",
		Code:     "X1",
		Language: "EL",
		PltabFields: models.PltabFields{
			LongText:    strPtr("Δισκίο επικαλυμμένο"),
			ShortText:   strPtr("ΔΙΣΚ"),
			ExternalRef: strPtr("10221000"),
		},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "FORM", "X1", "EL")
	require.NoError(t, err)
	assert.Equal(t, "Δισκίο επικαλυμμένο", *got.LongText)
	assert.Equal(t, "ΔΙΣΚ", *got.ShortText)
	assert.Equal(t, "10221000", *got.ExternalRef)
	assert.Nil(t, got.HTMLStyle)

	_, err = svc.Get(ctx, "FORM", "X2", "EL")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

// --- companies ---

type fakeCompanies struct{ searched bool }

func (f *fakeCompanies) Search(_ context.Context, _ *search.Filter, _ string, _ search.Page) ([]models.CompanyRow, int, error) {
	f.searched = true
	return []models.CompanyRow{}, 0, nil
}

func (f *fakeCompanies) PickList(_ context.Context, _, _ string, _ search.Page) ([]models.CompanyRow, error) {
	return []models.CompanyRow{}, nil
}

func (f *fakeCompanies) GetByID(_ context.Context, _ string) (*models.Company, error) { return nil, nil }

func (f *fakeCompanies) Create(_ context.Context, c *models.Company) (*models.Company, error) {
	return c, nil
}

func (f *fakeCompanies) Update(_ context.Context, _ *models.Company) (*models.Company, error) {
	return nil, nil
}

func TestCompanyService_SearchRequiresFilter(t *testing.T) {
	repo := &fakeCompanies{}
	svc := NewCompanyService(repo, "EL")

	_, _, err := svc.Search(context.Background(), models.CompanySearchParams{Lang: "EN"}, search.Page{Limit: 20})
	assert.ErrorIs(t, err, utils.ErrNoFilter)
	assert.False(t, repo.searched)

	_, _, err = svc.Search(context.Background(), models.CompanySearchParams{CoName: "  "}, search.Page{Limit: 20})
	assert.ErrorIs(t, err, utils.ErrNoFilter)
}
