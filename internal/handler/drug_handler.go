package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// DrugHandler serves the drug search, the drug pick lists and drug CRUD.
type DrugHandler struct {
	drugService    *service.DrugService
	companyService *service.CompanyService
}

func NewDrugHandler(drugService *service.DrugService, companyService *service.CompanyService) *DrugHandler {
	return &DrugHandler{drugService: drugService, companyService: companyService}
}

// Search runs the dynamic drug search.
// GET /drugs/drugs
func (h *DrugHandler) Search(c *gin.Context) {
	page, err := pageParams(c, search.DrugPageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	form := c.Query("FORM")
	if form == "" {
		form = c.Query("form")
	}
	params := models.DrugSearchParams{
		DrName:      c.Query("drname"),
		DrNameMatch: c.Query("drnameMatch"),
		DrStatus:    c.Query("drstatus"),
		Form:        form,
		DrType:      c.Query("drtype"),
		ApplicProc:  c.Query("applicproc"),
		ATC:         c.Query("atc"),
		Substance:   c.Query("substancs"),
		Company:     c.Query("company"),
		CoType:      c.Query("cotype"),
		Lang:        requestLang(c),
	}

	rows, total, err := h.drugService.Search(c.Request.Context(), params, page)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, rows, total)
}

// GET /drugs/dr/autocomplete?q=
func (h *DrugHandler) Autocomplete(c *gin.Context) {
	names, err := h.drugService.Autocomplete(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, names, len(names))
}

// GET /drugs/drsub?q=
func (h *DrugHandler) Substances(c *gin.Context) {
	page, err := pageParams(c, search.OptionPageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	subs, err := h.drugService.Substances(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, subs, len(subs))
}

// CompanyPickList feeds the company filter of the drug search form.
// GET /drugs/company?q=
func (h *DrugHandler) CompanyPickList(c *gin.Context) {
	page, err := pageParams(c, search.CompanyPageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rows, err := h.companyService.PickList(c.Request.Context(), c.Query("q"), requestLang(c), page)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, rows, len(rows))
}

// GET /drugs/dr/:drugid
func (h *DrugHandler) Get(c *gin.Context) {
	d, err := h.drugService.Get(c.Request.Context(), c.Param("drugid"), requestLang(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, d)
}

// POST /drugs/dr
func (h *DrugHandler) Create(c *gin.Context) {
	var req models.Drug
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.drugService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, d)
}

// PUT /drugs/dr/:drugid
func (h *DrugHandler) Update(c *gin.Context) {
	var req models.DrugUpdate
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.drugService.Update(c.Request.Context(), c.Param("drugid"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, d)
}
