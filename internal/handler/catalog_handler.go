package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/repository"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// CatalogHandler serves ATC codes, drug/ATC links, drug forms, drug/company
// links and the PL/SPC documents.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) limit(c *gin.Context, def int) (int, bool) {
	page, err := search.ParsePage(c.Query("limit"), "", def)
	if err != nil {
		utils.Fail(c, err)
		return 0, false
	}
	return page.Limit, true
}

// GET /atc?q=&limit=
func (h *CatalogHandler) SearchATC(c *gin.Context) {
	limit, ok := h.limit(c, search.ATCPageSize)
	if !ok {
		return
	}

	codes, err := h.catalogService.SearchATC(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, codes, len(codes))
}

// GET /atc/:atccode
func (h *CatalogHandler) GetATC(c *gin.Context) {
	a, err := h.catalogService.GetATC(c.Request.Context(), c.Param("atccode"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, a)
}

// POST /atc
func (h *CatalogHandler) CreateATC(c *gin.Context) {
	var req models.ATC
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.catalogService.CreateATC(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, a)
}

// PUT /atc/:atccode
func (h *CatalogHandler) UpdateATC(c *gin.Context) {
	var req models.ATC
	if !bindUpdate(c, &req, func() { req.ATCCode = c.Param("atccode") }) {
		return
	}

	a, err := h.catalogService.UpdateATC(c.Request.Context(), c.Param("atccode"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, a)
}

// GET /dratc?limit=
func (h *CatalogHandler) ListDrugATC(c *gin.Context) {
	limit, ok := h.limit(c, search.LinkPageSize)
	if !ok {
		return
	}

	links, err := h.catalogService.ListDrugATC(c.Request.Context(), limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, links, len(links))
}

// GET /dratc/:drugid/:atccode
func (h *CatalogHandler) GetDrugATC(c *gin.Context) {
	l, err := h.catalogService.GetDrugATC(c.Request.Context(), c.Param("drugid"), c.Param("atccode"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, l)
}

// POST /dratc
func (h *CatalogHandler) CreateDrugATC(c *gin.Context) {
	var req models.DrugATC
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.catalogService.CreateDrugATC(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, l)
}

// RekeyDrugATC moves a link to {new_drugid, new_atccode}.
// PUT /dratc/:drugid/:atccode
func (h *CatalogHandler) RekeyDrugATC(c *gin.Context) {
	var req models.DrugATCRekey
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.catalogService.RekeyDrugATC(c.Request.Context(), c.Param("drugid"), c.Param("atccode"), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, l)
}

// GET /drform?limit=
func (h *CatalogHandler) ListForms(c *gin.Context) {
	limit, ok := h.limit(c, search.LinkPageSize)
	if !ok {
		return
	}

	forms, err := h.catalogService.ListForms(c.Request.Context(), limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, forms, len(forms))
}

// GET /drform/:pharmid
func (h *CatalogHandler) GetForm(c *gin.Context) {
	f, err := h.catalogService.GetForm(c.Request.Context(), c.Param("pharmid"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, f)
}

// POST /drform
func (h *CatalogHandler) CreateForm(c *gin.Context) {
	var req models.DrugForm
	if !bindJSON(c, &req) {
		return
	}

	f, err := h.catalogService.CreateForm(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, f)
}

// PUT /drform/:pharmid
func (h *CatalogHandler) UpdateForm(c *gin.Context) {
	var req models.DrugForm
	if !bindUpdate(c, &req, func() { req.PharmID = c.Param("pharmid") }) {
		return
	}

	f, err := h.catalogService.UpdateForm(c.Request.Context(), c.Param("pharmid"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, f)
}

// GET /drcompany/:drcomid
func (h *CatalogHandler) GetDrugCompany(c *gin.Context) {
	l, err := h.catalogService.GetDrugCompany(c.Request.Context(), c.Param("drcomid"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, l)
}

// POST /drcompany
func (h *CatalogHandler) CreateDrugCompany(c *gin.Context) {
	var req models.DrugCompany
	if !bindJSON(c, &req) {
		return
	}

	l, err := h.catalogService.CreateDrugCompany(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, l)
}

// PUT /drcompany/:drcomid
func (h *CatalogHandler) UpdateDrugCompany(c *gin.Context) {
	var req models.DrugCompany
	if !bindUpdate(c, &req, func() { req.DrComID = c.Param("drcomid") }) {
		return
	}

	l, err := h.catalogService.UpdateDrugCompany(c.Request.Context(), c.Param("drcomid"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, l)
}

// GET /pl/:drugid
func (h *CatalogHandler) PL(c *gin.Context) {
	h.documents(c, repository.DocumentPL)
}

// GET /spc/:drugid
func (h *CatalogHandler) SPC(c *gin.Context) {
	h.documents(c, repository.DocumentSPC)
}

func (h *CatalogHandler) documents(c *gin.Context, kind repository.DocumentKind) {
	docs, err := h.catalogService.Documents(c.Request.Context(), kind, c.Param("drugid"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, docs, len(docs))
}
