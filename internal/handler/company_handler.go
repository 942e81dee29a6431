package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

type CompanyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Search runs the dynamic company search; q is an alias of coname.
// GET /company
func (h *CompanyHandler) Search(c *gin.Context) {
	page, err := pageParams(c, search.CompanyPageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	name := c.Query("coname")
	if name == "" {
		name = c.Query("q")
	}
	params := models.CompanySearchParams{
		CompID:     c.Query("compid"),
		CoName:     name,
		EMEANumber: c.Query("emeanumber"),
		Country:    c.Query("country"),
		Lang:       requestLang(c),
	}

	rows, total, err := h.companyService.Search(c.Request.Context(), params, page)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, rows, total)
}

// GET /company/:compid
func (h *CompanyHandler) Get(c *gin.Context) {
	co, err := h.companyService.Get(c.Request.Context(), c.Param("compid"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, co)
}

// POST /company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req models.Company
	if !bindJSON(c, &req) {
		return
	}

	co, err := h.companyService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, co)
}

// PUT /company/:compid
func (h *CompanyHandler) Update(c *gin.Context) {
	var req models.Company
	if !bindUpdate(c, &req, func() { req.CompID = c.Param("compid") }) {
		return
	}

	co, err := h.companyService.Update(c.Request.Context(), c.Param("compid"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, co)
}
