package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// PackageHandler serves drdp, the marketed packs of a drug.
type PackageHandler struct {
	packageService *service.PackageService
}

func NewPackageHandler(packageService *service.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// GET /drdp
func (h *PackageHandler) Search(c *gin.Context) {
	page, err := pageParams(c, search.PackagePageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	params := models.PackageSearchParams{
		DrugID:   c.Query("drugid"),
		PackNr:   c.Query("packnr"),
		PaText:   c.Query("patext"),
		Barcode:  c.Query("barcode"),
		EUNumber: c.Query("eunumber"),
		DpStatus: c.Query("dpstatus"),
		Lang:     requestLang(c),
	}

	rows, total, err := h.packageService.Search(c.Request.Context(), params, page)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, rows, total)
}

// ListByDrug returns the packages of a drug, optionally one pack number.
// GET /drdp/:drugid?packnr=
func (h *PackageHandler) ListByDrug(c *gin.Context) {
	rows, err := h.packageService.ListByDrug(c.Request.Context(), c.Param("drugid"), c.Query("packnr"), requestLang(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, rows, len(rows))
}

// POST /drdp
func (h *PackageHandler) Create(c *gin.Context) {
	var req models.DrugPackage
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.packageService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, p)
}

// PUT /drdp/:drugid/:drdpid
func (h *PackageHandler) Update(c *gin.Context) {
	var req models.DrugPackage
	if !bindUpdate(c, &req, func() {
		req.DrugID = c.Param("drugid")
		req.DrdpID = c.Param("drdpid")
	}) {
		return
	}

	p, err := h.packageService.Update(c.Request.Context(), c.Param("drugid"), c.Param("drdpid"), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, p)
}
