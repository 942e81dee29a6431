package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// PltabHandler serves the localized reference tables.
type PltabHandler struct {
	pltabService *service.PltabService
}

func NewPltabHandler(pltabService *service.PltabService) *PltabHandler {
	return &PltabHandler{pltabService: pltabService}
}

// Lookup returns the selectable values of one column.
// GET /pltab?column=&lang=
func (h *PltabHandler) Lookup(c *gin.Context) {
	entries, err := h.pltabService.Lookup(c.Request.Context(), c.Query("column"), c.Query("lang"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, entries, len(entries))
}

// Languages lists the UI languages.
// GET /pltab/languages
func (h *PltabHandler) Languages(c *gin.Context) {
	opts, err := h.pltabService.Languages(c.Request.Context(), requestLang(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, opts, len(opts))
}

// Columns lists the reference columns.
// GET /pltab/columns
func (h *PltabHandler) Columns(c *gin.Context) {
	opts, err := h.pltabService.Columns(c.Request.Context(), requestLang(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, opts, len(opts))
}

// GET /pltab/:column/:code/:lang
func (h *PltabHandler) Get(c *gin.Context) {
	e, err := h.pltabService.Get(c.Request.Context(), c.Param("column"), c.Param("code"), c.Param("lang"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, e)
}

// POST /pltab
func (h *PltabHandler) Insert(c *gin.Context) {
	var req models.PltabInsert
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Column, code and language are required", "")
		return
	}

	e, err := h.pltabService.Insert(c.Request.Context(), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, e)
}

// PUT /pltab/:column/:code/:lang
func (h *PltabHandler) Update(c *gin.Context) {
	var req models.PltabFields
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.pltabService.Update(c.Request.Context(), c.Param("column"), c.Param("code"), c.Param("lang"), req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, e)
}
