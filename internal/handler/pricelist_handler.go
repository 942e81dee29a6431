package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

type PriceListHandler struct {
	priceService *service.PriceListService
}

func NewPriceListHandler(priceService *service.PriceListService) *PriceListHandler {
	return &PriceListHandler{priceService: priceService}
}

// Get resolves the price list of one package.
// GET /pcpricelist/:drdpid
func (h *PriceListHandler) Get(c *gin.Context) {
	pl, err := h.priceService.Resolve(c.Request.Context(), c.Param("drdpid"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, http.StatusOK, pl)
}

// All lists every package of a drug for the price-list picker.
// GET /pcpricelist/all?drugid=
func (h *PriceListHandler) All(c *gin.Context) {
	h.options(c, false)
}

// Priced lists only packages with a currently valid price.
// GET /pcpricelist/priced?drugid=
func (h *PriceListHandler) Priced(c *gin.Context) {
	h.options(c, true)
}

func (h *PriceListHandler) options(c *gin.Context, pricedOnly bool) {
	page, err := pageParams(c, search.OptionPageSize)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	opts, err := h.priceService.PackageOptions(c.Request.Context(), c.Query("drugid"), pricedOnly, page)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.List(c, opts, len(opts))
}
