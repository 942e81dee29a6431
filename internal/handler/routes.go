package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GTDGit/pharmreg_api/internal/middleware"
)

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Pltab     *PltabHandler
	Drug      *DrugHandler
	Company   *CompanyHandler
	Package   *PackageHandler
	PriceList *PriceListHandler
	Catalog   *CatalogHandler
}

// NewEngine returns a bare gin engine that only reads the client address
// from X-Forwarded-For when the request comes from one of trustedProxies.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	return router, nil
}

// SetupRoutes registers all routes.
func SetupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, loginThrottle *middleware.LoginThrottle) {
	router.GET("/health", handlers.Health.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/login", loginThrottle.Handle(), handlers.Auth.Login)

	api := router.Group("/")
	api.Use(jwtMiddleware.Handle())
	{
		// Reference tables; GET /pltab?column=LANGGREDIS passes the guard
		api.GET("/pltab", handlers.Pltab.Lookup)
		api.GET("/pltab/columns", handlers.Pltab.Columns)
		api.GET("/pltab/languages", handlers.Pltab.Languages)
		api.GET("/pltab/:column/:code/:lang", handlers.Pltab.Get)
		api.POST("/pltab", handlers.Pltab.Insert)
		api.PUT("/pltab/:column/:code/:lang", handlers.Pltab.Update)

		// Drugs
		api.GET("/drugs/drugs", handlers.Drug.Search)
		api.GET("/drugs/dr/autocomplete", handlers.Drug.Autocomplete)
		api.GET("/drugs/drsub", handlers.Drug.Substances)
		api.GET("/drugs/company", handlers.Drug.CompanyPickList)
		api.GET("/drugs/dr/:drugid", handlers.Drug.Get)
		api.POST("/drugs/dr", handlers.Drug.Create)
		api.PUT("/drugs/dr/:drugid", handlers.Drug.Update)

		// Companies
		api.GET("/company", handlers.Company.Search)
		api.GET("/company/:compid", handlers.Company.Get)
		api.POST("/company", handlers.Company.Create)
		api.PUT("/company/:compid", handlers.Company.Update)

		// Packages
		api.GET("/drdp", handlers.Package.Search)
		api.GET("/drdp/:drugid", handlers.Package.ListByDrug)
		api.POST("/drdp", handlers.Package.Create)
		api.PUT("/drdp/:drugid/:drdpid", handlers.Package.Update)

		// Price lists
		api.GET("/pcpricelist/all", handlers.PriceList.All)
		api.GET("/pcpricelist/priced", handlers.PriceList.Priced)
		api.GET("/pcpricelist/:drdpid", handlers.PriceList.Get)

		// ATC codes and drug links
		api.GET("/atc", handlers.Catalog.SearchATC)
		api.GET("/atc/:atccode", handlers.Catalog.GetATC)
		api.POST("/atc", handlers.Catalog.CreateATC)
		api.PUT("/atc/:atccode", handlers.Catalog.UpdateATC)

		api.GET("/dratc", handlers.Catalog.ListDrugATC)
		api.GET("/dratc/:drugid/:atccode", handlers.Catalog.GetDrugATC)
		api.POST("/dratc", handlers.Catalog.CreateDrugATC)
		api.PUT("/dratc/:drugid/:atccode", handlers.Catalog.RekeyDrugATC)

		api.GET("/drform", handlers.Catalog.ListForms)
		api.GET("/drform/:pharmid", handlers.Catalog.GetForm)
		api.POST("/drform", handlers.Catalog.CreateForm)
		api.PUT("/drform/:pharmid", handlers.Catalog.UpdateForm)

		api.GET("/drcompany/:drcomid", handlers.Catalog.GetDrugCompany)
		api.POST("/drcompany", handlers.Catalog.CreateDrugCompany)
		api.PUT("/drcompany/:drcomid", handlers.Catalog.UpdateDrugCompany)

		// Documents
		api.GET("/pl/:drugid", handlers.Catalog.PL)
		api.GET("/spc/:drugid", handlers.Catalog.SPC)
	}
}
