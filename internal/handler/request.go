package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/GTDGit/pharmreg_api/internal/middleware"
	"github.com/GTDGit/pharmreg_api/internal/search"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

// requestLang is the lang query parameter, else the language carried by the token.
// An empty result lets the service apply the default.
func requestLang(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.Lang
	}
	return ""
}

func pageParams(c *gin.Context, defLimit int) (search.Page, error) {
	return search.ParsePage(c.Query("limit"), c.Query("offset"), defLimit)
}

// bindJSON decodes the body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

// bindUpdate decodes an update body, lets setKey copy the path key into it and
// only then validates, so the body need not repeat the key.
func bindUpdate(c *gin.Context, dst interface{}, setKey func()) bool {
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	setKey()
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
