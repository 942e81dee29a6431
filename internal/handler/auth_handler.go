package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/service"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login issues a session token.
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Lang     string `json:"lang"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Username and password are required", "")
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Username, req.Password, req.Lang)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, http.StatusOK, res)
}
