package controller

import (
	"horizon_backend/internal/service"
	"horizon_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// @Summary Discord login redirect
// @Description Returns the Discord OAuth2 authorize URL for the frontend to redirect to
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/auth/login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	util.Success(ctx, gin.H{"url": c.AuthService.AuthorizeURL()})
}

// @Summary OAuth2 callback
// @Description Exchanges the Discord authorization code for a site JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param code query string true "OAuth2 authorization code"
// @Success 200 {object} util.Response
// @Router /api/auth/callback [get]
func (c *AuthController) Callback(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		util.BadRequest(ctx, "missing authorization code")
		return
	}

	result, err := c.AuthService.Login(ctx.Request.Context(), code)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Current user
// @Description Returns the authenticated user's stored profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stored, err := c.AuthService.Me(user.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, stored)
}

type languageRequest struct {
	Language string `json:"language" binding:"required,oneof=en ar"`
}

// @Summary Set UI language
// @Description Persists the user's language preference
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body languageRequest true "Language choice"
// @Success 200 {object} util.Response
// @Router /api/auth/language [put]
func (c *AuthController) SetLanguage(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req languageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.SetLanguage(user.UserID, req.Language); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"language": req.Language})
}
