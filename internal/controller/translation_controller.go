package controller

import (
	"horizon_backend/internal/model"
	"horizon_backend/internal/service"
	"horizon_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TranslationController struct {
	Translations *service.TranslationService
}

func NewTranslationController(translations *service.TranslationService) *TranslationController {
	return &TranslationController{Translations: translations}
}

// @Summary Translation table
// @Description Full key to text mapping for one language
// @Tags translations
// @Produce json
// @Param lang path string true "Language code"
// @Success 200 {object} util.Response
// @Router /api/translations/{lang} [get]
func (c *TranslationController) Table(ctx *gin.Context) {
	table, err := c.Translations.Table(ctx.Param("lang"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, table)
}

type translationRequest struct {
	Key  string `json:"key" binding:"required"`
	Lang string `json:"lang" binding:"required,oneof=en ar"`
	Text string `json:"text" binding:"required"`
}

// @Summary Upsert a translation
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body translationRequest true "Translation entry"
// @Success 200 {object} util.Response
// @Router /api/admin/translations [put]
func (c *TranslationController) Upsert(ctx *gin.Context) {
	var req translationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry := &model.Translation{Key: req.Key, Lang: req.Lang, Text: req.Text}
	if err := c.Translations.Upsert(entry); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entry)
}
