package controller

import (
	"fmt"
	"net/http"
	"path/filepath"

	"horizon_backend/internal/model"
	"horizon_backend/internal/service"
	"horizon_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	QuizService  *service.QuizService
	StoreService *service.StoreService
	Moderation   *service.ModerationService
	Storage      *service.StorageService
}

func NewAdminController(quizService *service.QuizService, storeService *service.StoreService, moderation *service.ModerationService, storage *service.StorageService) *AdminController {
	return &AdminController{
		QuizService:  quizService,
		StoreService: storeService,
		Moderation:   moderation,
		Storage:      storage,
	}
}

// @Summary List quizzes with questions
// @Description Admin view including question keys and time limits
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes [get]
func (c *AdminController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary Create a quiz
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuizInput true "Quiz definition"
// @Success 201 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *AdminController) CreateQuiz(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	var in service.QuizInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(admin, &in)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary Update a quiz
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Param body body service.QuizInput true "Quiz definition"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [put]
func (c *AdminController) UpdateQuiz(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	var in service.QuizInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(admin, ctx.Param("id"), &in)
	if err != nil {
		if err == util.ErrQuizNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary Delete a quiz
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *AdminController) DeleteQuiz(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuizService.Delete(admin, ctx.Param("id")); err != nil {
		if err == util.ErrQuizNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary List all products
// @Description Admin catalog view including disabled products
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/products [get]
func (c *AdminController) ListProducts(ctx *gin.Context) {
	products, err := c.StoreService.ListAllProducts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, products)
}

// @Summary Create a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProductInput true "Product definition"
// @Success 201 {object} util.Response
// @Router /api/admin/products [post]
func (c *AdminController) CreateProduct(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	var in service.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.StoreService.CreateProduct(admin, &in)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, p)
}

// @Summary Update a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param body body service.ProductInput true "Product definition"
// @Success 200 {object} util.Response
// @Router /api/admin/products/{id} [put]
func (c *AdminController) UpdateProduct(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	var in service.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.StoreService.UpdateProduct(admin, ctx.Param("id"), &in)
	if err != nil {
		if err == util.ErrProductNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary Delete a product
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} util.Response
// @Router /api/admin/products/{id} [delete]
func (c *AdminController) DeleteProduct(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.StoreService.DeleteProduct(admin, ctx.Param("id")); err != nil {
		if err == util.ErrProductNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Upload a product image
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} util.Response
// @Router /api/admin/products/image [post]
func (c *AdminController) UploadProductImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "missing image file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("products/%s%s", model.GenerateUUID(), filepath.Ext(file.Filename))
	url, err := c.Storage.Upload(ctx.Request.Context(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// @Summary List submissions
// @Description All applications, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/submissions [get]
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	subs, err := c.Moderation.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// @Summary Get one submission
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} util.Response
// @Router /api/admin/submissions/{id} [get]
func (c *AdminController) GetSubmission(ctx *gin.Context) {
	sub, err := c.Moderation.FindByID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, sub)
}

type statusRequest struct {
	Status model.SubmissionStatus `json:"status" binding:"required,oneof=taken accepted refused"`
}

// @Summary Change a submission's status
// @Description taken claims the application; accepted/refused are only allowed for the claiming admin
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param body body statusRequest true "Target status"
// @Success 200 {object} util.Response
// @Router /api/admin/submissions/{id}/status [put]
func (c *AdminController) SetSubmissionStatus(ctx *gin.Context) {
	admin := util.GetUserFromContext(ctx)
	if admin == nil {
		util.Unauthorized(ctx)
		return
	}

	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Moderation.SetStatus(admin, ctx.Param("id"), req.Status)
	if err != nil {
		switch err {
		case util.ErrSubmissionNotFound:
			util.NotFound(ctx)
		case util.ErrInvalidTransition:
			util.Conflict(ctx, err.Error())
		case util.ErrNotClaimOwner:
			util.Error(ctx, http.StatusForbidden, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sub)
}

// @Summary Audit log
// @Description Every admin mutation, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/audit-log [get]
func (c *AdminController) AuditLog(ctx *gin.Context) {
	entries, err := c.Moderation.AuditLog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
