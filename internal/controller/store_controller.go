package controller

import (
	"horizon_backend/internal/model"
	"horizon_backend/internal/service"
	"horizon_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StoreController struct {
	StoreService *service.StoreService
	Translator   *service.TranslationService
}

func NewStoreController(storeService *service.StoreService, translator *service.TranslationService) *StoreController {
	return &StoreController{StoreService: storeService, Translator: translator}
}

type productView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

func (c *StoreController) toView(p *model.Product, lang string) productView {
	return productView{
		ID:          p.ID,
		Name:        c.Translator.T(lang, p.NameKey),
		Description: c.Translator.T(lang, p.DescriptionKey),
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

// @Summary List store products
// @Description Lists enabled products, translated for the requested language
// @Tags store
// @Produce json
// @Param lang query string false "Language" default(en)
// @Success 200 {object} util.Response
// @Router /api/store/products [get]
func (c *StoreController) ListProducts(ctx *gin.Context) {
	lang := ctx.DefaultQuery("lang", service.DefaultLanguage)

	products, err := c.StoreService.ListProducts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	views := make([]productView, len(products))
	for i := range products {
		views[i] = c.toView(&products[i], lang)
	}
	util.Success(ctx, views)
}

// @Summary Get the cart
// @Description Returns the user's cart with derived totals
// @Tags store
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/store/cart [get]
func (c *StoreController) GetCart(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.StoreService.Cart(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// @Summary Add a product to the cart
// @Tags store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body addToCartRequest true "Product"
// @Success 200 {object} util.Response
// @Router /api/store/cart/items [post]
func (c *StoreController) AddToCart(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req addToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.StoreService.AddToCart(ctx.Request.Context(), user.UserID, req.ProductID)
	if err != nil {
		if err == util.ErrProductNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// @Summary Set a cart line's quantity
// @Description Quantity zero or below removes the line
// @Tags store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param body body quantityRequest true "Quantity"
// @Success 200 {object} util.Response
// @Router /api/store/cart/items/{productId} [put]
func (c *StoreController) SetQuantity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req quantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.StoreService.SetQuantity(ctx.Request.Context(), user.UserID, ctx.Param("productId"), *req.Quantity)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Remove a cart line
// @Tags store
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} util.Response
// @Router /api/store/cart/items/{productId} [delete]
func (c *StoreController) RemoveFromCart(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.StoreService.RemoveFromCart(ctx.Request.Context(), user.UserID, ctx.Param("productId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Clear the cart
// @Tags store
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/store/cart [delete]
func (c *StoreController) ClearCart(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.StoreService.ClearCart(ctx.Request.Context(), user.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
