package admin

import (
	"strings"

	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name          string        `json:"name" binding:"required"`
	Description   string        `json:"description"`
	Price         *models.Money `json:"price" binding:"required"`
	ImageURL      string        `json:"image_url"`
	Category      string        `json:"category"`
	Brand         string        `json:"brand"`
	Sizes         []string      `json:"sizes"`
	Colors        []string      `json:"colors"`
	StockQuantity int           `json:"stock_quantity"`
	Featured      bool          `json:"featured"`
}

// UpdateProductRequest 局部更新商品请求
type UpdateProductRequest struct {
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Price         *models.Money `json:"price"`
	ImageURL      *string       `json:"image_url"`
	Category      *string       `json:"category"`
	Brand         *string       `json:"brand"`
	Sizes         *[]string     `json:"sizes"`
	Colors        *[]string     `json:"colors"`
	StockQuantity *int          `json:"stock_quantity"`
	Featured      *bool         `json:"featured"`
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	featured, err := handlershared.ParseOptionalBool(c.Query("featured"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Brand:    strings.TrimSpace(c.Query("brand")),
		Search:   strings.TrimSpace(c.Query("search")),
		Featured: featured,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.Create(service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price.Decimal,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Brand:         req.Brand,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		StockQuantity: req.StockQuantity,
		Featured:      req.Featured,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 局部更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	patch := service.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		Brand:         req.Brand,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		StockQuantity: req.StockQuantity,
		Featured:      req.Featured,
	}
	if req.Price != nil {
		price := req.Price.Decimal
		patch.Price = &price
	}
	product, err := h.ProductService.Update(id, patch)
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		handlershared.RespondMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
