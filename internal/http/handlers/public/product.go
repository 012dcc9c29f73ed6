package public

import (
	"strconv"
	"strings"

	"github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（支持搜索、分类、品牌、推荐过滤）
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := shared.ReadPagination(c)
	featured, err := shared.ParseOptionalBool(c.Query("featured"))
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

// GetProduct 商品详情，参数为数字时按 ID 查询，否则按 slug 查询
func (h *Handler) GetProduct(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("id"))
	var (
		product *models.Product
		err     error
	)
	if id, parseErr := strconv.ParseUint(raw, 10, 64); parseErr == nil && id > 0 {
		product, err = h.ProductService.GetByID(uint(id))
	} else {
		product, err = h.ProductService.GetBySlug(raw)
	}
	if err != nil {
		shared.RespondMappedError(c, err, shared.ProductErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.ProductService.Categories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}
