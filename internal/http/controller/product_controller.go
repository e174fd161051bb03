package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iyhunko/products-api/internal/http/route"
	"github.com/iyhunko/products-api/internal/model"
	"github.com/iyhunko/products-api/internal/service"
	"github.com/iyhunko/products-api/internal/validation"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
	linker         route.Linker
}

// NewProductController creates a new ProductController with the given product service.
// Links in responses are resolved by linker.
func NewProductController(productService *service.ProductService, linker route.Linker) *ProductController {
	return &ProductController{
		productService: productService,
		linker:         linker,
	}
}

// ProductRequest represents the request body for creating or updating a product.
// Validation happens in the service, not at binding time.
type ProductRequest struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

func (r ProductRequest) toInput() model.ProductInput {
	return model.ProductInput{
		Name:  r.Name,
		Value: r.Value,
	}
}

// ProductResponse represents a product together with its navigation links.
type ProductResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Value     float64      `json:"value"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	Links     []route.Link `json:"links"`
}

// ListProductsResponse represents the product collection and its self link.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Links    []route.Link      `json:"links"`
}

// ValidationErrorResponse is returned when a payload is rejected.
type ValidationErrorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields"`
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	createdProduct, err := pc.productService.CreateProduct(c.Request.Context(), req.toInput())
	if err != nil {
		pc.writeError(c, err)
		return
	}

	resp, err := pc.toProductResponse(createdProduct)
	if err != nil {
		pc.writeError(c, err)
		return
	}

	c.Header("Location", resp.Links[0].Href)
	c.JSON(http.StatusCreated, resp)
}

// ListProducts handles the HTTP GET request for listing every product.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.productService.ListProducts(c.Request.Context())
	if err != nil {
		pc.writeError(c, err)
		return
	}

	productResponses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		resp, err := pc.toProductResponse(product)
		if err != nil {
			pc.writeError(c, err)
			return
		}
		productResponses = append(productResponses, resp)
	}

	links, err := pc.linker.CollectionLinks()
	if err != nil {
		pc.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListProductsResponse{
		Products: productResponses,
		Links:    links,
	})
}

// GetProduct handles the HTTP GET request for a single product.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		pc.writeError(c, err)
		return
	}

	pc.writeProduct(c, http.StatusOK, product)
}

// UpdateProduct handles the HTTP PUT request replacing a product's fields.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updatedProduct, err := pc.productService.UpdateProduct(c.Request.Context(), id, req.toInput())
	if err != nil {
		pc.writeError(c, err)
		return
	}

	pc.writeProduct(c, http.StatusOK, updatedProduct)
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		pc.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(route.ParamID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return uuid.Nil, false
	}
	return id, true
}

func (pc *ProductController) writeProduct(c *gin.Context, status int, product *model.Product) {
	resp, err := pc.toProductResponse(product)
	if err != nil {
		pc.writeError(c, err)
		return
	}
	c.JSON(status, resp)
}

func (pc *ProductController) writeError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validationErr.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		_ = c.Error(err)
		slog.Error("product request failed", slog.Any("err", err), slog.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (pc *ProductController) toProductResponse(product *model.Product) (ProductResponse, error) {
	links, err := pc.linker.ProductLinks(product.ID.String())
	if err != nil {
		return ProductResponse{}, err
	}
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Value:     product.Value,
		CreatedAt: product.CreatedAt.Format(time.RFC3339),
		UpdatedAt: product.UpdatedAt.Format(time.RFC3339),
		Links:     links,
	}, nil
}
