package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

// Describer writes marketing copy for a product.
type Describer interface {
	Describe(ctx context.Context, name, category string) string
}

type ProductController struct {
	Terminal     Terminal
	Descriptions Describer
}

func NewProductController(t Terminal, d Describer) *ProductController {
	return &ProductController{Terminal: t, Descriptions: d}
}

// GetAllProducts lists the catalog, optionally filtered by ?category= and
// a case-insensitive ?search= on the name.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	products := engine.FilterProducts(pc.Terminal.Snapshot().Products, c.Query("category"), c.Query("search"))
	utils.RespondJSON(c, http.StatusOK, "Products retrieved", products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	p, ok := pc.Terminal.Snapshot().FindProduct(c.Param("product_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errProductNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product retrieved", p)
}

func (pc *ProductController) GetCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Categories", engine.Categories)
}

// GetTemplate returns the defaults for the new product form.
func (pc *ProductController) GetTemplate(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Product template", engine.NewProductTemplate())
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var p models.Product
	if !bindJSON(c, &p) {
		return
	}
	snap, ok := dispatch(c, pc.Terminal, engine.CreateProduct{Product: p}, "duplicate id or negative price, stock or prep time")
	if !ok {
		return
	}
	created := snap.Products[len(snap.Products)-1]
	utils.InfoLogger.Printf("Product created: %s (%s)", created.ID, created.Name)
	utils.RespondJSON(c, http.StatusCreated, "Product created", created)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var p models.Product
	if !bindJSON(c, &p) {
		return
	}
	p.ID = c.Param("product_id")
	if _, found := pc.Terminal.Snapshot().FindProduct(p.ID); !found {
		utils.RespondError(c, http.StatusNotFound, errProductNotFound)
		return
	}
	if _, ok := dispatch(c, pc.Terminal, engine.UpdateProduct{Product: p}, "nothing changed or negative price, stock or prep time"); !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", p)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("product_id")
	if _, ok := dispatch(c, pc.Terminal, engine.DeleteProduct{ProductID: id}, errProductNotFound.Error()); !ok {
		return
	}
	utils.InfoLogger.Printf("Product deleted: %s", id)
	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}

// GenerateDescription asks the description generator for copy. The reply
// is always 200; failures come back as the fixed failure text.
func (pc *ProductController) GenerateDescription(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
	}
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()
	text := pc.Descriptions.Describe(ctx, req.Name, req.Category)
	utils.RespondJSON(c, http.StatusOK, "Description generated", gin.H{"description": text})
}
