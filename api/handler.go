package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stock_ledger/internal/ledger"
)

// ledgerHandler holds the ledger service and implements HTTP handlers for products, sales and reports.
type ledgerHandler struct {
	ledger *ledger.Service
	logger *zap.Logger
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(ledgerService *ledger.Service, logger *zap.Logger) *ledgerHandler {
	return &ledgerHandler{
		ledger: ledgerService,
		logger: logger,
	}
}

type productRequest struct {
	Name     string   `json:"name"`
	Quantity *int     `json:"quantity" binding:"required"`
	Price    *float64 `json:"price" binding:"required"`
}

type saleRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// ProductsMetadata summarises a product listing.
type ProductsMetadata struct {
	Quantity  int `json:"quantity"`
	Low       int `json:"low"`
	Threshold int `json:"threshold"`
}

// handleCreateProduct handles the POST /products endpoint.
func (h *ledgerHandler) handleCreateProduct(ctx *gin.Context) {
	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	id, err := h.ledger.AddProduct(req.Name, *req.Quantity, *req.Price)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	product, err := h.ledger.GetProduct(id)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

// handleListProducts handles the GET /products endpoint.
func (h *ledgerHandler) handleListProducts(ctx *gin.Context) {
	products, err := h.ledger.ListProducts()
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	metadata := ProductsMetadata{Quantity: len(products), Threshold: h.ledger.LowStockThreshold()}
	for _, p := range products {
		if p.Low {
			metadata.Low++
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"results": products, "metadata": metadata})
}

func (h *ledgerHandler) handleGetProduct(ctx *gin.Context) {
	id, ok := h.productID(ctx)
	if !ok {
		return
	}

	product, err := h.ledger.GetProduct(id)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// handleUpdateProduct handles the PUT /products/:id endpoint. Every field is replaced.
func (h *ledgerHandler) handleUpdateProduct(ctx *gin.Context) {
	id, ok := h.productID(ctx)
	if !ok {
		return
	}

	var req productRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err), zap.Int64("product_id", id))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.ledger.UpdateProduct(id, req.Name, *req.Quantity, *req.Price); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	product, err := h.ledger.GetProduct(id)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *ledgerHandler) handleDeleteProduct(ctx *gin.Context) {
	id, ok := h.productID(ctx)
	if !ok {
		return
	}

	if err := h.ledger.DeleteProduct(id); err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleCreateSale handles the POST /sales endpoint.
func (h *ledgerHandler) handleCreateSale(ctx *gin.Context) {
	var req saleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.ledger.RecordSale(req.ProductID, req.Quantity)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, sale)
}

func (h *ledgerHandler) handleListSales(ctx *gin.Context) {
	sales, err := h.ledger.ListSales()
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": sales})
}

// handleLowStock handles GET /reports/low-stock?threshold=N.
func (h *ledgerHandler) handleLowStock(ctx *gin.Context) {
	threshold := h.ledger.LowStockThreshold()
	if raw := ctx.Query("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a positive integer"})
			return
		}
		threshold = n
	}

	products, err := h.ledger.LowStock(threshold)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": products, "threshold": threshold})
}

// handleSalesSummary handles GET /reports/sales-summary?pricing=current|sale.
func (h *ledgerHandler) handleSalesSummary(ctx *gin.Context) {
	pricing, err := ledger.ParsePricing(ctx.Query("pricing"))
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	rows, err := h.ledger.SalesSummary(pricing)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"results": rows, "pricing": pricing})
}

func (h *ledgerHandler) productID(ctx *gin.Context) (int64, bool) {
	raw := ctx.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("invalid product id", zap.String("id", raw))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}
