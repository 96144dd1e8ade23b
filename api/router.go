package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stock_ledger/internal/auth"
	"stock_ledger/internal/ledger"
)

// InitRoutes registers the gate and ledger endpoints on the given Gin engine.
// Ledger endpoints require HTTP Basic credentials accepted by the gate.
func InitRoutes(e *gin.Engine, ledgerService *ledger.Service, gate *auth.Gate, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ledgerHandler := NewLedgerHandler(ledgerService, logger)
	authHandler := &authHandler{gate: gate, logger: logger}

	e.Use(requestLogger(logger))

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	users := e.Group("/users")
	users.POST("/register", authHandler.handleRegister)
	users.POST("/login", authHandler.handleLogin)

	protected := e.Group("/", basicAuth(gate, logger))

	protected.GET("/products", ledgerHandler.handleListProducts)
	protected.POST("/products", ledgerHandler.handleCreateProduct)
	protected.GET("/products/:id", ledgerHandler.handleGetProduct)
	protected.PUT("/products/:id", ledgerHandler.handleUpdateProduct)
	protected.DELETE("/products/:id", ledgerHandler.handleDeleteProduct)

	protected.POST("/sales", ledgerHandler.handleCreateSale)
	protected.GET("/sales", ledgerHandler.handleListSales)

	protected.GET("/reports/low-stock", ledgerHandler.handleLowStock)
	protected.GET("/reports/sales-summary", ledgerHandler.handleSalesSummary)
}
