package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"caffenio/internal/domain"
	"caffenio/internal/metrics"
	"caffenio/internal/repository"
	"caffenio/internal/service"
)

const serviceVersion = "1.0.0"

type Server struct {
	engine  *gin.Engine
	orders  *service.OrderService
	catalog *service.CatalogService
	metrics *metrics.ServerMetrics
	// ping probes the backing key-value store for the liveness check;
	// nil means the store is not configured.
	ping func(ctx context.Context) error
}

func NewServer(orders *service.OrderService, catalog *service.CatalogService, apiKey string, logger *zap.Logger, m *metrics.ServerMetrics, ping func(ctx context.Context) error) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), Metrics(m))
	s := &Server{engine: r, orders: orders, catalog: catalog, metrics: m, ping: ping}
	s.registerRoutes(apiKey)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(apiKey string) {
	// liveness, metrics and swagger stay outside the key check
	s.engine.GET("/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1", APIKeyAuth(apiKey))
	{
		orders := v1.Group("/orders")
		orders.POST("", s.submitOrder)
		orders.GET("", s.listOrders)
		orders.GET("/ticket/:ticket", s.getOrderByTicket)
		orders.PATCH("/:id/status", s.updateOrderStatus)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.GET("/:id/availability", s.getAvailability)
		products.GET("/category/:categoryId", s.productsByCategory)
		products.GET("/category/4/subcategory/:subcategoryId", s.productsBySubcategory)
	}
}

// Order handlers

type orderLineReq struct {
	ProductID     int64                 `json:"productId"`
	ProductName   string                `json:"productName"`
	Quantity      int64                 `json:"quantity"`
	UnitPrice     float64               `json:"unitPrice"`
	LineSubtotal  float64               `json:"lineSubtotal"`
	Customization *domain.Customization `json:"customization"`
}

type submitOrderReq struct {
	CustomerID string         `json:"customerId"`
	Subtotal   float64        `json:"subtotal"`
	Tax        float64        `json:"tax"`
	Discount   float64        `json:"discount"`
	Total      float64        `json:"total"`
	Items      []orderLineReq `json:"items"`
}

type submitOrderResp struct {
	Success      bool    `json:"success"`
	TicketNumber string  `json:"ticketNumber"`
	OrderID      int64   `json:"orderId"`
	Total        float64 `json:"total"`
	Message      string  `json:"message"`
}

// @Summary Submit a finalized order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body submitOrderReq true "Checkout payload"
// @Success 200 {object} submitOrderResp
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /orders [post]
func (s *Server) submitOrder(c *gin.Context) {
	var req submitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, domain.OrderLine{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			LineSubtotal:  it.LineSubtotal,
			Customization: it.Customization,
		})
	}
	res, err := s.orders.SubmitOrder(c, service.OrderSubmission{
		CustomerID: req.CustomerID,
		Subtotal:   req.Subtotal,
		Tax:        req.Tax,
		Discount:   req.Discount,
		Total:      req.Total,
		Items:      lines,
	})
	if err != nil {
		status := mapErrorToStatus(err)
		msg := "Error al procesar tu orden"
		if status == http.StatusBadRequest {
			msg = err.Error()
		}
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusOK, submitOrderResp{
		Success:      true,
		TicketNumber: res.TicketNumber,
		OrderID:      res.OrderID,
		Total:        res.Total,
		Message:      "Pasa a caja con tu número de ticket",
	})
}

// @Summary List all orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.ListOrders(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by ticket number
// @Tags orders
// @Produce json
// @Param ticket path string true "Ticket number"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]any
// @Router /orders/ticket/{ticket} [get]
func (s *Server) getOrderByTicket(c *gin.Context) {
	o, err := s.orders.GetByTicket(c, c.Param("ticket"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"success": false, "message": "Orden no encontrada"})
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param input body updateStatusReq true "New status"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /orders/{id}/status [patch]
func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid json"})
		return
	}
	if err := s.orders.UpdateStatus(c, id, domain.OrderStatus(req.Status)); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Orden actualizada a " + req.Status})
}

// Product handlers

// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.catalog.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := s.catalog.GetByID(c, id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Check product availability
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /products/{id}/availability [get]
func (s *Server) getAvailability(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	available, err := s.catalog.Availability(c, id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// @Summary List products by category
// @Tags products
// @Produce json
// @Param categoryId path int true "Category ID (1 Calientes, 2 Fríos, 3 Alimentos)"
// @Success 200 {array} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products/category/{categoryId} [get]
func (s *Server) productsByCategory(c *gin.Context) {
	categoryID, err := parseID(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}
	list, err := s.catalog.ByCategory(c, categoryID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": "invalid category"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary List Dulces products by subcategory
// @Tags products
// @Produce json
// @Param subcategoryId path string true "Subcategory (nieve, reposteria)"
// @Success 200 {array} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products/category/4/subcategory/{subcategoryId} [get]
func (s *Server) productsBySubcategory(c *gin.Context) {
	list, err := s.catalog.BySubcategory(c, c.Param("subcategoryId"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": "invalid subcategory"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Liveness

// @Summary Service liveness with store reachability
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (s *Server) health(c *gin.Context) {
	dbConnected := false
	dbStatus := "Disconnected"
	if s.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.ping(ctx); err != nil {
			dbStatus = "Error: " + err.Error()
		} else {
			dbConnected = true
			dbStatus = "Connected"
		}
	}
	status := "Degraded"
	if dbConnected {
		status = "Healthy"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"service":   "caffenio-api",
		"version":   serviceVersion,
		"database": gin.H{
			"status":    dbStatus,
			"connected": dbConnected,
		},
	})
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch err {
	case service.ErrInvalidInput:
		return http.StatusBadRequest
	case repository.ErrNotFound:
		return http.StatusNotFound
	case repository.ErrTicketsExhausted:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
