package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-sales-service/internal/sales"
	"github.com/fekuna/omnipos-sales-service/internal/sales/dto"
	"github.com/fekuna/omnipos-sales-service/pkg/logger"
	"github.com/fekuna/omnipos-sales-service/pkg/metrics"
	"github.com/fekuna/omnipos-sales-service/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	apiLimitMessage    = "Too many requests from this IP, please try again later."
	searchLimitMessage = "Too many search requests, please slow down."
)

type HTTPHandler struct {
	uc     sales.UseCase
	logger logger.ZapLogger
}

func NewHTTPHandler(uc sales.UseCase, log logger.ZapLogger) *HTTPHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &HTTPHandler{
		uc:     uc,
		logger: log,
	}
}

// Limiters holds the per-client request budgets of the HTTP API.
type Limiters struct {
	API    *middleware.RateLimiter
	Search *middleware.RateLimiter
}

// RouterOptions configures the HTTP transport. A nil Metrics disables
// recording and the /metrics route.
type RouterOptions struct {
	Limits  Limiters
	CORS    middleware.CORSConfig
	Metrics *metrics.Metrics
}

// NewRouter builds the gin engine serving the sales API.
func NewRouter(h *HTTPHandler, opts RouterOptions, log logger.ZapLogger) *gin.Engine {
	if log == nil {
		log = logger.NewNop()
	}
	limits, m := opts.Limits, opts.Metrics

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		m.GinMiddleware(),
		gin.CustomRecovery(h.recover),
		middleware.CORS(opts.CORS),
	)

	api := r.Group("/api")
	api.GET("/sales", middleware.RateLimit(limits.Search, searchLimitMessage), h.GetSales)
	api.GET("/sales/summary", middleware.RateLimit(limits.Search, searchLimitMessage), h.GetSalesSummary)
	api.GET("/filters", middleware.RateLimit(limits.API, apiLimitMessage), h.GetFilters)

	r.GET("/health", h.Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})
	return r
}

func (h *HTTPHandler) GetSales(c *gin.Context) {
	q := dto.ParseSalesQuery(c.Request.URL.Query())

	page, err := h.uc.GetSalesPage(c.Request.Context(), &q)
	if err != nil {
		h.fail(c, "Error fetching sales data", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}

func (h *HTTPHandler) GetSalesSummary(c *gin.Context) {
	q := dto.ParseSalesQuery(c.Request.URL.Query())

	summary, err := h.uc.GetSalesSummary(c.Request.Context(), &q)
	if err != nil {
		h.fail(c, "Error fetching sales summary", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

func (h *HTTPHandler) GetFilters(c *gin.Context) {
	opts, err := h.uc.GetFilterOptions(c.Request.Context())
	if err != nil {
		h.fail(c, "Error fetching filter options", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"filters": opts,
	})
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
}

func (h *HTTPHandler) fail(c *gin.Context, message string, err error) {
	h.logger.Error(message, zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

func (h *HTTPHandler) recover(c *gin.Context, rec interface{}) {
	h.logger.Error("panic while serving request", zap.Any("panic", rec))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
