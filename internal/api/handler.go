// Package api exposes the archived records over HTTP.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/switch527/coin-base/internal/usecase/query"
	"github.com/switch527/coin-base/pkg/errors"
	"github.com/switch527/coin-base/pkg/logger"
)

// Handler serves the query endpoints.
type Handler struct {
	query  *query.Service
	logger logger.Interface
}

// NewHandler creates an API handler over the query service.
func NewHandler(query *query.Service, logger logger.Interface) *Handler {
	return &Handler{
		query:  query,
		logger: logger,
	}
}

// Register attaches the routes to a gin router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.health)

	v1group := router.Group("/v1")
	v1group.GET("/:kind", h.getRange)
	v1group.GET("/:kind/latest", h.getLatest)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getRange serves GET /v1/:kind?symbols=btc,eth&since=1h&to=1700000000.
func (h *Handler) getRange(c *gin.Context) {
	symbols := normalizeSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		h.abort(c, errors.NewErrorDetails(
			"at least one symbol is required",
			string(errors.GeneralBadRequestError),
			"symbols",
		))
		return
	}

	now := time.Now()
	since, err := parseTimeParam(c.Query("since"), now)
	if err != nil {
		h.abort(c, err)
		return
	}
	until, err := parseTimeParam(c.Query("to"), now)
	if err != nil {
		h.abort(c, err)
		return
	}

	result, err := h.query.Range(c.Request.Context(), c.Param("kind"), symbols, since, until)
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// getLatest serves GET /v1/:kind/latest?symbol=btc.
func (h *Handler) getLatest(c *gin.Context) {
	symbols := normalizeSymbols(c.Query("symbol"))
	if len(symbols) != 1 {
		h.abort(c, errors.NewErrorDetails(
			"exactly one symbol is required",
			string(errors.GeneralBadRequestError),
			"symbol",
		))
		return
	}

	fields, err := h.query.Latest(c.Request.Context(), c.Param("kind"), symbols[0])
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": fields})
}

// normalizeSymbols splits a comma-separated list, upper-cases each entry and
// appends the USD suffix when missing, so "btc,ETHUSD" becomes
// ["BTCUSD", "ETHUSD"].
func normalizeSymbols(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.ToUpper(strings.TrimSpace(p))
		if s == "" {
			continue
		}
		if !strings.HasSuffix(s, "USD") {
			s += "USD"
		}
		symbols = append(symbols, s)
	}
	return symbols
}

// abort maps domain error codes onto HTTP statuses and renders the body the
// same shape regardless of status.
func (h *Handler) abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.ErrorCodeEquals(err, string(errors.InvalidQueryKindError)),
		errors.ErrorCodeEquals(err, string(errors.InvalidQueryTimeError)),
		errors.ErrorCodeEquals(err, string(errors.GeneralBadRequestError)):
		status = http.StatusBadRequest
	case errors.ErrorCodeEquals(err, string(errors.GeneralNotFoundError)):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
