package api

import (
	"context"
	"log/slog"
	"net/http"

	reqdto "nest/internal/handler/dto/request"
	resdto "nest/internal/handler/dto/response"
	"nest/internal/handler/httperr"
	"nest/internal/handler/middleware"

	"github.com/gin-gonic/gin"
)

// GreenlightSwitch is the operator switch in front of the webhook endpoint.
type GreenlightSwitch interface {
	Open(ctx context.Context) (bool, error)
	Set(ctx context.Context, open bool) error
}

type GreenlightHandler struct {
	flag     GreenlightSwitch
	enforced bool
	logger   *slog.Logger
}

func NewGreenlightHandler(flag GreenlightSwitch, enforced bool, logger *slog.Logger) *GreenlightHandler {
	return &GreenlightHandler{flag: flag, enforced: enforced, logger: logger}
}

// @Summary Get greenlight
// @Description Whether the webhook endpoint currently accepts deliveries.
// @Tags greenlight
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.GreenlightResponse
// @Failure 401 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/greenlight [get]
func (h *GreenlightHandler) Get(c *gin.Context) {
	open, err := h.flag.Open(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cannot determine greenlight status", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.GreenlightResponse{Open: open, Enforced: h.enforced})
}

// @Summary Set greenlight
// @Description Opens or closes the webhook endpoint. Requires the admin role.
// @Tags greenlight
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GreenlightRequest true "Desired state"
// @Success 200 {object} resdto.GreenlightResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/greenlight [put]
func (h *GreenlightHandler) Put(c *gin.Context) {
	var req reqdto.GreenlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.flag.Set(c.Request.Context(), *req.Open); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cannot update greenlight status", nil)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	h.logger.Info("greenlight changed", "open", *req.Open, "subject", principal.Subject)
	c.JSON(http.StatusOK, resdto.GreenlightResponse{Open: *req.Open, Enforced: h.enforced})
}
