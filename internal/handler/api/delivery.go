package api

import (
	"log/slog"
	"net/http"

	reqdto "nest/internal/handler/dto/request"
	resdto "nest/internal/handler/dto/response"
	"nest/internal/handler/httperr"
	"nest/internal/handler/middleware"
	"nest/internal/usecase/commands"
	"nest/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeliveryHandler struct {
	cmds   commands.IngestCommands
	q      queries.DeliveryQueries
	queue  Enqueuer
	logger *slog.Logger
}

func NewDeliveryHandler(cmds commands.IngestCommands, q queries.DeliveryQueries, queue Enqueuer, logger *slog.Logger) *DeliveryHandler {
	return &DeliveryHandler{cmds: cmds, q: q, queue: queue, logger: logger}
}

// @Summary List deliveries
// @Description Deliveries in one status, newest first, with keyset pagination. Defaults to unrecognized.
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param status query string false "Delivery status"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.DeliveryListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	var query reqdto.DeliveryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	status, cursor, limit, err := query.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status", nil)
		return
	}

	items, next, err := h.q.ListByStatus(c.Request.Context(), status, cursor, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var nextCursor string
	if next != nil {
		nextCursor = next.After
	}
	resp, err := resdto.FromDeliveries(items, nextCursor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get delivery
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Delivery ID"
// @Success 200 {object} resdto.DeliveryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/deliveries/{id} [get]
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	d, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromDelivery(d)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Replay delivery
// @Description Returns an unrecognized, rejected or failed delivery to pending and schedules it again.
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Delivery ID"
// @Success 202 {object} resdto.DeliveryResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/deliveries/{id}/replay [post]
func (h *DeliveryHandler) Replay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	d, err := h.cmds.Replay(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	principal, _ := middleware.GetPrincipal(c)
	h.logger.Info("delivery replay requested", "delivery_id", id, "subject", principal.Subject)

	if err := h.queue.Enqueue(d.ID()); err != nil {
		httperr.Abort(c, err)
		return
	}

	resp, err := resdto.FromDelivery(d)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
