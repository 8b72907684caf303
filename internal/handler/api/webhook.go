package api

import (
	"log/slog"
	"net/http"

	reqdto "nest/internal/handler/dto/request"
	resdto "nest/internal/handler/dto/response"
	"nest/internal/handler/httperr"
	"nest/internal/infra/metrics"
	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/commands"
	"nest/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Enqueuer interface {
	Enqueue(id uuid.UUID) error
}

type WebhookHandler struct {
	ingest  commands.IngestCommands
	queue   Enqueuer
	metrics *metrics.Pipeline
	maxBody int64
	logger  *slog.Logger
}

func NewWebhookHandler(ingest commands.IngestCommands, queue Enqueuer, m *metrics.Pipeline, cfg config.WebhookConfig, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{ingest: ingest, queue: queue, metrics: m, maxBody: cfg.MaxBodyBytes, logger: logger}
}

// @Summary Receive provider webhooks
// @Description Stores every event of the batch and schedules it for processing. Events are applied asynchronously.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.WebhookBatchRequest true "Webhook batch"
// @Success 202 {object} resdto.WebhookAcceptedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /webhooks/fastspring [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	if h.maxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	}
	var req reqdto.WebhookBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errs.As(err, &tooLarge) {
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Payload too large", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	results := make([]*commands.AcceptResult, 0, len(req.Events))
	var enqueueErr error
	for _, raw := range req.Events {
		res, err := h.ingest.Accept(c.Request.Context(), raw)
		if err != nil {
			h.metrics.Received("error")
			httperr.Abort(c, err)
			return
		}
		h.metrics.Received(res.Status.String())
		results = append(results, res)

		if !res.Enqueue {
			continue
		}
		if err := h.queue.Enqueue(res.DeliveryID); err != nil {
			// stored as pending; a redelivery or the next start picks it up
			h.logger.Warn("delivery not enqueued", "delivery_id", res.DeliveryID, "event_id", res.EventID, "error", err)
			enqueueErr = err
		}
	}

	if enqueueErr != nil {
		httperr.Abort(c, errs.Mark(enqueueErr, worker.ErrQueueFull))
		return
	}

	resp, err := resdto.FromAcceptResults(results)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
