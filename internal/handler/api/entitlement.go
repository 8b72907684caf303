package api

import (
	"net/http"

	reqdto "nest/internal/handler/dto/request"
	resdto "nest/internal/handler/dto/response"
	"nest/internal/handler/httperr"
	"nest/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EntitlementHandler struct {
	q queries.EntitlementQueries
}

func NewEntitlementHandler(q queries.EntitlementQueries) *EntitlementHandler {
	return &EntitlementHandler{q: q}
}

// @Summary User entitlements
// @Description What the user owns, per family and optionally for a set of product aliases. Demo products never count.
// @Tags entitlements
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Param family query string false "Product family to evaluate"
// @Param products query string false "Comma separated product aliases"
// @Success 200 {object} resdto.EntitlementResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/users/{email}/entitlements [get]
func (h *EntitlementHandler) Get(c *gin.Context) {
	var query reqdto.EntitlementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.q.Entitlements(c.Request.Context(), query.ToQuery(c.Param("email")))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	resp, err := resdto.FromEntitlementView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
