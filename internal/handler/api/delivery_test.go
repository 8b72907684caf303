//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"nest/internal/domain/delivery"
	"nest/internal/domain/auth"
	"nest/internal/handler/api"
	"nest/internal/handler/middleware"
	resdto "nest/internal/handler/dto/response"
	"nest/internal/infra"
	"nest/internal/pkg/errs"
	"nest/internal/usecase/queries"
	"nest/internal/worker"
	"nest/tests/common/builder"
	"nest/tests/common/httptest"
	commandsmock "nest/tests/mock/commands"
	apimock "nest/tests/mock/handler"
	queriesmock "nest/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DeliveryHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockIngestCommands
	mockQueries  *queriesmock.MockDeliveryQueries
	mockQueue    *apimock.MockEnqueuer
}

func (s *DeliveryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockIngestCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDeliveryQueries(s.mockCtrl)
	s.mockQueue = apimock.NewMockEnqueuer(s.mockCtrl)
	h := api.NewDeliveryHandler(s.mockCommands, s.mockQueries, s.mockQueue, discardLogger())

	authMw := newAuthMiddleware()
	group := s.router.Group("/api/deliveries", authMw.RequireAuth())
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("/:id/replay", authMw.RequireRoleAtLeast(auth.RoleOperator), h.Replay)
}

func (s *DeliveryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDeliveryHandlerSuite(t *testing.T) {
	suite.Run(t, new(DeliveryHandlerTestSuite))
}

// ================================================================================
// TestList
// ================================================================================

func (s *DeliveryHandlerTestSuite) TestList() {
	unrecognized := builder.NewDeliveryBuilder().
		WithStatus(delivery.StatusUnrecognized, "unknown event type").
		With(func(b *builder.DeliveryBuilder) { b.Payload = []byte(`not json`) }).
		BuildDomain()

	s.Run("success: defaults to unrecognized deliveries", func() {
		next := &queries.Cursor{After: "next-page"}
		s.mockQueries.EXPECT().ListByStatus(gomock.Any(), delivery.StatusUnrecognized, (*queries.Cursor)(nil), queries.DefaultListLimit).
			Return([]*delivery.Delivery{unrecognized}, next, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries", nil, viewerToken)

		var body resdto.DeliveryListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Deliveries, 1)
		got := body.Deliveries[0]
		s.Equal(unrecognized.ID(), got.ID)
		s.Equal("unrecognized", got.Status)
		s.Equal("unknown event type", got.Reason)
		s.Equal("not json", got.Payload)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("success: passes status, cursor and limit through", func() {
		s.mockQueries.EXPECT().ListByStatus(gomock.Any(), delivery.StatusFailed, &queries.Cursor{After: "abc"}, queries.MaxListLimit).
			Return(nil, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries?status=failed&after=abc&limit=5000", nil, viewerToken)

		var body resdto.DeliveryListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Deliveries)
		s.Empty(body.NextCursor)
	})

	s.Run("error: 400 Bad Request on bad parameters", func() {
		for _, url := range []string{"/api/deliveries?status=lost", "/api/deliveries?limit=-1", "/api/deliveries?limit=abc"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, viewerToken)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: 400 Bad Request on a tampered cursor", func() {
		s.mockQueries.EXPECT().ListByStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Wrap(queries.ErrInvalidCursor, "decode"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries?after=garbage", nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *DeliveryHandlerTestSuite) TestGet() {
	d := builder.NewDeliveryBuilder().BuildDomain()

	s.Run("success: returns the delivery", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), d.ID()).Return(d, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries/"+d.ID().String(), nil, viewerToken)

		var body resdto.DeliveryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(d.EventID(), body.EventID)
		s.Equal("pending", body.Status)
		s.Nil(body.ProcessedAt)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries/not-a-uuid", nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for unknown delivery", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, queries.ErrDeliveryNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries/"+uuid.NewString(), nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Delivery not found")
	})
}

// ================================================================================
// TestReplay
// ================================================================================

func (s *DeliveryHandlerTestSuite) TestReplay() {
	d := builder.NewDeliveryBuilder().WithStatus(delivery.StatusPending, "replay requested").BuildDomain()
	url := "/api/deliveries/" + d.ID().String() + "/replay"

	s.Run("success: resets and re-enqueues the delivery", func() {
		gomock.InOrder(
			s.mockCommands.EXPECT().Replay(gomock.Any(), d.ID()).Return(d, nil),
			s.mockQueue.EXPECT().Enqueue(d.ID()).Return(nil),
		)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, operatorToken)

		var body resdto.DeliveryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &body)
		s.Equal(d.ID(), body.ID)
		s.Equal("pending", body.Status)
	})

	s.Run("error: 403 Forbidden for viewers", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, viewerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: maps command errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "already processed",
				commandsError:  errs.Wrapf(delivery.ErrNotReplayable, "delivery is processed"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Delivery cannot be replayed",
			},
			{
				name:           "unknown delivery",
				commandsError:  infra.WrapRepoErr("get delivery", pgx.ErrNoRows),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Replay(gomock.Any(), d.ID()).Return(nil, tc.commandsError)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, operatorToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 503 when the queue is full", func() {
		s.mockCommands.EXPECT().Replay(gomock.Any(), d.ID()).Return(d, nil)
		s.mockQueue.EXPECT().Enqueue(d.ID()).Return(errs.Wrap(worker.ErrQueueFull, "replay"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, operatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Queue is full")
	})
}
