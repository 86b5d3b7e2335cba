//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"storent/internal/handler/api"
	resdto "storent/internal/handler/dto/response"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/queries"
	"storent/tests/common/builder"
	"storent/tests/common/httptest"
	commandsmock "storent/tests/mock/commands"
	queriesmock "storent/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	handler      *api.PaymentHandler
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/payments", s.handler.Init)
	s.router.GET("/payments", s.handler.List)
	s.router.GET("/payments/:id", s.handler.Get)
	s.router.POST("/payments/callback", s.handler.Callback)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// ================================================================================
// TestInit
// ================================================================================

func (s *PaymentHandlerTestSuite) TestInit() {
	url := "/payments"
	b := builder.NewPaymentBuilder()

	s.Run("success: returns 201 with the payment URL", func() {
		s.mockCommands.EXPECT().InitPayment(gomock.Any(), gomock.Any()).
			Return(&commands.InitPaymentResult{
				PaymentID:  b.ID,
				PaymentURL: "https://pay.example.com/1",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildInitRequestDTO(), "")

		var resp resdto.InitPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(b.ID, resp.PaymentID)
		s.Equal("https://pay.example.com/1", resp.PaymentURL)
	})

	s.Run("validation: amount is required and positive", func() {
		for _, body := range []map[string]any{
			{},
			{"amount_cents": 0},
			{"amount_cents": -100},
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
			s.Equal(http.StatusBadRequest, rec.Code)
		}
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{"unknown rental", commands.ErrRentalNotFound, http.StatusNotFound},
		{"invalid combination", commands.ErrDomainValidation, http.StatusUnprocessableEntity},
		{"gateway down", commands.ErrGatewayUnavailable, http.StatusBadGateway},
	}
	for _, tc := range errorCases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().InitPayment(gomock.Any(), gomock.Any()).
				Return(nil, tc.err).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildInitRequestDTO(), "")
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}

// ================================================================================
// TestGet
// ================================================================================

func (s *PaymentHandlerTestSuite) TestGet() {
	b := builder.NewPaymentBuilder()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID).
			Return(b.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/"+b.ID.String(), nil, "")

		var resp resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(b.AmountCents, resp.AmountCents)
	})

	s.Run("unknown payment", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrPaymentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Payment not found")
	})

	s.Run("malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/oops", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *PaymentHandlerTestSuite) TestList() {
	s.Run("success with filters", func() {
		view := builder.NewPaymentBuilder().BuildView()
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.PaymentFilter, _ queries.Page) ([]*queries.PaymentView, int64, error) {
				s.Require().NotNil(filter.Status)
				s.Equal("paid", *filter.Status)
				return []*queries.PaymentView{view}, 1, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments?status=paid", nil, "")

		var resp resdto.PaymentListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int64(1), resp.Total)
	})

	s.Run("malformed client filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments?client_id=nope", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestCallback
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCallback() {
	url := "/payments/callback"
	paymentID := uuid.New()

	callbackBody := func() map[string]any {
		return map[string]any{
			"TerminalKey": "T1",
			"OrderId":     paymentID.String(),
			"Status":      "CONFIRMED",
			"Success":     true,
			"PaymentId":   12345,
			"Amount":      150000,
			"Token":       "deadbeef",
		}
	}

	s.Run("success: acknowledges with the literal OK body", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, notif commands.GatewayNotification) error {
				s.Equal(paymentID, notif.PaymentID)
				s.Equal("CONFIRMED", notif.Status)
				s.True(notif.Success)
				s.Equal("true", notif.Params["Success"])
				s.Equal("12345", notif.Params["PaymentId"])
				s.Equal("150000", notif.Params["Amount"])
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, callbackBody(), "")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("OK", rec.Body.String())
	})

	s.Run("signature mismatch", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			Return(commands.ErrSignatureMismatch).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, callbackBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Signature mismatch")
	})

	s.Run("unknown payment", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			Return(commands.ErrPaymentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, callbackBody(), "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed order id", func() {
		body := callbackBody()
		body["OrderId"] = "not-a-uuid"

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
