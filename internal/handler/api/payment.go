package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	reqdto "storent/internal/handler/dto/request"
	resdto "storent/internal/handler/dto/response"
	"storent/internal/handler/httperr"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Init payment
// @Description Register a payment with the gateway and return the payment URL
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InitPaymentRequest true "Init payment request"
// @Success 201 {object} resdto.InitPaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments [post]
func (h *PaymentHandler) Init(c *gin.Context) {
	var req reqdto.InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.InitPayment(c.Request.Context(), commands.InitPaymentRequest{
		RentalID:    req.RentalID,
		ClientID:    req.ClientID,
		CellID:      req.CellID,
		RentalDays:  req.RentalDays,
		AmountCents: req.AmountCents,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRentalNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Rental not found", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
		case errors.Is(err, commands.ErrGatewayUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Init payment failed", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.InitPaymentResponse{
		PaymentID:  result.PaymentID,
		PaymentURL: result.PaymentURL,
	})
}

// @Summary Get payment
// @Description Get a payment by ID
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrPaymentNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary List payments
// @Description List payments with filtering and offset pagination
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param client_id query string false "Filter by client"
// @Param rental_id query string false "Filter by rental"
// @Param status query string false "Filter by payment status"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} resdto.PaymentListResponse
// @Failure 400 {object} map[string]string
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter queries.PaymentFilter
	if v := c.Query("client_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid client id", nil)
			return
		}
		filter.ClientID = &id
	}
	if v := c.Query("rental_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental id", nil)
			return
		}
		filter.RentalID = &id
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	page := parsePage(c)

	views, total, err := h.q.List(c.Request.Context(), filter, page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentList(views, total, page.Normalized()))
}

// @Summary Gateway callback
// @Description Server-to-server payment notification; signature-checked, idempotent
// @Tags payments
// @Accept json
// @Produce plain
// @Param request body reqdto.GatewayCallback true "Notification body"
// @Success 200 {string} string "OK"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/callback [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	// The whole flat body participates in the signature, so it is decoded
	// into a raw map first and typed fields are picked out after.
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid notification", nil)
		return
	}

	params := flattenCallback(raw)

	orderID, err := uuid.Parse(params["OrderId"])
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order id", nil)
		return
	}

	notif := commands.GatewayNotification{
		PaymentID: orderID,
		Status:    params["Status"],
		Success:   params["Success"] == "true",
		Params:    params,
	}

	if err := h.cmds.ConfirmPayment(c.Request.Context(), notif); err != nil {
		switch {
		case errors.Is(err, commands.ErrSignatureMismatch):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Signature mismatch", nil)
		case errors.Is(err, commands.ErrPaymentNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Callback processing failed", nil)
		}
		return
	}

	// The gateway retries until it reads this exact body.
	c.String(http.StatusOK, "OK")
}

// flattenCallback renders every scalar the way the gateway does when it
// signs: booleans lowercase, numbers without exponent formatting.
func flattenCallback(raw map[string]any) map[string]string {
	params := make(map[string]string, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case string:
			params[k] = tv
		case bool:
			params[k] = strconv.FormatBool(tv)
		case json.Number:
			params[k] = tv.String()
		case float64:
			params[k] = strconv.FormatFloat(tv, 'f', -1, 64)
		case nil:
			params[k] = ""
		}
	}
	return params
}
