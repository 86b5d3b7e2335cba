package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storent/internal/domain/rental"
	"storent/internal/domain/status"
	reqdto "storent/internal/handler/dto/request"
	resdto "storent/internal/handler/dto/response"
	"storent/internal/handler/httperr"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	cmds commands.RentalCommands
	q    queries.RentalQueries
}

func NewRentalHandler(cmds commands.RentalCommands, q queries.RentalQueries) *RentalHandler {
	return &RentalHandler{cmds: cmds, q: q}
}

// @Summary Create rental
// @Description Create a rental of one or more cells for a client
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRentalRequest true "Create rental request"
// @Success 201 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rentals [post]
func (h *RentalHandler) Create(c *gin.Context) {
	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateRental(c.Request.Context(), commands.CreateRentalRequest{
		ClientID:  req.ClientID,
		CellIDs:   req.CellIDs,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StatusID:  req.StatusID,
	})
	if err != nil {
		abortRentalError(c, err, "Create rental failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.RentalID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rental", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRentalView(view))
}

// @Summary Get rental
// @Description Get a rental by ID with its cells and status
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rentals/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrRentalNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Rental not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// @Summary List rentals
// @Description List rentals with filtering and offset pagination
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param client_id query string false "Filter by client"
// @Param cell_id query string false "Filter by cell"
// @Param status_id query string false "Filter by status"
// @Param kind query string false "Filter by status kind"
// @Param from query string false "Period overlap range start (RFC3339)"
// @Param to query string false "Period overlap range end (RFC3339)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "Sort column: created_at, start_date, end_date"
// @Param sort_direction query string false "asc or desc (default desc)"
// @Success 200 {object} resdto.RentalListResponse
// @Failure 400 {object} map[string]string
// @Router /rentals [get]
func (h *RentalHandler) List(c *gin.Context) {
	filter, err := parseRentalFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter", nil)
		return
	}
	page := parsePage(c)

	items, total, err := h.q.List(c.Request.Context(), filter, page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalList(items, total, page.Normalized()))
}

// @Summary Extend rental
// @Description Push the rental end date forward by months or days
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.ExtendRentalRequest true "Extension amount"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rentals/{id}/extend [post]
func (h *RentalHandler) Extend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.ExtendRentalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.ExtendRental(c.Request.Context(), id, commands.ExtendRentalRequest{
		Months: req.Months,
		Days:   req.Days,
	}); err != nil {
		abortRentalError(c, err, "Extend rental failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rental", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// @Summary Update rental status
// @Description Move the rental to another status along the lifecycle graph
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.UpdateRentalStatusRequest true "Target status"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rentals/{id}/status [patch]
func (h *RentalHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateRentalStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateRentalStatus(c.Request.Context(), id, req.StatusID); err != nil {
		abortRentalError(c, err, "Update status failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rental", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// @Summary Close rental
// @Description Close a rental with a mandatory audit comment
// @Tags rentals
// @Accept json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.CloseRentalRequest true "Closure comment"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rentals/{id}/close [post]
func (h *RentalHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.CloseRentalRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.CloseRental(c.Request.Context(), id, req.Comment); err != nil {
		abortRentalError(c, err, "Close rental failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func abortRentalError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrRentalNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Rental not found", nil)
	case errors.Is(err, commands.ErrStatusNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Status not found", nil)
	case errors.Is(err, commands.ErrCellNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cell not found", nil)
	case errors.Is(err, commands.ErrCellConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Cell already rented for the period", nil)
	case errors.Is(err, rental.ErrRentalClosed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Rental is closed", nil)
	case errors.Is(err, rental.ErrCloseViaTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Closure must use the close operation", nil)
	case errors.Is(err, rental.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Status transition not allowed", nil)
	case errors.Is(err, rental.ErrCommentRequired):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Closure comment required", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

func parseRentalFilter(c *gin.Context) (queries.RentalFilter, error) {
	var filter queries.RentalFilter

	if v := c.Query("client_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.ClientID = &id
	}
	if v := c.Query("cell_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.CellID = &id
	}
	if v := c.Query("status_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.StatusID = &id
	}
	if v := c.Query("kind"); v != "" {
		kind := status.Kind(v)
		if !kind.IsValid() {
			return filter, status.ErrInvalidKind
		}
		filter.Kind = &kind
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	return filter, nil
}

func parsePage(c *gin.Context) queries.Page {
	page := queries.Page{
		SortBy:        c.Query("sort_by"),
		SortDirection: c.Query("sort_direction"),
	}
	if v := c.Query("page"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			page.Page = iv
		}
	}
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			page.Limit = iv
		}
	}
	return page
}
