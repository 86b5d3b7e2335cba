package api

import (
	"errors"
	"net/http"

	"storent/internal/domain/status"
	reqdto "storent/internal/handler/dto/request"
	resdto "storent/internal/handler/dto/response"
	"storent/internal/handler/httperr"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatusHandler struct {
	cmds commands.StatusCommands
	q    queries.StatusQueries
}

func NewStatusHandler(cmds commands.StatusCommands, q queries.StatusQueries) *StatusHandler {
	return &StatusHandler{cmds: cmds, q: q}
}

// @Summary List statuses
// @Description List the full status catalog
// @Tags statuses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.StatusResponse
// @Router /statuses [get]
func (h *StatusHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": resdto.FromStatusList(views)})
}

// @Summary Create status
// @Description Create a status label over a lifecycle kind
// @Tags statuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateStatusRequest true "Create status request"
// @Success 201 {object} resdto.StatusResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /statuses [post]
func (h *StatusHandler) Create(c *gin.Context) {
	var req reqdto.CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateStatus(c.Request.Context(), commands.CreateStatusRequest{
		Name:  req.Name,
		Color: req.Color,
		Kind:  status.Kind(req.Kind),
	})
	if err != nil {
		abortStatusError(c, err, "Create status failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.StatusID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load status", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromStatusView(view))
}

// @Summary Update status
// @Description Rename or recolor a status; the kind is immutable
// @Tags statuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Status ID"
// @Param request body reqdto.UpdateStatusRequest true "Update status request"
// @Success 200 {object} resdto.StatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /statuses/{id} [put]
func (h *StatusHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateStatus(c.Request.Context(), id, commands.UpdateStatusRequest{
		Name:  req.Name,
		Color: req.Color,
	}); err != nil {
		abortStatusError(c, err, "Update status failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load status", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatusView(view))
}

// @Summary Delete status
// @Description Delete a status not referenced by any rental
// @Tags statuses
// @Security BearerAuth
// @Param id path string true "Status ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /statuses/{id} [delete]
func (h *StatusHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.cmds.DeleteStatus(c.Request.Context(), id); err != nil {
		abortStatusError(c, err, "Delete status failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func abortStatusError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrStatusNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Status not found", nil)
	case errors.Is(err, commands.ErrStatusInUse):
		httperr.AbortWithError(c, http.StatusConflict, err, "Status is referenced by rentals", nil)
	case errors.Is(err, commands.ErrDuplicateStatusName):
		httperr.AbortWithError(c, http.StatusConflict, err, "Status name already exists", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
