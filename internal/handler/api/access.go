package api

import (
	"errors"
	"net/http"

	resdto "storent/internal/handler/dto/response"
	"storent/internal/handler/httperr"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccessHandler struct {
	cmds commands.AccessCommands
	q    queries.AccessQueries
}

func NewAccessHandler(cmds commands.AccessCommands, q queries.AccessQueries) *AccessHandler {
	return &AccessHandler{cmds: cmds, q: q}
}

// @Summary Check access
// @Description Answer whether a rental may open a relay right now; called by relay controllers
// @Tags access
// @Produce json
// @Param relay_id query string true "Relay ID"
// @Param rental_id query string true "Rental ID"
// @Success 200 {object} resdto.AccessCheckResponse
// @Failure 400 {object} map[string]string
// @Router /access/check [get]
func (h *AccessHandler) Check(c *gin.Context) {
	relayID, err := uuid.Parse(c.Query("relay_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid relay id", nil)
		return
	}
	rentalID, err := uuid.Parse(c.Query("rental_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental id", nil)
		return
	}

	allowed, err := h.q.Check(c.Request.Context(), relayID, rentalID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Access check failed", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AccessCheckResponse{Allowed: allowed})
}

// @Summary List grants by rental
// @Description List relay access grants projected for a rental
// @Tags access
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {array} resdto.AccessGrantResponse
// @Failure 400 {object} map[string]string
// @Router /rentals/{id}/access [get]
func (h *AccessHandler) ListByRental(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	views, err := h.q.ListByRental(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grants": resdto.FromAccessGrantList(views)})
}

// @Summary List grants by relay
// @Description List access grants projected onto a relay
// @Tags access
// @Produce json
// @Security BearerAuth
// @Param id path string true "Relay ID"
// @Success 200 {array} resdto.AccessGrantResponse
// @Failure 400 {object} map[string]string
// @Router /relays/{id}/access [get]
func (h *AccessHandler) ListByRelay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	views, err := h.q.ListByRelay(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grants": resdto.FromAccessGrantList(views)})
}

// @Summary Recompute grants
// @Description Rebuild relay grants for a rental from its current state
// @Tags access
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rentals/{id}/access/recompute [post]
func (h *AccessHandler) Recompute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.cmds.RecomputeForRental(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrRentalNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Rental not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Recompute failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Sweep expired
// @Description Mark lapsed rentals as expiring and revoke grants past their validity
// @Tags access
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router /access/sweep [post]
func (h *AccessHandler) Sweep(c *gin.Context) {
	result, err := h.cmds.SweepExpired(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Sweep failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rentalsMarked": result.RentalsMarked,
		"grantsRevoked": result.GrantsRevoked,
	})
}
