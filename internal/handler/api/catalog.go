package api

import (
	"errors"
	"net/http"

	reqdto "storent/internal/handler/dto/request"
	resdto "storent/internal/handler/dto/response"
	"storent/internal/handler/httperr"
	"storent/internal/usecase/commands"
	"storent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary List containers
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ContainerResponse
// @Router /containers [get]
func (h *CatalogHandler) ListContainers(c *gin.Context) {
	views, err := h.q.ListContainers(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"containers": resdto.FromContainerList(views)})
}

// @Summary Create container
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateContainerRequest true "Create container request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /containers [post]
func (h *CatalogHandler) CreateContainer(c *gin.Context) {
	var req reqdto.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateContainer(c.Request.Context(), commands.CreateContainerRequest{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		abortCatalogError(c, err, "Create container failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary List cells
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param container_id query string false "Filter by container"
// @Success 200 {array} resdto.CellResponse
// @Failure 400 {object} map[string]string
// @Router /cells [get]
func (h *CatalogHandler) ListCells(c *gin.Context) {
	var containerID *uuid.UUID
	if v := c.Query("container_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid container id", nil)
			return
		}
		containerID = &id
	}

	views, err := h.q.ListCells(c.Request.Context(), containerID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cells": resdto.FromCellList(views)})
}

// @Summary Get cell
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cell ID"
// @Success 200 {object} resdto.CellResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cells/{id} [get]
func (h *CatalogHandler) GetCell(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetCell(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrCellNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Cell not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCellView(view))
}

// @Summary Create cell
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCellRequest true "Create cell request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cells [post]
func (h *CatalogHandler) CreateCell(c *gin.Context) {
	var req reqdto.CreateCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateCell(c.Request.Context(), commands.CreateCellRequest{
		ContainerID: req.ContainerID,
		Name:        req.Name,
		AreaM2:      req.AreaM2,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		abortCatalogError(c, err, "Create cell failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Update cell
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cell ID"
// @Param request body reqdto.UpdateCellRequest true "Update cell request"
// @Success 200 {object} resdto.CellResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /cells/{id} [put]
func (h *CatalogHandler) UpdateCell(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateCellRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateCell(c.Request.Context(), id, commands.UpdateCellRequest{
		Name:       req.Name,
		AreaM2:     req.AreaM2,
		PriceCents: req.PriceCents,
	}); err != nil {
		abortCatalogError(c, err, "Update cell failed")
		return
	}

	view, err := h.q.GetCell(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cell", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCellView(view))
}

// @Summary Delete cell
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Cell ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cells/{id} [delete]
func (h *CatalogHandler) DeleteCell(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.cmds.DeleteCell(c.Request.Context(), id); err != nil {
		abortCatalogError(c, err, "Delete cell failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List relays
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param cell_id query string false "Filter by cell"
// @Success 200 {array} resdto.RelayResponse
// @Failure 400 {object} map[string]string
// @Router /relays [get]
func (h *CatalogHandler) ListRelays(c *gin.Context) {
	var cellID *uuid.UUID
	if v := c.Query("cell_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cell id", nil)
			return
		}
		cellID = &id
	}

	views, err := h.q.ListRelays(c.Request.Context(), cellID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relays": resdto.FromRelayList(views)})
}

// @Summary Create relay
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRelayRequest true "Create relay request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /relays [post]
func (h *CatalogHandler) CreateRelay(c *gin.Context) {
	var req reqdto.CreateRelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateRelay(c.Request.Context(), commands.CreateRelayRequest{
		CellID:  req.CellID,
		Name:    req.Name,
		Channel: req.Channel,
	})
	if err != nil {
		abortCatalogError(c, err, "Create relay failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func abortCatalogError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrContainerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Container not found", nil)
	case errors.Is(err, commands.ErrCellNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cell not found", nil)
	case errors.Is(err, commands.ErrCellInUse):
		httperr.AbortWithError(c, http.StatusConflict, err, "Cell is referenced by rentals", nil)
	case errors.Is(err, commands.ErrDuplicateName):
		httperr.AbortWithError(c, http.StatusConflict, err, "Name already exists", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
