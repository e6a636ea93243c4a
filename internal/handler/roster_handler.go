package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arabia-tkd/admin-api/internal/service"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
	"github.com/arabia-tkd/admin-api/pkg/response"
)

// RosterHandler exposes exam roster endpoints.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// Get godoc
// @Summary Get the roster of an exam event
// @Tags Exams
// @Produce json
// @Param id path int true "Exam event ID"
// @Success 200 {object} response.Envelope
// @Router /exams/{id}/roster [get]
func (h *RosterHandler) Get(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.roster.Get(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Set godoc
// @Summary Replace the roster of an exam event
// @Tags Exams
// @Accept json
// @Produce json
// @Param id path int true "Exam event ID"
// @Param payload body service.SetRosterRequest true "Roster payload"
// @Success 200 {object} response.Envelope
// @Router /exams/{id}/roster [put]
func (h *RosterHandler) Set(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.SetRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	confirmed, err := h.roster.Set(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"student_ids": confirmed}, nil)
}
