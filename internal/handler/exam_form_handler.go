package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arabia-tkd/admin-api/internal/service"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
	"github.com/arabia-tkd/admin-api/pkg/response"
)

const pdfContentType = "application/pdf"

// ExamFormHandler exposes PDF form generation endpoints.
type ExamFormHandler struct {
	forms *service.ExamFormService
}

// NewExamFormHandler constructs ExamFormHandler.
func NewExamFormHandler(forms *service.ExamFormService) *ExamFormHandler {
	return &ExamFormHandler{forms: forms}
}

// Inscription godoc
// @Summary Render the inscription announcement PDF
// @Tags Exams
// @Accept json
// @Produce application/pdf
// @Param id path int true "Exam event ID"
// @Param payload body service.InscriptionFormRequest false "Optional student"
// @Success 200 {file} binary
// @Router /exams/{id}/inscription-pdf [post]
func (h *ExamFormHandler) Inscription(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.InscriptionFormRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		return
	}
	form, err := h.forms.Inscription(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, form.Filename, pdfContentType, form.Content)
}

// Evaluation godoc
// @Summary Render the graduation-request form PDF
// @Tags Exams
// @Accept json
// @Produce application/pdf
// @Param id path int true "Exam event ID"
// @Param payload body service.EvaluationFormRequest false "Optional student"
// @Success 200 {file} binary
// @Router /exams/{id}/evaluation-pdf [post]
func (h *ExamFormHandler) Evaluation(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.EvaluationFormRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		return
	}
	form, err := h.forms.Evaluation(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, form.Filename, pdfContentType, form.Content)
}

// Rinde godoc
// @Summary Render the per-student exam sheet PDF
// @Tags Exams
// @Accept json
// @Produce application/pdf
// @Param id path int true "Exam event ID"
// @Param payload body service.RindeFormRequest true "Students to render"
// @Success 200 {file} binary
// @Router /exams/{id}/rinde-pdf [post]
func (h *ExamFormHandler) Rinde(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.RindeFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	form, err := h.forms.Rinde(c.Request.Context(), eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, form.Filename, pdfContentType, form.Content)
}

// bindOptionalJSON tolerates an empty body; the inscription and evaluation
// forms render generically when no student is named.
func bindOptionalJSON(c *gin.Context, dest interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return err
	}
	return nil
}
