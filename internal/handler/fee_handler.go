package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arabia-tkd/admin-api/internal/service"
	appErrors "github.com/arabia-tkd/admin-api/pkg/errors"
	"github.com/arabia-tkd/admin-api/pkg/response"
)

// FeeHandler exposes fee payment endpoints.
type FeeHandler struct {
	fees *service.FeeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees *service.FeeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// Status godoc
// @Summary Get a student's derived fee status and payment history
// @Tags Fees
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /fees/{studentId} [get]
func (h *FeeHandler) Status(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	status, err := h.fees.Status(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// RegisterPayment godoc
// @Summary Record a fee payment
// @Tags Fees
// @Accept json
// @Produce json
// @Param studentId path int true "Student ID"
// @Param payload body service.RegisterPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /fees/{studentId} [post]
func (h *FeeHandler) RegisterPayment(c *gin.Context) {
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}
	var req service.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	status, err := h.fees.RegisterPayment(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, status, nil)
}

// DeletePayment godoc
// @Summary Delete a payment; unknown ids succeed
// @Tags Fees
// @Param paymentId path int true "Payment ID"
// @Success 204
// @Router /fees/payments/{paymentId} [delete]
func (h *FeeHandler) DeletePayment(c *gin.Context) {
	paymentID, ok := pathID(c, "paymentId")
	if !ok {
		return
	}
	if err := h.fees.DeletePayment(c.Request.Context(), paymentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClearAll godoc
// @Summary Wipe the whole payment ledger
// @Tags Fees
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/fees [delete]
func (h *FeeHandler) ClearAll(c *gin.Context) {
	deleted, err := h.fees.ClearAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": deleted}, nil)
}
