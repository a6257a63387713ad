package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ProcessPayment(ctx *gin.Context) {
	var data models.PaymentData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	payment, err := h.svc.Payments.CapturePayment(ctx.Request.Context(), caller(ctx), data.OrderID, data.PaymentMethod)
	if err != nil {
		h.fail(ctx, "Payment failed", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Payment processed successfully", "payment": payment})
}

func (h *Handler) GetPayments(ctx *gin.Context) {
	payments, err := h.svc.Payments.ListPayments(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Failed to fetch payments", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"payments": payments})
}

func (h *Handler) GetPayment(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	payment, err := h.svc.Payments.GetPayment(ctx.Request.Context(), caller(ctx), id)
	if err != nil {
		h.fail(ctx, "Payment not found", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"payment": payment})
}

func (h *Handler) GetOrderPayment(ctx *gin.Context) {
	orderID, ok := paramID(ctx, "orderId")
	if !ok {
		return
	}
	payment, err := h.svc.Payments.GetPaymentByOrder(ctx.Request.Context(), caller(ctx), orderID)
	if err != nil {
		h.fail(ctx, "Payment not found", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"payment": payment})
}
