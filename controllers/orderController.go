package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/Kariqs/amexan-commerce/services"
	"github.com/gin-gonic/gin"
)

// CreateOrder turns the selected cart entries into an order.
func (h *Handler) CreateOrder(ctx *gin.Context) {
	var data models.OrderData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	order, err := h.svc.Checkout.PlaceOrder(ctx.Request.Context(), caller(ctx), data.ShippingAddressID, data.CartItemIDs)
	if err != nil {
		h.fail(ctx, "Failed to place order", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

func (h *Handler) GetOrders(ctx *gin.Context) {
	orders, err := h.svc.Checkout.ListOrders(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Failed to fetch orders", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) GetOrder(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	order, err := h.svc.Checkout.GetOrder(ctx.Request.Context(), caller(ctx), id)
	if err != nil {
		h.fail(ctx, "Order not found", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func (h *Handler) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var data models.OrderStatusData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	order, err := h.svc.Checkout.UpdateOrderStatus(ctx.Request.Context(), caller(ctx), id, data.Status)
	if err != nil {
		h.fail(ctx, "Failed to update order status", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

func (h *Handler) GetAllOrders(ctx *gin.Context) {
	filter := services.OrderFilter{
		Status: ctx.Query("status"),
		Sort:   ctx.Query("sort"),
		Page:   pageQuery(ctx),
	}
	orders, meta, err := h.svc.Checkout.ListAllOrders(ctx.Request.Context(), caller(ctx), filter)
	if err != nil {
		h.fail(ctx, "Failed to fetch orders", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders, "metadata": meta})
}
