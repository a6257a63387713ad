package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) AddToCart(ctx *gin.Context) {
	var data models.CartItemData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	quantity := 1
	if data.Quantity != nil {
		quantity = *data.Quantity
	}

	item, err := h.svc.Cart.AddToCart(ctx.Request.Context(), caller(ctx), data.ProductID, quantity)
	if err != nil {
		h.fail(ctx, "Failed to add item to cart", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Item added to cart", "item": item})
}

func (h *Handler) GetCart(ctx *gin.Context) {
	items, err := h.svc.Cart.GetCart(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Failed to fetch cart", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": items})
}

func (h *Handler) UpdateCartItem(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var data models.CartQuantityData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	item, err := h.svc.Cart.UpdateCartItem(ctx.Request.Context(), caller(ctx), id, data.Quantity)
	if err != nil {
		h.fail(ctx, "Failed to update cart item", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) RemoveCartItem(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Cart.RemoveCartItem(ctx.Request.Context(), caller(ctx), id); err != nil {
		h.fail(ctx, "Failed to remove cart item", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
}
