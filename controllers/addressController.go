package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAddress(ctx *gin.Context) {
	var data models.AddressData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	address, err := h.svc.Addresses.CreateAddress(ctx.Request.Context(), caller(ctx), data)
	if err != nil {
		h.fail(ctx, "Failed to save address", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"address": address})
}

func (h *Handler) GetAddresses(ctx *gin.Context) {
	addresses, err := h.svc.Addresses.ListAddresses(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Failed to fetch addresses", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}
