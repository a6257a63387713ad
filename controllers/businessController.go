package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetBusinesses(ctx *gin.Context) {
	businesses, err := h.svc.Business.ListBusinesses(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Unable to fetch businesses", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"businesses": businesses})
}

func (h *Handler) CreateBusiness(ctx *gin.Context) {
	var data models.BusinessData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	business, err := h.svc.Business.CreateBusiness(ctx.Request.Context(), caller(ctx), data)
	if err != nil {
		h.fail(ctx, "Failed to create business", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"business": business})
}

func (h *Handler) UpdateBusiness(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var data models.BusinessUpdate
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	business, err := h.svc.Business.UpdateBusiness(ctx.Request.Context(), caller(ctx), id, data)
	if err != nil {
		h.fail(ctx, "Failed to update business", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"business": business})
}
