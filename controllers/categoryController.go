package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCategories(ctx *gin.Context) {
	categories, err := h.svc.Catalog.ListCategories(ctx.Request.Context())
	if err != nil {
		h.fail(ctx, "Unable to fetch categories", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(ctx *gin.Context) {
	var data models.CategoryData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	category, err := h.svc.Catalog.CreateCategory(ctx.Request.Context(), caller(ctx), data)
	if err != nil {
		h.fail(ctx, "Failed to create category", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"category": category})
}

func (h *Handler) UpdateCategory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var data models.CategoryData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	category, err := h.svc.Catalog.UpdateCategory(ctx.Request.Context(), caller(ctx), id, data)
	if err != nil {
		h.fail(ctx, "Failed to update category", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"category": category})
}

func (h *Handler) DeleteCategory(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteCategory(ctx.Request.Context(), caller(ctx), id); err != nil {
		h.fail(ctx, "Failed to delete category", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
