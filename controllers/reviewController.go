package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateReview(ctx *gin.Context) {
	var data models.ReviewData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	review, err := h.svc.Reviews.SubmitReview(ctx.Request.Context(), caller(ctx), data.ProductID, data.Rating, data.Comment)
	if err != nil {
		h.fail(ctx, "Unable to submit review", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
}
