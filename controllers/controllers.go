package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/amexan-commerce/middlewares"
	"github.com/Kariqs/amexan-commerce/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
)

// Handler exposes the domain services over HTTP.
type Handler struct {
	svc    *services.Services
	logger *zap.Logger
}

func NewHandler(svc *services.Services, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrEmptyOrder):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrPurchaseRequired):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrDuplicatePayment),
		errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail translates a service error into a response. Unknown errors are logged and hidden.
func (h *Handler) fail(ctx *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(message,
			zap.String("path", ctx.FullPath()),
			zap.String("request_id", ctx.GetString(middlewares.RequestIDKey)),
			zap.Error(err))
		respondWithError(ctx, status, msgInternalServerError, nil)
		return
	}

	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		ctx.JSON(status, gin.H{
			"message":   message,
			"error":     err.Error(),
			"productId": stockErr.ProductID,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
		return
	}
	respondWithError(ctx, status, message, err)
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(ctx *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

func pageQuery(ctx *gin.Context) services.Page {
	return services.Page{Page: queryInt(ctx, "page", 1), Limit: queryInt(ctx, "limit", 0)}
}

func caller(ctx *gin.Context) services.Identity {
	return middlewares.CurrentIdentity(ctx)
}
