package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetSellerStats(ctx *gin.Context) {
	stats, err := h.svc.Dashboard.SellerStats(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Unable to load seller stats", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) GetSellerProducts(ctx *gin.Context) {
	products, err := h.svc.Dashboard.SellerProducts(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Unable to fetch products", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) GetSellerOrders(ctx *gin.Context) {
	orders, err := h.svc.Dashboard.SellerOrders(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Unable to fetch orders", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) GetAdminDashboard(ctx *gin.Context) {
	overview, err := h.svc.Dashboard.AdminOverview(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Unable to load dashboard", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"dashboard": overview})
}

func (h *Handler) GetUsers(ctx *gin.Context) {
	users, err := h.svc.Dashboard.ListUsers(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Unable to fetch users", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) GetUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	user, err := h.svc.Dashboard.GetUser(ctx.Request.Context(), caller(ctx), id)
	if err != nil {
		h.fail(ctx, "User not found", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Dashboard.DeleteUser(ctx.Request.Context(), caller(ctx), id); err != nil {
		h.fail(ctx, "Unable to delete user", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
