package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/gin-gonic/gin"
)

const (
	msgUserCreated        = "User created successfully. Check your email to activate your account."
	msgActivationSuccess  = "account has been activated successfully."
	msgResetLinkSent      = "Check your email for a password reset link."
	msgPasswordResetDone  = "Password has been reset successfully."
	msgInvalidCredentials = "invalid username or password"
)

// Signup handles user registration
func (h *Handler) Signup(ctx *gin.Context) {
	var data models.RegisterData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	user, err := h.svc.Auth.Register(ctx.Request.Context(), data)
	if err != nil {
		h.fail(ctx, "Unable to create account", err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "user": user})
}

func (h *Handler) Login(ctx *gin.Context) {
	var data models.LoginData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	token, user, err := h.svc.Auth.Login(ctx.Request.Context(), data.Identifier, data.Password)
	if err != nil {
		h.fail(ctx, msgInvalidCredentials, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) Me(ctx *gin.Context) {
	user, err := h.svc.Auth.Me(ctx.Request.Context(), caller(ctx))
	if err != nil {
		h.fail(ctx, "Unable to load profile", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var data models.ProfileData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}
	user, err := h.svc.Auth.UpdateProfile(ctx.Request.Context(), caller(ctx), id, data)
	if err != nil {
		h.fail(ctx, "Unable to update profile", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) ActivateAccount(ctx *gin.Context) {
	if err := h.svc.Auth.VerifyEmail(ctx.Request.Context(), ctx.Param("activationToken")); err != nil {
		h.fail(ctx, "Invalid or expired activation link", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgActivationSuccess})
}

func (h *Handler) SendPasswordResetLink(ctx *gin.Context) {
	var data models.ForgotPasswordData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	if err := h.svc.Auth.ForgotPassword(ctx.Request.Context(), data.Email); err != nil {
		h.fail(ctx, "user with this email does not exist", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
}

func (h *Handler) ResetPassword(ctx *gin.Context) {
	var data models.ResetPasswordData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		respondWithError(ctx, http.StatusBadRequest, msgInvalidInput, err)
		return
	}

	if err := h.svc.Auth.ResetPassword(ctx.Request.Context(), ctx.Param("resetToken"), data.Password); err != nil {
		h.fail(ctx, "unable to reset password", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgPasswordResetDone})
}
