package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/zoonatech/portal-api/internal/handlers"
	"github.com/zoonatech/portal-api/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	contactHandler *handlers.ContactHandler,
	careersHandler *handlers.CareersHandler,
	paymentHandler *handlers.PaymentHandler,
	resetHandler *handlers.ResetHandler,
) {
	// Rate limiting for credential and OTP endpoints
	authRateLimit := middleware.DefaultAuthRateLimit()

	// Public form intake
	router.Post("/contactus", contactHandler.Submit)
	router.Post("/apply", careersHandler.Apply)

	// Account endpoints
	router.Post("/register", authHandler.Register)
	router.With(authRateLimit).Post("/login", authHandler.Login)
	router.Post("/logout", authHandler.Logout)
	router.Get("/me", authHandler.Me)

	// Requires an active session
	router.Post("/pay", paymentHandler.Pay)

	// Password reset flow
	router.With(authRateLimit).Post("/forgot-password", resetHandler.ForgotPassword)
	router.Post("/verify-forgot-password", resetHandler.VerifyOTP)
	router.Post("/reset-password", resetHandler.ResetPassword)
}
