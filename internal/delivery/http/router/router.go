// Package router contains routing setup for the HTTP delivery.
package router

import (
	"demoapp/internal/delivery/http/middleware"
	"demoapp/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	OAuthHandler        *handler.OAuthHandler
	PaymentHandler      *handler.PaymentHandler
	UserHandler         *handler.UserHandler
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	oauthHandler        *handler.OAuthHandler
	paymentHandler      *handler.PaymentHandler
	userHandler         *handler.UserHandler
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		oauthHandler:        params.OAuthHandler,
		paymentHandler:      params.PaymentHandler,
		userHandler:         params.UserHandler,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
		authGroup.GET("/verify-token", r.authHandler.VerifyToken)
	}

	oauthGroup := e.Group("/oauth")
	{
		oauthGroup.GET("/:provider/authorize", r.oauthHandler.Authorize)
		oauthGroup.GET("/:provider/callback", r.oauthHandler.Callback)
		oauthGroup.POST("/token/refresh", r.oauthHandler.RefreshToken)
		oauthGroup.DELETE("/token/revoke", r.oauthHandler.RevokeToken)
	}

	paymentGroup := e.Group("/payment")
	{
		paymentGroup.POST("/charge", r.paymentHandler.Charge)
		paymentGroup.POST("/refund", r.paymentHandler.Refund)
		paymentGroup.GET("/payment/:id", r.paymentHandler.GetPayment)
		paymentGroup.GET("/payments", r.paymentHandler.ListPayments)
		paymentGroup.POST("/webhook", r.paymentHandler.Webhook)
	}

	userGroup := e.Group("/users")
	{
		userGroup.POST("", r.userHandler.CreateUser)
		userGroup.GET("", r.userHandler.ListUsers)
		userGroup.GET("/:id", r.userHandler.GetUser)
		userGroup.PUT("/:id", r.userHandler.UpdateUser)
		userGroup.DELETE("/:id", r.userHandler.DeleteUser)
		userGroup.POST("/:id/activate", r.userHandler.ActivateUser)
		userGroup.POST("/:id/deactivate", r.userHandler.DeactivateUser)
	}
}
