package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"userapi/internal/handler"
)

// APIPrefix is the common prefix of the user routes.
const APIPrefix = "/api"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *zap.Logger,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())

	e.GET("/", healthHandler.Welcome)
	e.GET("/healthz", healthHandler.Healthz)
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	e.GET(APIPrefix, healthHandler.Welcome)
	api := e.Group(APIPrefix)
	api.GET("/", healthHandler.Welcome)
	api.GET("/getAll", userHandler.ListUsers)
	api.POST("/addUser", userHandler.CreateUser)
	api.GET("/single/:id", userHandler.GetUser)
	api.PUT("/update/:id", userHandler.UpdateUser)
	api.DELETE("/delete/:id", userHandler.DeleteUser)
	api.DELETE("/deleteAll", userHandler.DeleteAllUsers)
}
