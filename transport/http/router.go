package http

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/gin-gonic/gin"
)

// SetupRouter sets up the Gin router serving one callback session
func SetupRouter(handlers *CallbackHandlers, logger watermill.LoggerAdapter) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery(), RequestLogger(logger))

	router.OPTIONS("/", handlers.Preflight)
	router.POST("/", handlers.Callback)
	router.NoMethod(handlers.MethodNotAllowed)

	return router
}
