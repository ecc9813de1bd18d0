package handlers

import (
	"time"

	"cardroom/database"
	"cardroom/middlewares"
	"cardroom/models"
	"cardroom/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every HTTP route to the store and the ready store.
func NewRouter(store *database.Store, ready *database.ReadyStore, logger *zap.Logger, config models.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestID(), utils.RequestLogger(logger))

	if len(config.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     config.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/", HomeHandler)

	auth := router.Group("/auth")
	auth.POST("/signup", func(c *gin.Context) {
		SignUp(c, store, logger)
	})
	auth.POST("/signin", func(c *gin.Context) {
		SignIn(c, store, logger)
	})

	rooms := router.Group("/rooms")
	rooms.POST("/create", func(c *gin.Context) {
		RoomCreate(c, store, logger)
	})
	rooms.POST("/join", func(c *gin.Context) {
		RoomJoin(c, store, logger)
	})
	rooms.POST("/:room_id/ready", func(c *gin.Context) {
		PlayerReady(c, store, ready, logger)
	})
	rooms.POST("/:room_id/state", func(c *gin.Context) {
		UpdateGameState(c, store, logger)
	})
	rooms.GET("/:room_id/state", func(c *gin.Context) {
		GetGameState(c, store, ready, logger)
	})
	rooms.DELETE("/:room_id", func(c *gin.Context) {
		RoomDelete(c, store, ready, logger)
	})

	return router
}
