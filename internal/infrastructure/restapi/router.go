package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router instance.
func SetupRouter(verificationHandler *VerificationHandler) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // Adjust for production
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/verify", verificationHandler.VerifyHandler)
		v1.GET("/gas-prices", verificationHandler.GasPricesHandler)
		v1.GET("/cache/stats", verificationHandler.CacheStatsHandler)
		v1.DELETE("/cache", verificationHandler.CacheClearHandler)
	}

	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}
