package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-api/pkg/auth"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

// NewRouter wires every route of the API. Mutating profile routes sit
// behind the JWT middleware; the listing and by-user lookups are
// public.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	jwtSvc *auth.JWTService,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	authMiddleware := AuthMiddleware(jwtSvc)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/users", authHandler.Register)
		api.POST("/auth", authHandler.Login)
		api.GET("/auth", authMiddleware, authHandler.CurrentUser)

		profile := api.Group("/profile")
		{
			profile.GET("", profileHandler.ListProfiles)
			profile.GET("/user/:user_id", profileHandler.GetProfileByUserID)

			profile.GET("/me", authMiddleware, profileHandler.GetOwnProfile)
			profile.POST("", authMiddleware, profileHandler.UpsertProfile)
			profile.DELETE("", authMiddleware, profileHandler.DeleteAccount)

			profile.PUT("/experience", authMiddleware, profileHandler.AddExperience)
			profile.DELETE("/experience/:exp_id", authMiddleware, profileHandler.RemoveExperience)

			profile.PUT("/education", authMiddleware, profileHandler.AddEducation)
			profile.DELETE("/education/:edu_id", authMiddleware, profileHandler.RemoveEducation)
		}
	}

	return router
}
