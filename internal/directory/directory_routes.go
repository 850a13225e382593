package directory

import (
	"github.com/gin-gonic/gin"

	"github.com/Anuradha654321/faculty-leave-system/internal/middleware"
)

// Search has no authorize wrapper on purpose: disallowed roles get an
// empty result from the service rather than a 403 that reveals the
// endpoint's permission matrix.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	faculty := r.Group("/faculty")
	faculty.Use(middleware.AuthMiddleware())
	{
		faculty.GET("/search", handler.SearchFaculty)
	}
}
