package leave

import (
	"github.com/gin-gonic/gin"

	"github.com/Anuradha654321/faculty-leave-system/internal/middleware"
	"github.com/Anuradha654321/faculty-leave-system/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Apply)
		leaves.POST("/permission", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.ApplyPermission)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListMine)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
	}
}
