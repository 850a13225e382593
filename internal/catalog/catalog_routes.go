package catalog

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
	cat := r.Group("/catalog")
	cat.Use(middleware.AuthMiddleware())
	{
		cat.GET("/leave-types", middleware.RBACAuthorize(rbacService, "catalog", "read"), handler.ListTypes)
		cat.GET("/balances", middleware.RBACAuthorize(rbacService, "catalog", "read"), handler.ListBalances)
	}
}
