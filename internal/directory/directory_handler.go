package directory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Anuradha654321/faculty-leave-system/internal/middleware"
	"github.com/Anuradha654321/faculty-leave-system/internal/shared/apperror"
	"github.com/Anuradha654321/faculty-leave-system/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("directory.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) SearchFaculty(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	query := c.Query("search")

	resp, err := h.service.SearchFaculty(c.Request.Context(), actor, query)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("faculty search request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
