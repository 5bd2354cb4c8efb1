// File: internal/contact/handler.go
package contact

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
)

// Handler exposes the contact HTTP endpoints.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("ContactHandler")}
}

// RegisterRoutes mounts the contact routes. Submitting is public; reading the
// inbox is admin-only.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	router.POST("/contact", h.create)
	router.GET("/contact", authMW, adminMW, h.list)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid contact payload", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Message sent successfully.", resp)
}

func (h *Handler) list(c *gin.Context) {
	page, limit := common.GetPaginationParams(c)

	responses, pagination, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Messages retrieved successfully.", responses, pagination)
}
