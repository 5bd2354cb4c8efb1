// File: internal/doctor/handler.go
package doctor

import (
	"errors"

	"clinic_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for doctor handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new doctor handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for doctor operations. Reads are public;
// mutations are admin-gated.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	doctorGroup := router.Group("/doctors")
	{
		doctorGroup.GET("", h.list)
		doctorGroup.GET("/:id", h.getByID)

		adminGroup := doctorGroup.Group("", authMW, adminMW)
		{
			adminGroup.POST("", h.create)
			adminGroup.PUT("/:id", h.update)
			adminGroup.DELETE("/:id", h.delete)
		}
	}
}

func (h *Handler) list(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Doctors retrieved successfully.", doctors)
}

func (h *Handler) getByID(c *gin.Context) {
	d, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Doctor retrieved successfully.", d)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Create doctor: invalid request", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	d, err := h.service.Create(c.Request.Context(), req, image)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Doctor created successfully.", d)
}

func (h *Handler) update(c *gin.Context) {
	var req UpdateDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Update doctor: invalid request", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	d, err := h.service.Update(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Doctor updated successfully.", d)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Doctor deleted successfully.", nil)
}
