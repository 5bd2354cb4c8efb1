// File: internal/appointment/handler.go
package appointment

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
)

// Handler exposes the appointment HTTP endpoints.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("AppointmentHandler")}
}

// RegisterRoutes mounts the appointment routes. Booking is public; listing
// requires authentication and cancel/edit are patient-only.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, patientMW gin.HandlerFunc) {
	appointments := router.Group("/appointments")
	{
		appointments.POST("", h.create)
		appointments.GET("", authMW, h.list)
		appointments.PUT("/cancel/:id", authMW, patientMW, h.cancel)
		appointments.PUT("/edit/:id", authMW, patientMW, h.edit)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Appointment booked successfully.", resp)
}

func (h *Handler) list(c *gin.Context) {
	page, limit := common.GetPaginationParams(c)
	requesterID := common.GetUserObjectIDFromContext(c)
	role := common.GetUserRoleFromContext(c)

	responses, pagination, err := h.service.List(c.Request.Context(), requesterID, role, page, limit)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Appointments retrieved successfully.", responses, pagination)
}

func (h *Handler) cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.Param("id"), common.GetUserObjectIDFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Appointment cancelled successfully.", resp)
}

func (h *Handler) edit(c *gin.Context) {
	var req EditRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Edit(c.Request.Context(), c.Param("id"), common.GetUserObjectIDFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Appointment updated successfully.", resp)
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("Invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return false
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return false
	}
	return true
}
