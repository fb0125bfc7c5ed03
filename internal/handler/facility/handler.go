package facility

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/model"
	facilityService "github.com/phoenixpgs/guardian-api/internal/service/facility"
)

type Handler struct {
	service facilityService.FacilityServicer
}

func NewHandler(service facilityService.FacilityServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	facilities := r.Group("/facilities")
	{
		facilities.POST("", h.CreateFacility)
		facilities.GET("/:id", h.GetFacility)
		facilities.PUT("/:id", h.UpdateFacility)
		facilities.DELETE("/:id", h.DeleteFacility)
		facilities.GET("", h.ListFacilities)
	}
}

func (h *Handler) CreateFacility(c *gin.Context) {
	var facility model.Facility
	if err := c.ShouldBindJSON(&facility); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), &facility); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(facility))
}

func (h *Handler) GetFacility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid facility ID"))
		return
	}

	facility, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("facility not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(facility))
}

func (h *Handler) UpdateFacility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid facility ID"))
		return
	}

	var facility model.Facility
	if err := c.ShouldBindJSON(&facility); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	facility.ID = id

	if err := h.service.Update(c.Request.Context(), &facility); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteFacility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid facility ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListFacilities(c *gin.Context) {
	organizationID, err := uuid.Parse(c.Query("organization_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid organization ID"))
		return
	}

	facilities, err := h.service.List(c.Request.Context(), organizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(facilities))
}
