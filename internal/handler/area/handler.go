package area

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/model"
	areaService "github.com/phoenixpgs/guardian-api/internal/service/area"
)

type Handler struct {
	service areaService.AreaServicer
}

func NewHandler(service areaService.AreaServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	areas := r.Group("/areas")
	{
		areas.POST("", h.CreateArea)
		areas.GET("/:id", h.GetArea)
		areas.PUT("/:id", h.UpdateArea)
		areas.DELETE("/:id", h.DeleteArea)
		areas.GET("", h.ListAreas)
	}
}

func (h *Handler) CreateArea(c *gin.Context) {
	var area model.Area
	if err := c.ShouldBindJSON(&area); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), &area); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(area))
}

func (h *Handler) GetArea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid area ID"))
		return
	}

	area, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("area not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(area))
}

func (h *Handler) UpdateArea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid area ID"))
		return
	}

	var area model.Area
	if err := c.ShouldBindJSON(&area); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	area.ID = id

	if err := h.service.Update(c.Request.Context(), &area); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteArea(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid area ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListAreas(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Query("department_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid department ID"))
		return
	}

	areas, err := h.service.List(c.Request.Context(), departmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(areas))
}
