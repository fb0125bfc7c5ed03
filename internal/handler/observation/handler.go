package observation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/model"
	observationService "github.com/phoenixpgs/guardian-api/internal/service/observation"
	apperrors "github.com/phoenixpgs/guardian-api/pkg/errors"
)

type Handler struct {
	service observationService.ObservationServicer
}

func NewHandler(service observationService.ObservationServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	observations := r.Group("/observations")
	{
		observations.POST("", h.CreateObservation)
		observations.GET("/:id", h.GetObservation)
		observations.POST("/:id/finalize", h.FinalizeObservation)
		observations.GET("", h.ListObservations)
	}
}

func (h *Handler) CreateObservation(c *gin.Context) {
	var observation model.Observation
	if err := c.ShouldBindJSON(&observation); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), &observation); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.StatusCode(), handler.NewErrorResponse(appErr.Message))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(observation))
}

func (h *Handler) GetObservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid observation ID"))
		return
	}

	observation, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("observation not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(observation))
}

func (h *Handler) FinalizeObservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid observation ID"))
		return
	}

	if err := h.service.Finalize(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListObservations(c *gin.Context) {
	var filter model.ObservationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	observations, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(observations))
}
