package standard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/model"
	"github.com/phoenixpgs/guardian-api/internal/repository/postgres"
	standardService "github.com/phoenixpgs/guardian-api/internal/service/standard"
)

type Handler struct {
	service standardService.StandardServicer
}

func NewHandler(service standardService.StandardServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	standards := r.Group("/standards")
	{
		standards.POST("", h.CreateStandard)
		standards.GET("/:id", h.GetStandard)
		standards.PUT("/:id", h.UpdateStandard)
		standards.DELETE("/:id", h.DeactivateStandard)
		standards.GET("", h.ListStandards)
		standards.GET("/:id/versions", h.ListVersions)
		standards.POST("/:id/versions", h.CreateNewVersion)
	}
}

func (h *Handler) CreateStandard(c *gin.Context) {
	var standard model.Standard
	if err := c.ShouldBindJSON(&standard); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Create(c.Request.Context(), &standard); err != nil {
		log.Error().Err(err).Msg("failed to create standard")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(standard))
}

func (h *Handler) GetStandard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid standard ID"))
		return
	}

	standard, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("standard not found"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(standard))
}

func (h *Handler) UpdateStandard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid standard ID"))
		return
	}

	var standard model.Standard
	if err := c.ShouldBindJSON(&standard); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	standard.ID = id

	if err := h.service.Update(c.Request.Context(), &standard); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeactivateStandard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid standard ID"))
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListStandards(c *gin.Context) {
	var filter model.StandardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	standards, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(standards))
}

func (h *Handler) ListVersions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid standard ID"))
		return
	}

	versions, err := h.service.ListVersions(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrStandardNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(versions))
}

// CreateNewVersion accepts partial overrides and produces the next version
// of the standard's family.
func (h *Handler) CreateNewVersion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid standard ID"))
		return
	}

	var input model.NewVersionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	version, err := h.service.CreateNewVersion(c.Request.Context(), id, &input)
	if err != nil {
		if errors.Is(err, postgres.ErrStandardNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
			return
		}
		log.Error().Err(err).Str("standard_id", id.String()).Msg("failed to create new version")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(version))
}
