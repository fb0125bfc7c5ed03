package interchange

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/phoenixpgs/guardian-api/internal/csvio"
	"github.com/phoenixpgs/guardian-api/internal/handler"
	"github.com/phoenixpgs/guardian-api/internal/repository/postgres"
	"github.com/phoenixpgs/guardian-api/internal/service/exporter"
	"github.com/phoenixpgs/guardian-api/internal/service/importer"
)

// Handler serves CSV import, export and template endpoints. Imports may
// target the service's own database or a caller-supplied one.
type Handler struct {
	db       *sqlx.DB
	importer *importer.Service
	exporter *exporter.Service
}

func NewHandler(db *sqlx.DB, imp *importer.Service, exp *exporter.Service) *Handler {
	return &Handler{db: db, importer: imp, exporter: exp}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/import/csv", h.ImportCSV)
	r.GET("/export/csv", h.ExportCSV)
	r.GET("/export/template", h.ExportTemplate)
}

func (h *Handler) ImportCSV(c *gin.Context) {
	tableType := c.PostForm("tableType")
	if tableType == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("tableType is required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to open uploaded file"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read uploaded file"))
		return
	}

	rows, err := csvio.ParseContent(string(content))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	var warnings []string
	if tableType == importer.TableStandards {
		var validationErrors []string
		for i, row := range rows {
			v := csvio.ValidateStandardRow(row, i+2)
			validationErrors = append(validationErrors, v.Errors...)
			warnings = append(warnings, v.Warnings...)
		}
		if len(validationErrors) > 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorListResponse("CSV validation failed", validationErrors))
			return
		}
	}

	db := h.db
	if url := c.PostForm("databaseUrl"); url != "" {
		target, err := postgres.OpenURL(url)
		if err != nil {
			log.Error().Err(err).Msg("failed to connect to import target database")
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to connect to target database"))
			return
		}
		defer target.Close()
		db = target
	}

	result, err := h.importer.Import(c.Request.Context(), db, tableType, rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	result.Warnings = warnings

	log.Info().
		Str("table_type", tableType).
		Int("imported", result.Imported).
		Int("total", result.Total).
		Int("errors", len(result.Errors)).
		Msg("CSV import completed")

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) ExportCSV(c *gin.Context) {
	tableType := c.Query("tableType")
	if tableType == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("tableType is required"))
		return
	}

	content, err := h.exporter.Export(c.Request.Context(), tableType)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+h.exporter.Filename(tableType))
	c.Data(http.StatusOK, "text/csv", []byte(content))
}

func (h *Handler) ExportTemplate(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=standards-template.csv")
	c.Data(http.StatusOK, "text/csv", []byte(csvio.GenerateTemplate()))
}
