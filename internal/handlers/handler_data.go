package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/middleware"
)

// maxImportSize caps uploaded import documents at 10 MiB.
const maxImportSize = 10 << 20

var legacyContentTypes = map[portssvc.LegacyExportFormat]string{
	portssvc.LegacyFormatJSON: "application/json",
	portssvc.LegacyFormatCSV:  "text/csv",
	portssvc.LegacyFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// dataHandler handles HTTP requests for the import/export pipeline.
type dataHandler struct {
	portabilityService portssvc.PortabilitySvcFacade
}

// registerDataRoutes registers routes related to import and export.
func registerDataRoutes(rg *gin.RouterGroup, portabilityService portssvc.PortabilitySvcFacade) {
	h := &dataHandler{portabilityService: portabilityService}

	data := rg.Group("/data")
	{
		data.GET("/export", h.exportData)
		data.GET("/export/legacy", h.exportLegacy)
		data.POST("/import/validate", h.validateImport)
		data.POST("/import", h.commitImport)
	}
}

func (h *dataHandler) exportData(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payload, err := h.portabilityService.ExportData(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to export data")
		return
	}

	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		logger.Error("Failed to render export document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export data"})
		return
	}

	filename := fmt.Sprintf("expense_tracker_data_%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", content)
}

func (h *dataHandler) exportLegacy(c *gin.Context) {
	format := portssvc.LegacyExportFormat(c.DefaultQuery("format", "json"))
	contentType, ok := legacyContentTypes[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown export format %q", format)})
		return
	}

	content, filename, err := h.portabilityService.ExportLegacy(c.Request.Context(), format)
	if err != nil {
		respondServiceError(c, err, "Failed to export expenses")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, content)
}

// readImportBody reads the uploaded document, accepting either a raw JSON
// body or a multipart upload under the "file" field.
func readImportBody(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportSize))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
}

func (h *dataHandler) validateImport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	raw, err := readImportBody(c)
	if err != nil {
		logger.Warn("Failed to read import body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	payload, err := h.portabilityService.ValidateImport(c.Request.Context(), raw)
	if err != nil {
		respondImportError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *dataHandler) commitImport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	raw, err := readImportBody(c)
	if err != nil {
		logger.Warn("Failed to read import body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	payload, err := h.portabilityService.ValidateImport(c.Request.Context(), raw)
	if err != nil {
		respondImportError(c, err)
		return
	}
	if err := h.portabilityService.CommitImport(c.Request.Context(), payload); err != nil {
		respondServiceError(c, err, "Failed to import data")
		return
	}
	c.Status(http.StatusNoContent)
}

// respondImportError renders schema violations section by section so the
// client can show the user exactly what is wrong with the file.
func respondImportError(c *gin.Context, err error) {
	var schemaErr *apperrors.SchemaValidationError
	if errors.As(err, &schemaErr) {
		c.JSON(http.StatusUnprocessableEntity, dto.ImportValidationResponse{
			Error:    schemaErr.Error(),
			Sections: schemaErr.Violations,
		})
		return
	}
	respondServiceError(c, err, "Failed to validate import")
}
