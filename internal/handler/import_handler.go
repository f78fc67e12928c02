package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainhub/scheduler-api/internal/dto"
	"github.com/trainhub/scheduler-api/internal/service"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
	"github.com/trainhub/scheduler-api/pkg/response"
)

// ImportHandler accepts bulk event imports from JSON and spreadsheet uploads.
type ImportHandler struct {
	imports     *service.ImportService
	maxFileSize int64
}

// NewImportHandler constructs a new ImportHandler.
func NewImportHandler(imports *service.ImportService, maxFileSize int64) *ImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 << 20
	}
	return &ImportHandler{imports: imports, maxFileSize: maxFileSize}
}

// Events godoc
// @Summary Import calendar events from JSON
// @Description Validates and normalises every record before persisting.
// @Description A single invalid record rejects the whole batch.
// @Tags Imports
// @Accept json
// @Produce json
// @Param payload body []dto.ImportEventRecord true "Event records"
// @Success 200 {object} response.Envelope
// @Router /imports/events [post]
func (h *ImportHandler) Events(c *gin.Context) {
	var records []dto.ImportEventRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload: expected an array of event records"))
		return
	}

	result, err := h.imports.ImportEvents(c.Request.Context(), records)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Spreadsheet godoc
// @Summary Import calendar events from an uploaded spreadsheet
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet (.xlsx)"
// @Success 200 {object} response.Envelope
// @Router /imports/spreadsheet [post]
func (h *ImportHandler) Spreadsheet(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing uploaded file: expected multipart field \"file\""))
		return
	}
	if fileHeader.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "uploaded file exceeds the size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to read uploaded file"))
		return
	}
	defer file.Close()

	result, err := h.imports.ImportSpreadsheet(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
