package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trainhub/scheduler-api/internal/service"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
	"github.com/trainhub/scheduler-api/pkg/response"
)

// ExportHandler serves calendar export downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs a new ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Calendar godoc
// @Summary Download the calendar as CSV or PDF
// @Description Renders one row per task per covered day. Days without any
// @Description covered task still contribute a placeholder row.
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param start_date query string false "Range start (YYYY-MM-DD), defaults to current month"
// @Param end_date query string false "Range end (YYYY-MM-DD), defaults to start"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /exports/calendar [get]
func (h *ExportHandler) Calendar(c *gin.Context) {
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		response.Error(c, err)
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	if format != service.ExportFormatCSV && format != service.ExportFormatPDF {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid format: expected csv or pdf"))
		return
	}

	artifact, err := h.exports.Generate(c.Request.Context(), service.ExportRequest{
		Start:  start,
		End:    end,
		Format: format,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Payload)
}
