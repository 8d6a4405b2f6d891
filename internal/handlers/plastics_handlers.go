package handlers

import (
	"bytes"
	"net/http"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/logger"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/query"
	"plastwarehouse/internal/render"
	"plastwarehouse/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PlasticsHandlers serves the plastics listing as JSON, HTML, CSV and PDF
type PlasticsHandlers struct {
	plasticsService services.PlasticsService
	exportService   services.ExportService
	pdf             render.PDFOptions
}

// NewPlasticsHandlers creates a new plastics handlers instance
func NewPlasticsHandlers(plasticsService services.PlasticsService, exportService services.ExportService, pdf render.PDFOptions) *PlasticsHandlers {
	return &PlasticsHandlers{
		plasticsService: plasticsService,
		exportService:   exportService,
		pdf:             pdf,
	}
}

// PlasticsResponse is the JSON listing envelope
type PlasticsResponse struct {
	Data []models.Plastic `json:"data"`
}

func filterFromQuery(c echo.Context) (models.PlasticSearchFilter, error) {
	return query.ParseFilter(c.QueryParam)
}

func formFromQuery(c echo.Context) render.FormValues {
	return render.FormValues{
		Article:      c.QueryParam(query.ParamArticle),
		Material:     c.QueryParam(query.ParamMaterial),
		Color:        c.QueryParam(query.ParamColor),
		Warehouse:    c.QueryParam(query.ParamWarehouse),
		Thickness:    c.QueryParam(query.ParamThickness),
		ThicknessMin: c.QueryParam(query.ParamThicknessMin),
		ThicknessMax: c.QueryParam(query.ParamThicknessMax),
	}
}

// ListPlastics returns at most 100 matching records, newest arrival first
// @Summary List warehouse plastics
// @Tags plastics
// @Produce json
// @Param article query string false "Article substring"
// @Param material query string false "Material substring"
// @Param color query string false "Color substring"
// @Param warehouse query string false "Warehouse substring"
// @Param thickness query number false "Exact thickness"
// @Param thickness_min query number false "Minimum thickness"
// @Param thickness_max query number false "Maximum thickness"
// @Success 200 {object} PlasticsResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 503 {object} common.ErrorResponse
// @Router /api/plastics [get]
func (h *PlasticsHandlers) ListPlastics(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return common.SendError(c, err)
	}

	records, err := h.plasticsService.Search(c.Request().Context(), services.SurfaceAPI, filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, PlasticsResponse{Data: records})
}

// PlasticsPage renders the filter form and the listing table
func (h *PlasticsHandlers) PlasticsPage(c echo.Context) error {
	form := formFromQuery(c)
	filter, err := filterFromQuery(c)
	if err != nil {
		return textError(c, err)
	}

	records, err := h.plasticsService.Search(c.Request().Context(), services.SurfaceHTML, filter)
	if err != nil {
		return textError(c, err)
	}
	return c.Render(http.StatusOK, render.PlasticsTemplate, render.NewPlasticsPage(form, records))
}

// ExportCSV streams the listing as a spreadsheet download
// @Summary Export warehouse plastics as CSV
// @Tags plastics
// @Produce text/csv
// @Success 200 {string} string
// @Router /plastics/export.csv [get]
func (h *PlasticsHandlers) ExportCSV(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return textError(c, err)
	}
	records, err := h.plasticsService.Search(c.Request().Context(), services.SurfaceCSV, filter)
	if err != nil {
		return textError(c, err)
	}

	var buf bytes.Buffer
	if err := render.WriteSpreadsheet(&buf, records); err != nil {
		return textError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="plastics.csv"`)
	return c.Blob(http.StatusOK, render.SpreadsheetContentType, buf.Bytes())
}

// ExportPDF returns the listing as a printable PDF
// @Summary Export warehouse plastics as PDF
// @Tags plastics
// @Produce application/pdf
// @Success 200 {string} string
// @Router /plastics/export.pdf [get]
func (h *PlasticsHandlers) ExportPDF(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return textError(c, err)
	}
	records, err := h.plasticsService.Search(c.Request().Context(), services.SurfacePDF, filter)
	if err != nil {
		return textError(c, err)
	}

	var buf bytes.Buffer
	if err := render.WritePDF(&buf, records, h.pdf); err != nil {
		return textError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="plastics.pdf"`)
	return c.Blob(http.StatusOK, render.PDFContentType, buf.Bytes())
}

// ArchiveExport stores the spreadsheet in object storage and returns a download link
// @Summary Archive a CSV export to object storage
// @Tags plastics
// @Produce json
// @Success 201 {object} models.ExportResult
// @Failure 400 {object} common.ErrorResponse
// @Failure 503 {object} common.ErrorResponse
// @Router /api/plastics/exports [post]
func (h *PlasticsHandlers) ArchiveExport(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return common.SendError(c, err)
	}

	result, err := h.exportService.Archive(c.Request().Context(), services.TriggerManual, filter)
	if err != nil {
		logger.FromContext(c.Request().Context()).Error("archive export failed", zap.Error(err))
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// textError answers browser and download routes with a plain-text message.
func textError(c echo.Context, err error) error {
	status, message := common.ErrorStatus(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request().Context()).Error("request failed", zap.Error(err))
	}
	return c.String(status, message)
}
