package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"

	"github.com/lexisware/portfolio-backend/internal/model"
	"github.com/lexisware/portfolio-backend/internal/service"
)

// reportPageSize caps how many rows a single PDF export contains.
const reportPageSize = 1000

// ReportHandler renders the admin PDF export of advisory bookings.
type ReportHandler struct {
	Svc *service.AdvisoryService
}

func NewReportHandler(s *service.AdvisoryService) *ReportHandler {
	return &ReportHandler{Svc: s}
}

// AdvisoriesPDF streams a tabular PDF of bookings, optionally filtered by
// ?status=.
func (h *ReportHandler) AdvisoriesPDF(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	var (
		items []model.Advisory
		total int64
		err   error
	)
	if status := c.QueryParam("status"); status != "" {
		if !model.ValidStatus(status) {
			return errJSON(c, http.StatusBadRequest, "invalid status")
		}
		items, total, err = h.Svc.ListByStatus(ctx, status, 0, reportPageSize)
	} else {
		items, total, err = h.Svc.ListAll(ctx, 0, reportPageSize)
	}
	if err != nil {
		return writeError(c, err)
	}

	buf, err := renderAdvisoriesPDF(items, total)
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="advisories.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func renderAdvisoriesPDF(items []model.Advisory, total int64) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Advisory bookings", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Advisory bookings")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d bookings total", time.Now().UTC().Format("2006-01-02 15:04 UTC"), total))
	pdf.Ln(10)

	headers := []string{"ID", "Programmer", "Requester", "Email", "Date", "Time", "Status"}
	widths := []float64{15, 50, 45, 60, 25, 20, 25}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, hd := range headers {
		pdf.CellFormat(widths[i], 7, hd, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, a := range items {
		cells := []string{
			fmt.Sprintf("%d", a.ID),
			a.ProgrammerName,
			a.RequesterName,
			a.RequesterEmail,
			a.Date,
			a.Time,
			a.Status,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
