package event

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/arenahub/event-dashboard-backend/internal/apperrors"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ===========================
// 📤 Export Events
//
// Export snapshots the filtered event list (same predicates as the list
// endpoint, capped at exportLimit rows) into a downloadable file.
func (s *Service) Export(ctx context.Context, f Filters, format string) ([]byte, string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	events, _, err := s.Repo.List(ctx, f, 1, exportLimit)
	if err != nil {
		return nil, "", "", apperrors.ClassifyPostgres(err)
	}

	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := exportEventsCSV(events)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("events_report_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := exportEventsExcel(events)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("events_report_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := exportEventsPDF(events)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("events_report_%s.pdf", timestamp), "application/pdf", nil
	}

	return nil, "", "", apperrors.NewValidation(map[string]string{
		"format": "must be one of: csv, excel, pdf",
	})
}

var exportHeaders = []string{
	"ID", "Name", "Status", "Start Date", "End Date", "Location",
	"Category", "Organizer", "Tickets Sold", "Total Revenue", "Unique Attendees",
}

func exportRow(e Event) []string {
	return []string{
		strconv.FormatUint(uint64(e.ID), 10),
		e.Name,
		e.Status,
		e.StartDate.Format("2006-01-02 15:04:05"),
		e.EndDate.Format("2006-01-02 15:04:05"),
		e.Location,
		deref(e.Category),
		deref(e.Organizer),
		strconv.Itoa(e.TicketsSold),
		strconv.Itoa(e.TotalRevenue),
		strconv.Itoa(e.UniqueAttendees),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func exportEventsCSV(events []Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, e := range events {
		if err := writer.Write(exportRow(e)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func exportEventsExcel(events []Event) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Events"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, e := range events {
		for cIdx, value := range exportRow(e) {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportEventsPDF(events []Event) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Events Report")
	pdf.Ln(10)

	headers := []string{"ID", "Name", "Status", "Start Date", "Location", "Tickets", "Revenue"}
	widths := []float64{15, 70, 25, 40, 70, 25, 30}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, e := range events {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(e.ID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, e.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, e.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, e.StartDate.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, e.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 6, strconv.Itoa(e.TicketsSold), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, strconv.Itoa(e.TotalRevenue), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
