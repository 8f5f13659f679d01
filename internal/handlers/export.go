package handlers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"bikeshare-dashboard/internal/dataset"
	"bikeshare-dashboard/internal/errors"
	"bikeshare-dashboard/internal/services"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type table struct {
	Header []string
	Rows   [][]any
}

type tableFunc func(view *services.View) table

var exportTables = map[string]tableFunc{
	"rows":     rowsTable,
	"rfm":      rfmTable,
	"seasonal": seasonalTable,
	"weather":  weatherTable,
	"monthly":  monthlyTable,
}

type ExportHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewExportHandlers(analytics *services.Analytics, logger *slog.Logger) *ExportHandlers {
	return &ExportHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleExport downloads one table of the filtered selection.
func (h *ExportHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	format := chi.URLParam(r, "format")

	build, ok := exportTables[name]
	if !ok {
		errors.WriteError(w, r, h.logger, errors.NotFound(fmt.Sprintf("Unknown table %q.", name)))
		return
	}
	if format != formatCSV && format != formatXLSX {
		errors.WriteError(w, r, h.logger, errors.Validation(fmt.Sprintf("Unsupported export format %q.", format)))
		return
	}

	c, err := paramsFromQuery(r).criteria()
	if err != nil {
		errors.WriteError(w, r, h.logger, toAppError(err))
		return
	}
	view, err := h.analytics.Tables(c)
	if err != nil {
		errors.WriteError(w, r, h.logger, toAppError(err))
		return
	}

	t := build(view)
	filename := name + "." + format
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-cache")

	if format == formatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = writeCSV(w, t)
	} else {
		w.Header().Set("Content-Type", xlsxContentType)
		err = writeXLSX(w, name, t)
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed", "table", name, "format", format, "error", err)
	}
}

func writeCSV(w http.ResponseWriter, t table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Header))
	for i, row := range t.Rows {
		for j, v := range row {
			record[j] = cellString(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w http.ResponseWriter, sheet string, t table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	for i, name := range t.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for rowIdx, row := range t.Rows {
		for colIdx, v := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func cellString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func rowsTable(view *services.View) table {
	t := table{Header: view.Columns}
	for _, r := range view.Rows {
		row := make([]any, len(view.Columns))
		for i, col := range view.Columns {
			row[i] = dataset.Field(r, col)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func rfmTable(view *services.View) table {
	t := table{Header: []string{"date", "recency", "frequency", "monetary"}}
	for _, r := range view.RFM {
		t.Rows = append(t.Rows, []any{r.Date.Format(time.DateOnly), r.Recency, r.Frequency, r.Monetary})
	}
	return t
}

func seasonalTable(view *services.View) table {
	t := table{Header: []string{"year", "season", "total_user"}}
	for _, s := range view.Seasonal {
		t.Rows = append(t.Rows, []any{s.Year, s.Season, s.TotalUser})
	}
	return t
}

func weatherTable(view *services.View) table {
	t := table{Header: []string{"weather", "mean_user", "days"}}
	for _, wi := range view.Weather {
		t.Rows = append(t.Rows, []any{wi.Weather, wi.MeanUser, wi.Days})
	}
	return t
}

func monthlyTable(view *services.View) table {
	t := table{Header: []string{"year", "month", "mean_user", "days"}}
	for _, m := range view.Monthly {
		t.Rows = append(t.Rows, []any{m.Year, m.Month, m.MeanUser, m.Days})
	}
	return t
}
