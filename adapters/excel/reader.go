package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hierview/domain/table"
	"hierview/internal"
	"hierview/internal/errors"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// DataReader handles reading Excel and CSV files into a table
type DataReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	nulls    nullSet
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		fileType = "csv"
	}
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		nulls:    newNullSet(config.NullMarkers),
		logger:   logger.With("reader"),
	}
}

// ReadTable reads the first sheet (or the configured one) with the first row as
// column headers and every following row as data.
func (r *DataReader) ReadTable(ctx context.Context) (*table.Table, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.config.FilePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData(ctx)
	case "xlsx":
		return r.readExcelData(ctx)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

// readExcelData reads raw cell values and classifies them with the stored cell type
func (r *DataReader) readExcelData(ctx context.Context) (*table.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.InvalidInput("workbook has no sheets")
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.NotFound(fmt.Sprintf("sheet %q", sheet))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	r.logger.Debug("Sheet %s read in %s (%d rows)", sheet, time.Since(startTime).Round(time.Millisecond), len(rows))

	if len(rows) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("sheet %s has no header row", sheet))
	}

	classify := func(rowIdx, colIdx int, raw string) (table.Cell, error) {
		ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
		if err != nil {
			return table.Absent(), err
		}
		cellType, err := f.GetCellType(sheet, ref)
		if err != nil {
			return table.Absent(), err
		}
		return r.excelCell(cellType, raw), nil
	}

	return r.processRows(ctx, rows, classify)
}

// readCSVData reads CSV data; cells that parse as numbers become numeric cells
func (r *DataReader) readCSVData(ctx context.Context) (*table.Table, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	return r.readCSV(ctx, file)
}

func (r *DataReader) readCSV(ctx context.Context, in io.Reader) (*table.Table, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "failed to read CSV file"))
	}
	r.logger.Debug("CSV file read in %s (%d rows)", time.Since(readStart).Round(time.Millisecond), len(rows))

	if len(rows) == 0 {
		return nil, errors.InvalidInput("CSV file has no header row")
	}
	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}

	classify := func(_, _ int, raw string) (table.Cell, error) {
		return r.textCell(raw), nil
	}
	return r.processRows(ctx, rows, classify)
}

type cellClassifier func(rowIdx, colIdx int, raw string) (table.Cell, error)

// processRows converts raw string rows into a table. Leading blank rows are skipped and
// the first non-blank row is the header. Cells beyond the header width are dropped;
// short rows leave their trailing columns absent.
func (r *DataReader) processRows(ctx context.Context, rows [][]string, classify cellClassifier) (*table.Table, error) {
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, errors.InvalidInput("no header row found")
	}
	if start > 0 {
		r.logger.Warn("Skipped %d blank rows before the header", start)
	}

	headers := normalizeHeaders(rows[start], r.config.TrimSpace)
	t := table.New(headers...)

	for i := start + 1; i < len(rows); i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row := make(table.Row, len(headers))
		for j, raw := range rows[i] {
			if j >= len(headers) {
				break
			}
			if r.isNull(raw) {
				continue
			}
			cell, err := classify(i, j, raw)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read cell at row %d column %d", i+1, j+1)
			}
			if !cell.IsAbsent() {
				row[headers[j]] = cell
			}
		}
		t.Append(row)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), t.Len())
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, raw := range row {
		if strings.TrimSpace(raw) != "" {
			return false
		}
	}
	return true
}

func (r *DataReader) normalize(raw string) string {
	if r.config.TrimSpace {
		return strings.TrimSpace(raw)
	}
	return raw
}

func (r *DataReader) isNull(raw string) bool {
	return r.nulls.contains(r.normalize(raw))
}

// excelCell types a raw cell value. Text cells stay text even when they look numeric.
func (r *DataReader) excelCell(cellType excelize.CellType, raw string) table.Cell {
	value := r.normalize(raw)
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return table.String(value)
	case excelize.CellTypeBool:
		switch value {
		case "1", "TRUE", "true":
			return table.String("true")
		case "0", "FALSE", "false":
			return table.String("false")
		}
		return table.String(value)
	default:
		return r.textCell(value)
	}
}

// textCell parses numeric-looking text as a number
func (r *DataReader) textCell(raw string) table.Cell {
	value := r.normalize(raw)
	if num, err := strconv.ParseFloat(value, 64); err == nil {
		return table.Number(num)
	}
	return table.String(value)
}
