package excel

// ExcelConfig holds configuration for the spreadsheet data source
type ExcelConfig struct {
	FilePath    string   `json:"file_path"`
	SheetName   string   `json:"sheet_name"` // empty selects the first sheet
	NullMarkers []string `json:"null_markers"`
	TrimSpace   bool     `json:"trim_space"`
}

// DefaultNullMarkers are the cell texts read as missing values, matching the
// NA strings spreadsheet tooling conventionally treats as empty.
var DefaultNullMarkers = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	markers := make([]string, len(DefaultNullMarkers))
	copy(markers, DefaultNullMarkers)
	return ExcelConfig{
		NullMarkers: markers,
		TrimSpace:   true,
	}
}
