// Package importer is the two-stage bulk-import pipeline: stage one parses
// an uploaded spreadsheet into untyped rows, stage two validates and coerces
// each row independently against the fixed column schema. One bad row never
// fails the batch; callers get a per-row outcome list.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/xuri/excelize/v2"
)

// Required column headers, matched case-insensitively.
const (
	colTitle      = "Title"
	colDifficulty = "Difficulty"
	colLink       = "Link"
	colTags       = "Tags"
	colCompany    = "Company Name"
	colLastAsked  = "Last Asked Period"

	colName        = "Name"
	colLogo        = "Logo"
	colDescription = "Description"
	colWebsite     = "Website"
)

// ProblemRow is one validated problem submission from the sheet. Row keeps
// the 1-based sheet position so later upsert failures report the right row.
type ProblemRow struct {
	Row         int
	Title       string
	Difficulty  model.Difficulty
	Link        string
	Tags        []string
	CompanyName string
	LastAsked   model.LastAskedPeriod
}

// CompanyRow is one validated company submission from the sheet.
type CompanyRow struct {
	Row         int
	Name        string
	LogoURL     string
	Description string
	Website     string
}

// RowError ties a validation failure to its 1-based sheet row.
type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

// ParseSheet reads the upload into a header row plus data rows. Filename
// extension selects the format: .xlsx via excelize, anything else is
// treated as CSV.
func ParseSheet(r io.Reader, filename string) (header []string, rows [][]string, err error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return parseXLSX(r)
	}
	return parseCSV(r)
}

func parseXLSX(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return all[0], all[1:], nil
}

func parseCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-row in stage two

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("csv is empty")
	}
	return all[0], all[1:], nil
}

// columnIndex maps required/optional headers to their position. Missing
// required headers fail the whole import: without them no row is
// interpretable.
func columnIndex(header []string, required, optional []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	out := make(map[string]int, len(required)+len(optional))
	for _, col := range required {
		i, ok := idx[strings.ToLower(col)]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
		out[col] = i
	}
	for _, col := range optional {
		if i, ok := idx[strings.ToLower(col)]; ok {
			out[col] = i
		}
	}
	return out, nil
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ValidateProblems runs stage two over problem rows. Difficulty and recency
// are validated against the fixed enumerations server-side regardless of
// what the client sent.
func ValidateProblems(header []string, rows [][]string) ([]ProblemRow, []RowError, error) {
	idx, err := columnIndex(header,
		[]string{colTitle, colDifficulty, colLink, colTags, colCompany, colLastAsked}, nil)
	if err != nil {
		return nil, nil, err
	}

	var ok []ProblemRow
	var bad []RowError
	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header
		p, err := validateProblemRow(row, idx)
		if err != nil {
			bad = append(bad, RowError{Row: rowNum, Err: err.Error()})
			continue
		}
		p.Row = rowNum
		ok = append(ok, p)
	}
	return ok, bad, nil
}

func validateProblemRow(row []string, idx map[string]int) (ProblemRow, error) {
	var p ProblemRow

	p.Title = cell(row, idx, colTitle)
	if p.Title == "" {
		return p, fmt.Errorf("title is required")
	}
	p.CompanyName = cell(row, idx, colCompany)
	if p.CompanyName == "" {
		return p, fmt.Errorf("company name is required")
	}

	d, err := model.ParseDifficulty(cell(row, idx, colDifficulty))
	if err != nil {
		return p, err
	}
	p.Difficulty = d

	la, err := model.ParseLastAskedPeriod(cell(row, idx, colLastAsked))
	if err != nil {
		return p, err
	}
	p.LastAsked = la

	p.Link = cell(row, idx, colLink)
	p.Tags = SplitTags(cell(row, idx, colTags))
	return p, nil
}

// ValidateCompanies runs stage two over company rows (Name required,
// Logo/Description/Website optional).
func ValidateCompanies(header []string, rows [][]string) ([]CompanyRow, []RowError, error) {
	idx, err := columnIndex(header,
		[]string{colName}, []string{colLogo, colDescription, colWebsite})
	if err != nil {
		return nil, nil, err
	}

	var ok []CompanyRow
	var bad []RowError
	for i, row := range rows {
		rowNum := i + 2
		name := cell(row, idx, colName)
		if name == "" {
			bad = append(bad, RowError{Row: rowNum, Err: "name is required"})
			continue
		}
		ok = append(ok, CompanyRow{
			Row:         rowNum,
			Name:        name,
			LogoURL:     cell(row, idx, colLogo),
			Description: cell(row, idx, colDescription),
			Website:     cell(row, idx, colWebsite),
		})
	}
	return ok, bad, nil
}

// SplitTags splits the comma-separated tags column, trimming blanks.
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
