package handler

import (
	"fmt"

	"github.com/arvindri2005/company-leetcode-explorer/internal/importer"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// importReport is the per-row outcome list for one bulk upload.
type importReport struct {
	Imported int                 `json:"imported"`
	Updated  int                 `json:"updated"`
	Failed   int                 `json:"failed"`
	Errors   []importer.RowError `json:"errors,omitempty"`
}

// ImportProblems ingests a problem spreadsheet: parse, per-row validate,
// then upsert the good rows. Company names resolve through the same dedup
// path as single submissions, creating missing companies on the fly.
func (h *Handler) ImportProblems(c *gin.Context) {
	header, rows, ok := h.readSheet(c)
	if !ok {
		return
	}

	validated, rowErrs, err := importer.ValidateProblems(header, rows)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	report := importReport{Errors: rowErrs, Failed: len(rowErrs)}
	touched := map[uuid.UUID]string{}
	companyIDs := map[string]uuid.UUID{}
	companySlugs := map[string]string{}

	ctx := c.Request.Context()
	for _, row := range validated {
		rowNum := row.Row

		key := row.CompanyName
		companyID, seen := companyIDs[key]
		if !seen {
			res, err := h.Repo.UpsertCompany(ctx, model.CreateCompanyReq{Name: row.CompanyName})
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, importer.RowError{Row: rowNum, Err: fmt.Sprintf("company: %v", err)})
				continue
			}
			company, err := h.Repo.GetCompany(ctx, res.CompanyID)
			if err != nil {
				report.Failed++
				report.Errors = append(report.Errors, importer.RowError{Row: rowNum, Err: fmt.Sprintf("company: %v", err)})
				continue
			}
			companyID = company.CompanyID
			companyIDs[key] = companyID
			companySlugs[key] = company.Slug
		}

		res, err := h.Repo.UpsertProblem(ctx, companyID, companySlugs[key],
			row.Title, row.Difficulty, row.Tags, row.Link, row.LastAsked)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, importer.RowError{Row: rowNum, Err: err.Error()})
			continue
		}
		if res.Updated {
			report.Updated++
		} else {
			report.Imported++
		}
		touched[companyID] = companySlugs[key]
	}

	for companyID, slug := range touched {
		h.invalidateCatalog(ctx, slug)
		h.recomputeAggregates(companyID, slug)
	}

	response.OK(c, report)
}

// ImportCompanies ingests a company spreadsheet.
func (h *Handler) ImportCompanies(c *gin.Context) {
	header, rows, ok := h.readSheet(c)
	if !ok {
		return
	}

	validated, rowErrs, err := importer.ValidateCompanies(header, rows)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	report := importReport{Errors: rowErrs, Failed: len(rowErrs)}
	for _, row := range validated {
		res, err := h.Repo.UpsertCompany(c.Request.Context(), model.CreateCompanyReq{
			Name:        row.Name,
			LogoURL:     row.LogoURL,
			Description: row.Description,
			Website:     row.Website,
		})
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, importer.RowError{Row: row.Row, Err: err.Error()})
			continue
		}
		if res.AlreadyExists {
			report.Updated++
		} else {
			report.Imported++
		}
	}

	h.invalidateCatalog(c.Request.Context(), "")

	response.OK(c, report)
}

func (h *Handler) readSheet(c *gin.Context) ([]string, [][]string, bool) {
	file, fh, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing upload: expected multipart field \"file\"")
		return nil, nil, false
	}
	defer file.Close()

	header, rows, err := importer.ParseSheet(file, fh.Filename)
	if err != nil {
		response.ValidationError(c, err.Error())
		return nil, nil, false
	}
	return header, rows, true
}
