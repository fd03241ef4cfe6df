package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/internal/cache"
	"github.com/arvindri2005/company-leetcode-explorer/internal/catalog"
	"github.com/arvindri2005/company-leetcode-explorer/internal/repository"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListCompanyProblems is the company-scoped catalog view with numbered
// pagination.
func (h *Handler) ListCompanyProblems(c *gin.Context) {
	slug := c.Param("slug")

	var q model.ListProblemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	query, err := catalog.ParseQuery(q.Difficulty, q.LastAsked, q.Status, q.Search, q.Sort)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	company, err := h.Repo.GetCompanyBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// unknown scope is an empty page, not an error
			response.OKWithMeta(c, []model.Problem{}, &response.Meta{Page: 1, TotalPages: 1, PageSize: q.PageSize})
			return
		}
		h.Logger.Sugar().Errorw("failed to resolve company", "slug", slug, "err", err)
		response.InternalError(c, "")
		return
	}

	problems, err := h.loadCompanyProblems(c, company)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to load problems", "company", slug, "err", err)
		response.InternalError(c, "failed to load problems")
		return
	}

	statuses, err := h.loadStatuses(c, company.CompanyID, query)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to load statuses", "company", slug, "err", err)
		response.InternalError(c, "failed to load problem statuses")
		return
	}

	page := catalog.SelectOffset(problems, statuses, query, q.Page, q.PageSize)
	response.OKWithMeta(c, page.Items, &response.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// ListAllProblems is the global catalog view consumed by infinite scroll,
// paged by opaque cursor.
func (h *Handler) ListAllProblems(c *gin.Context) {
	var q model.GlobalProblemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	query, err := catalog.ParseQuery(q.Difficulty, q.LastAsked, q.Status, q.Search, q.Sort)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	problems, err := h.loadAllProblems(c)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to load problem corpus", "err", err)
		response.InternalError(c, "failed to load problems")
		return
	}

	statuses, err := h.loadStatuses(c, uuid.Nil, query)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to load statuses", "err", err)
		response.InternalError(c, "failed to load problem statuses")
		return
	}

	page := catalog.SelectCursor(problems, statuses, query, q.Cursor, q.PageSize)
	response.OKWithMeta(c, page.Items, &response.Meta{
		PageSize:   q.PageSize,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	})
}

func (h *Handler) GetProblem(c *gin.Context) {
	companySlug := c.Param("slug")
	problemSlug := c.Param("problem_slug")

	p, err := h.Repo.GetProblemBySlug(c.Request.Context(), companySlug, problemSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "problem not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get problem", "company", companySlug, "problem", problemSlug, "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, p)
}

// CreateProblem is the single-submission upsert. A resubmitted title under
// the same company updates the existing record's mutable fields. When the
// link points at a known problem page, its canonical title is preferred
// over the submitted one.
func (h *Handler) CreateProblem(c *gin.Context) {
	var req model.CreateProblemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	lastAsked, err := model.ParseLastAskedPeriod(req.LastAsked)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	company, err := h.Repo.GetCompanyBySlug(c.Request.Context(), req.CompanySlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "company not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to resolve company", "slug", req.CompanySlug, "err", err)
		response.InternalError(c, "")
		return
	}

	title := strings.TrimSpace(req.Title)
	if h.Fetcher != nil && req.Link != "" {
		if meta, err := h.Fetcher.Fetch(c.Request.Context(), req.Link, c.Request.UserAgent()); err == nil && meta.Title != "" {
			title = meta.Title
			req.Link = meta.URL
		}
	}

	res, err := h.Repo.UpsertProblem(c.Request.Context(), company.CompanyID, company.Slug,
		title, difficulty, req.Tags, req.Link, lastAsked)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to upsert problem", "title", title, "err", err)
		response.InternalError(c, "failed to save problem")
		return
	}

	h.invalidateCatalog(c.Request.Context(), company.Slug)
	h.recomputeAggregates(company.CompanyID, company.Slug)

	if res.Updated {
		response.OK(c, res)
		return
	}
	response.Created(c, res)
}

func (h *Handler) loadCompanyProblems(c *gin.Context, company *model.Company) ([]model.Problem, error) {
	key := fmt.Sprintf("problems:%s", company.Slug)
	var cached []model.Problem
	if hit, err := h.Cache.Get(c.Request.Context(), key, &cached); err != nil {
		h.Logger.Sugar().Warnw("cache read failed", "key", key, "err", err)
	} else if hit {
		return cached, nil
	}

	problems, err := h.Repo.ListProblems(c.Request.Context(), company.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := h.Cache.Set(c.Request.Context(), key, problems, h.CacheTTL.ProblemListTTL,
		cache.CompanyTag(company.Slug)); err != nil {
		h.Logger.Sugar().Warnw("cache write failed", "key", key, "err", err)
	}
	return problems, nil
}

func (h *Handler) loadAllProblems(c *gin.Context) ([]model.Problem, error) {
	const key = "problems:all"
	var cached []model.Problem
	if hit, err := h.Cache.Get(c.Request.Context(), key, &cached); err != nil {
		h.Logger.Sugar().Warnw("cache read failed", "key", key, "err", err)
	} else if hit {
		return cached, nil
	}

	problems, err := h.Repo.ListAllProblems(c.Request.Context())
	if err != nil {
		return nil, err
	}
	if err := h.Cache.Set(c.Request.Context(), key, problems, h.CacheTTL.ProblemListTTL,
		cache.GlobalProblemsTag); err != nil {
		h.Logger.Sugar().Warnw("cache write failed", "key", key, "err", err)
	}
	return problems, nil
}

// loadStatuses joins in the per-user status map when the request is
// authenticated and the query actually filters on status. Anonymous
// requests filter against an empty map, so only "none" matches.
func (h *Handler) loadStatuses(c *gin.Context, companyID uuid.UUID, query catalog.Query) (map[uuid.UUID]model.ProblemStatus, error) {
	userID := h.userID(c)
	if userID == "" || query.Status == "" {
		return nil, nil
	}
	return h.Repo.GetStatusMap(c.Request.Context(), userID, companyID)
}
