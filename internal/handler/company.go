package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/arvindri2005/company-leetcode-explorer/internal/cache"
	"github.com/arvindri2005/company-leetcode-explorer/internal/repository"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) ListCompanies(c *gin.Context) {
	var q model.ListCompaniesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}

	type listPayload struct {
		Companies []model.Company `json:"companies"`
		Total     int             `json:"total"`
	}

	key := fmt.Sprintf("companies:%s:%d:%d", q.Search, q.Page, q.PageSize)
	var cached listPayload
	if hit, err := h.Cache.Get(c.Request.Context(), key, &cached); err != nil {
		h.Logger.Sugar().Warnw("cache read failed", "key", key, "err", err)
	} else if hit {
		response.OKWithMeta(c, cached.Companies, &response.Meta{Page: q.Page, PageSize: q.PageSize, Total: cached.Total})
		return
	}

	companies, total, err := h.Repo.ListCompanies(c.Request.Context(), q.Search, q.PageSize, (q.Page-1)*q.PageSize)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list companies", "err", err)
		response.InternalError(c, "failed to list companies")
		return
	}

	if err := h.Cache.Set(c.Request.Context(), key, listPayload{Companies: companies, Total: total},
		h.CacheTTL.CompanyTTL, cache.GlobalProblemsTag); err != nil {
		h.Logger.Sugar().Warnw("cache write failed", "key", key, "err", err)
	}

	response.OKWithMeta(c, companies, &response.Meta{Page: q.Page, PageSize: q.PageSize, Total: total})
}

func (h *Handler) GetCompany(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "missing company slug")
		return
	}

	company, err := h.Repo.GetCompanyBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "company not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get company", "slug", slug, "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, company)
}

func (h *Handler) CreateCompany(c *gin.Context) {
	var req model.CreateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.Repo.UpsertCompany(c.Request.Context(), req)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to upsert company", "name", req.Name, "err", err)
		response.InternalError(c, "failed to save company")
		return
	}

	h.invalidateCatalog(c.Request.Context(), "")

	if res.AlreadyExists {
		response.OK(c, res)
		return
	}
	response.Created(c, res)
}

// RenameCompany changes a company's display name and recomputes its slug,
// cascading the new slug to every record that denormalizes it.
func (h *Handler) RenameCompany(c *gin.Context) {
	slug := c.Param("slug")

	var req model.RenameCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	company, err := h.Repo.GetCompanyBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "company not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get company", "slug", slug, "err", err)
		response.InternalError(c, "")
		return
	}

	if err := h.Repo.RenameCompany(c.Request.Context(), company.CompanyID, req.Name); err != nil {
		h.Logger.Sugar().Errorw("failed to rename company", "slug", slug, "err", err)
		response.InternalError(c, "failed to rename company")
		return
	}

	// old slug's cached pages are now stale too
	h.invalidateCatalog(c.Request.Context(), slug)

	renamed, err := h.Repo.GetCompany(c.Request.Context(), company.CompanyID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to reload company", "company_id", company.CompanyID, "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, renamed)
}

// invalidateCatalog drops cached catalog pages after a write. companySlug
// empty drops only the global views.
func (h *Handler) invalidateCatalog(ctx context.Context, companySlug string) {
	tags := []string{cache.GlobalProblemsTag}
	if companySlug != "" {
		tags = append(tags, cache.CompanyTag(companySlug))
	}
	if err := h.Cache.Invalidate(ctx, tags...); err != nil {
		h.Logger.Sugar().Warnw("cache invalidation failed", "tags", tags, "err", err)
	}
}

// recomputeAggregates refreshes a company's counters off the request path.
func (h *Handler) recomputeAggregates(companyID uuid.UUID, companySlug string) {
	go func() {
		ctx := context.Background()
		if err := h.Repo.RecomputeCompanyAggregates(ctx, companyID); err != nil {
			h.Logger.Sugar().Errorw("aggregates recompute failed", "company_id", companyID, "err", err)
			return
		}
		h.invalidateCatalog(ctx, companySlug)
	}()
}
