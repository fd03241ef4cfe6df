package handler

import (
	"errors"

	"github.com/arvindri2005/company-leetcode-explorer/internal/repository"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/response"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetStrategy(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	company, err := h.Repo.GetCompanyBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "company not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to resolve company", "err", err)
		response.InternalError(c, "")
		return
	}

	list, err := h.Repo.GetStrategyList(c.Request.Context(), claims.UserID, company.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "no saved strategy for this company")
			return
		}
		h.Logger.Sugar().Errorw("failed to load strategy", "err", err)
		response.InternalError(c, "")
		return
	}

	response.OK(c, list)
}

// GenerateStrategy runs the AI strategy flow over the company's problem set
// and saves the result as the caller's strategy list for that company.
func (h *Handler) GenerateStrategy(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	// body is optional; target level defaults to unspecified
	var req model.GenerateStrategyReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	company, err := h.Repo.GetCompanyBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "company not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to resolve company", "err", err)
		response.InternalError(c, "")
		return
	}

	problems, err := h.Repo.ListProblems(c.Request.Context(), company.CompanyID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to load problems", "err", err)
		response.InternalError(c, "")
		return
	}
	if len(problems) == 0 {
		response.ValidationError(c, "company has no problems to build a strategy from")
		return
	}

	strategy, err := h.AI.CompanyStrategy(c.Request.Context(), *company, problems, req.TargetLevel)
	if err != nil {
		h.Logger.Sugar().Errorw("strategy generation failed", "company", company.Slug, "err", err)
		response.UpstreamError(c, "strategy generation failed")
		return
	}

	checklist := make([]model.ChecklistItem, len(strategy.Checklist))
	for i, item := range strategy.Checklist {
		checklist[i] = model.ChecklistItem{Text: item}
	}
	list := &model.StrategyList{
		UserID:      claims.UserID,
		CompanyID:   company.CompanyID,
		Strategy:    strategy.Markdown,
		FocusTopics: strategy.FocusTopics,
		Checklist:   checklist,
	}

	if err := h.Repo.SaveStrategyList(c.Request.Context(), list); err != nil {
		h.Logger.Sugar().Errorw("failed to save strategy", "err", err)
		response.InternalError(c, "failed to save strategy")
		return
	}

	response.OK(c, list)
}

// ToggleStrategyItem ticks or unticks one checklist entry.
func (h *Handler) ToggleStrategyItem(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.ToggleChecklistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	company, err := h.Repo.GetCompanyBySlug(c.Request.Context(), req.CompanySlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "company not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to resolve company", "err", err)
		response.InternalError(c, "")
		return
	}

	list, err := h.Repo.ToggleStrategyItem(c.Request.Context(), claims.UserID, company.CompanyID, req.Index, req.Done)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "no saved strategy for this company")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.OK(c, list)
}
