package handler

import (
	"errors"

	"github.com/arvindri2005/company-leetcode-explorer/internal/repository"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ToggleBookmark flips the caller's bookmark on a problem and reports the
// resulting state.
func (h *Handler) ToggleBookmark(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	problemID, err := uuid.Parse(c.Param("problem_id"))
	if err != nil {
		response.BadRequest(c, "invalid problem ID")
		return
	}

	p, err := h.Repo.GetProblem(c.Request.Context(), problemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "problem not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get problem", "problem_id", problemID, "err", err)
		response.InternalError(c, "")
		return
	}

	bookmarked, err := h.Repo.ToggleBookmark(c.Request.Context(), claims.UserID, p)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to toggle bookmark", "problem_id", problemID, "err", err)
		response.InternalError(c, "failed to toggle bookmark")
		return
	}

	response.OK(c, gin.H{"bookmarked": bookmarked})
}

func (h *Handler) ListBookmarks(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	bookmarks, err := h.Repo.ListBookmarks(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list bookmarks", "err", err)
		response.InternalError(c, "failed to list bookmarks")
		return
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	response.OK(c, bookmarks)
}

// ListStatuses returns every status marker the caller has set.
func (h *Handler) ListStatuses(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	statuses, err := h.Repo.ListStatuses(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list statuses", "err", err)
		response.InternalError(c, "failed to list statuses")
		return
	}
	if statuses == nil {
		statuses = []model.StatusRecord{}
	}
	response.OK(c, statuses)
}

// SetProblemStatus sets the caller's progress marker; "none" clears it.
func (h *Handler) SetProblemStatus(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	problemID, err := uuid.Parse(c.Param("problem_id"))
	if err != nil {
		response.BadRequest(c, "invalid problem ID")
		return
	}

	var req model.SetStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	status, err := model.ParseProblemStatus(req.Status)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	p, err := h.Repo.GetProblem(c.Request.Context(), problemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "problem not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get problem", "problem_id", problemID, "err", err)
		response.InternalError(c, "")
		return
	}

	if err := h.Repo.SetProblemStatus(c.Request.Context(), claims.UserID, p, status); err != nil {
		h.Logger.Sugar().Errorw("failed to set status", "problem_id", problemID, "err", err)
		response.InternalError(c, "failed to set status")
		return
	}

	response.OK(c, gin.H{"status": status})
}

func (h *Handler) GetHistory(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	education, err := h.Repo.ListHistory(c.Request.Context(), claims.UserID, model.HistoryEducation)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list history", "err", err)
		response.InternalError(c, "failed to load history")
		return
	}
	work, err := h.Repo.ListHistory(c.Request.Context(), claims.UserID, model.HistoryWork)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list history", "err", err)
		response.InternalError(c, "failed to load history")
		return
	}

	response.OK(c, gin.H{"education": education, "work": work})
}

// PutHistory replaces the caller's ordered list for one kind.
func (h *Handler) PutHistory(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.PutHistoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	kind := model.HistoryKind(req.Kind)
	if kind != model.HistoryEducation && kind != model.HistoryWork {
		response.ValidationError(c, "kind must be education or work")
		return
	}

	entries := make([]model.HistoryEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = model.HistoryEntry{
			Title:        e.Title,
			Organization: e.Organization,
			Period:       e.Period,
			Details:      e.Details,
		}
	}

	if err := h.Repo.PutHistory(c.Request.Context(), claims.UserID, kind, entries); err != nil {
		h.Logger.Sugar().Errorw("failed to save history", "kind", kind, "err", err)
		response.InternalError(c, "failed to save history")
		return
	}

	response.OK(c, gin.H{"saved": len(entries)})
}
