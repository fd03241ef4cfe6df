package handler

import (
	"errors"

	"github.com/arvindri2005/company-leetcode-explorer/internal/ai"
	"github.com/arvindri2005/company-leetcode-explorer/internal/repository"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type similarReq struct {
	ProblemID uuid.UUID `json:"problem_id" binding:"required"`
	// Global widens the candidate set from the problem's company to the
	// whole corpus.
	Global bool `json:"global"`
}

// SimilarProblems runs the AI similarity flow. An empty result is a valid
// answer ("nothing similar found"), not a failure.
func (h *Handler) SimilarProblems(c *gin.Context) {
	var req similarReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	target, err := h.Repo.GetProblem(c.Request.Context(), req.ProblemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "problem not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get problem", "problem_id", req.ProblemID, "err", err)
		response.InternalError(c, "")
		return
	}

	var candidates []model.Problem
	if req.Global {
		candidates, err = h.Repo.ListAllProblems(c.Request.Context())
	} else {
		candidates, err = h.Repo.ListProblems(c.Request.Context(), target.CompanyID)
	}
	if err != nil {
		h.Logger.Sugar().Errorw("failed to load candidates", "err", err)
		response.InternalError(c, "")
		return
	}

	similar, err := h.AI.SimilarProblems(c.Request.Context(), *target, candidates)
	if err != nil {
		h.Logger.Sugar().Errorw("similarity flow failed", "problem_id", req.ProblemID, "err", err)
		response.UpstreamError(c, "similarity search failed")
		return
	}

	response.OK(c, similar)
}

type flashcardsReq struct {
	CompanySlug string `json:"company_slug" binding:"required"`
	Count       int    `json:"count"`
}

func (h *Handler) Flashcards(c *gin.Context) {
	var req flashcardsReq
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

	problems, err := h.Repo.ListProblems(c.Request.Context(), company.CompanyID)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to load problems", "err", err)
		response.InternalError(c, "")
		return
	}
	if len(problems) == 0 {
		response.ValidationError(c, "company has no problems to make flashcards from")
		return
	}

	cards, err := h.AI.Flashcards(c.Request.Context(), problems, req.Count)
	if err != nil {
		h.Logger.Sugar().Errorw("flashcard flow failed", "company", company.Slug, "err", err)
		response.UpstreamError(c, "flashcard generation failed")
		return
	}

	response.OK(c, cards)
}

type interviewReq struct {
	CompanySlug string       `json:"company_slug" binding:"required"`
	ProblemSlug string       `json:"problem_slug" binding:"required"`
	Transcript  []ai.Message `json:"transcript"`
}

// InterviewTurn advances a mock interview by one interviewer message.
func (h *Handler) InterviewTurn(c *gin.Context) {
	var req interviewReq
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

	problem, err := h.Repo.GetProblemBySlug(c.Request.Context(), req.CompanySlug, req.ProblemSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "problem not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get problem", "err", err)
		response.InternalError(c, "")
		return
	}

	turn, err := h.AI.InterviewTurn(c.Request.Context(), req.Transcript, *company, *problem)
	if err != nil {
		h.Logger.Sugar().Errorw("interview flow failed", "problem", req.ProblemSlug, "err", err)
		response.UpstreamError(c, "interview turn failed")
		return
	}

	response.OK(c, turn)
}
