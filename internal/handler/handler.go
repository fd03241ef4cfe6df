package handler

import (
	"context"

	"github.com/arvindri2005/company-leetcode-explorer/internal/ai"
	"github.com/arvindri2005/company-leetcode-explorer/internal/auth"
	"github.com/arvindri2005/company-leetcode-explorer/internal/cache"
	"github.com/arvindri2005/company-leetcode-explorer/internal/config"
	"github.com/arvindri2005/company-leetcode-explorer/internal/fetcher"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the document-store surface the handlers depend on.
// *repository.Repository satisfies it; tests supply stubs.
type Store interface {
	ListProblems(ctx context.Context, companyID uuid.UUID) ([]model.Problem, error)
	ListAllProblems(ctx context.Context) ([]model.Problem, error)
	GetProblem(ctx context.Context, problemID uuid.UUID) (*model.Problem, error)
	GetProblemBySlug(ctx context.Context, companySlug, problemSlug string) (*model.Problem, error)
	UpsertProblem(ctx context.Context, companyID uuid.UUID, companySlug, title string, difficulty model.Difficulty, tags []string, link string, lastAsked model.LastAskedPeriod) (*model.UpsertResult, error)

	GetCompany(ctx context.Context, companyID uuid.UUID) (*model.Company, error)
	GetCompanyBySlug(ctx context.Context, slug string) (*model.Company, error)
	ListCompanies(ctx context.Context, search string, limit, offset int) ([]model.Company, int, error)
	UpsertCompany(ctx context.Context, req model.CreateCompanyReq) (*model.CompanyUpsertResult, error)
	RenameCompany(ctx context.Context, companyID uuid.UUID, newName string) error
	RecomputeCompanyAggregates(ctx context.Context, companyID uuid.UUID) error

	ToggleBookmark(ctx context.Context, userID string, p *model.Problem) (bool, error)
	ListBookmarks(ctx context.Context, userID string) ([]model.Bookmark, error)
	SetProblemStatus(ctx context.Context, userID string, p *model.Problem, status model.ProblemStatus) error
	ListStatuses(ctx context.Context, userID string) ([]model.StatusRecord, error)
	GetStatusMap(ctx context.Context, userID string, companyID uuid.UUID) (map[uuid.UUID]model.ProblemStatus, error)

	SaveStrategyList(ctx context.Context, list *model.StrategyList) error
	GetStrategyList(ctx context.Context, userID string, companyID uuid.UUID) (*model.StrategyList, error)
	ToggleStrategyItem(ctx context.Context, userID string, companyID uuid.UUID, index int, done bool) (*model.StrategyList, error)

	ListHistory(ctx context.Context, userID string, kind model.HistoryKind) ([]model.HistoryEntry, error)
	PutHistory(ctx context.Context, userID string, kind model.HistoryKind, entries []model.HistoryEntry) error
}

// AIService is the flow surface of the Groq client.
type AIService interface {
	SimilarProblems(ctx context.Context, target model.Problem, candidates []model.Problem) ([]ai.SimilarProblem, error)
	CompanyStrategy(ctx context.Context, company model.Company, problems []model.Problem, targetLevel string) (*ai.Strategy, error)
	Flashcards(ctx context.Context, problems []model.Problem, count int) ([]ai.Flashcard, error)
	InterviewTurn(ctx context.Context, transcript []ai.Message, company model.Company, problem model.Problem) (*ai.Turn, error)
}

type Handler struct {
	Logger   *zap.Logger
	Repo     Store
	Cache    *cache.Cache
	CacheTTL config.CacheConfig
	AI       AIService
	Fetcher  *fetcher.Fetcher
}

// GetClaimsFromContext retrieves the verified claims set by the auth
// middleware, or nil when the request is anonymous.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// userID is the optional-auth variant: empty string when anonymous.
func (h *Handler) userID(c *gin.Context) string {
	if claims := h.GetClaimsFromContext(c); claims != nil {
		return claims.UserID
	}
	return ""
}
