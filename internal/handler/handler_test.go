package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arvindri2005/company-leetcode-explorer/internal/ai"
	"github.com/arvindri2005/company-leetcode-explorer/internal/auth"
	"github.com/arvindri2005/company-leetcode-explorer/internal/repository"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubStore embeds the Store interface and overrides only what a test
// exercises; calling anything else panics, which is the point.
type stubStore struct {
	Store
	company   *model.Company
	problems  []model.Problem
	statuses  map[uuid.UUID]model.ProblemStatus
	bookmarks map[uuid.UUID]bool
	strategy  *model.StrategyList
}

func (s *stubStore) GetCompanyBySlug(_ context.Context, slug string) (*model.Company, error) {
	if s.company == nil || s.company.Slug != slug {
		return nil, repository.ErrNotFound
	}
	return s.company, nil
}

func (s *stubStore) ListProblems(_ context.Context, companyID uuid.UUID) ([]model.Problem, error) {
	var out []model.Problem
	for _, p := range s.problems {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) ListAllProblems(_ context.Context) ([]model.Problem, error) {
	return s.problems, nil
}

func (s *stubStore) GetProblem(_ context.Context, id uuid.UUID) (*model.Problem, error) {
	for i := range s.problems {
		if s.problems[i].ProblemID == id {
			return &s.problems[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) GetStatusMap(_ context.Context, _ string, _ uuid.UUID) (map[uuid.UUID]model.ProblemStatus, error) {
	return s.statuses, nil
}

func (s *stubStore) ToggleBookmark(_ context.Context, _ string, p *model.Problem) (bool, error) {
	if s.bookmarks == nil {
		s.bookmarks = map[uuid.UUID]bool{}
	}
	s.bookmarks[p.ProblemID] = !s.bookmarks[p.ProblemID]
	return s.bookmarks[p.ProblemID], nil
}

func (s *stubStore) SaveStrategyList(_ context.Context, list *model.StrategyList) error {
	s.strategy = list
	return nil
}

type stubAI struct {
	AIService
	similar  []ai.SimilarProblem
	strategy *ai.Strategy
	err      error
}

func (s *stubAI) SimilarProblems(_ context.Context, _ model.Problem, _ []model.Problem) ([]ai.SimilarProblem, error) {
	return s.similar, s.err
}

func (s *stubAI) CompanyStrategy(_ context.Context, _ model.Company, _ []model.Problem, _ string) (*ai.Strategy, error) {
	return s.strategy, s.err
}

func newTestHandler(store Store, svc AIService) *Handler {
	return &Handler{
		Logger: zap.NewNop(),
		Repo:   store,
		AI:     svc,
	}
}

func fixtureCompany() (*model.Company, []model.Problem) {
	company := &model.Company{CompanyID: uuid.New(), Name: "Google", Slug: "google"}
	mk := func(title string, d model.Difficulty, tags ...string) model.Problem {
		return model.Problem{
			ProblemID:   uuid.New(),
			CompanyID:   company.CompanyID,
			Title:       title,
			Difficulty:  d,
			Tags:        tags,
			CompanySlug: company.Slug,
		}
	}
	return company, []model.Problem{
		mk("Two Sum", model.DifficultyEasy, "Array", "Hash Table"),
		mk("Merge Intervals", model.DifficultyMedium, "Array", "Sorting"),
		mk("Word Ladder", model.DifficultyHard, "Graph", "BFS"),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Page       int    `json:"page"`
		Total      int    `json:"total"`
		TotalPages int    `json:"total_pages"`
		NextCursor string `json:"next_cursor"`
		HasMore    bool   `json:"has_more"`
	} `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("claims", &auth.Claims{UserID: userID})
		c.Next()
	}
}

func TestListCompanyProblemsFiltersAndPages(t *testing.T) {
	company, problems := fixtureCompany()
	h := newTestHandler(&stubStore{company: company, problems: problems}, nil)

	r := gin.New()
	r.GET("/companies/:slug/problems", h.ListCompanyProblems)

	w, env := doRequest(t, r, "GET", "/companies/google/problems?search=array&sort=title&page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var items []model.Problem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Merge Intervals", items[0].Title)
	assert.Equal(t, "Two Sum", items[1].Title)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Equal(t, 1, env.Meta.TotalPages)
}

func TestListCompanyProblemsUnknownCompanyIsEmptyPage(t *testing.T) {
	h := newTestHandler(&stubStore{}, nil)

	r := gin.New()
	r.GET("/companies/:slug/problems", h.ListCompanyProblems)

	w, env := doRequest(t, r, "GET", "/companies/nonexistent/problems", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Meta.TotalPages)

	var items []model.Problem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Empty(t, items)
}

func TestListCompanyProblemsRejectsBadFilter(t *testing.T) {
	company, problems := fixtureCompany()
	h := newTestHandler(&stubStore{company: company, problems: problems}, nil)

	r := gin.New()
	r.GET("/companies/:slug/problems", h.ListCompanyProblems)

	w, env := doRequest(t, r, "GET", "/companies/google/problems?difficulty=Nightmare", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestListAllProblemsCursorWalk(t *testing.T) {
	company, problems := fixtureCompany()
	h := newTestHandler(&stubStore{company: company, problems: problems}, nil)

	r := gin.New()
	r.GET("/problems", h.ListAllProblems)

	_, first := doRequest(t, r, "GET", "/problems?page_size=2&sort=title", nil)
	require.True(t, first.Meta.HasMore)
	require.NotEmpty(t, first.Meta.NextCursor)

	_, second := doRequest(t, r, "GET", "/problems?page_size=2&sort=title&cursor="+first.Meta.NextCursor, nil)
	assert.False(t, second.Meta.HasMore)

	var items []model.Problem
	require.NoError(t, json.Unmarshal(second.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Word Ladder", items[0].Title)
}

func TestToggleBookmarkRequiresAuth(t *testing.T) {
	company, problems := fixtureCompany()
	h := newTestHandler(&stubStore{company: company, problems: problems}, nil)

	r := gin.New()
	r.POST("/bookmarks/:problem_id/toggle", h.ToggleBookmark)

	w, _ := doRequest(t, r, "POST", "/bookmarks/"+problems[0].ProblemID.String()+"/toggle", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleBookmarkFlips(t *testing.T) {
	company, problems := fixtureCompany()
	h := newTestHandler(&stubStore{company: company, problems: problems}, nil)

	r := gin.New()
	r.Use(asUser("user-1"))
	r.POST("/bookmarks/:problem_id/toggle", h.ToggleBookmark)

	path := "/bookmarks/" + problems[0].ProblemID.String() + "/toggle"

	_, env := doRequest(t, r, "POST", path, nil)
	var state map[string]bool
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.True(t, state["bookmarked"])

	_, env = doRequest(t, r, "POST", path, nil)
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.False(t, state["bookmarked"])
}

func TestSimilarProblemsEmptyIsSuccess(t *testing.T) {
	company, problems := fixtureCompany()
	h := newTestHandler(
		&stubStore{company: company, problems: problems},
		&stubAI{similar: []ai.SimilarProblem{}},
	)

	r := gin.New()
	r.Use(asUser("user-1"))
	r.POST("/ai/similar", h.SimilarProblems)

	w, env := doRequest(t, r, "POST", "/ai/similar", gin.H{"problem_id": problems[0].ProblemID})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var got []ai.SimilarProblem
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Empty(t, got)
}

func TestGenerateStrategySaves(t *testing.T) {
	company, problems := fixtureCompany()
	store := &stubStore{company: company, problems: problems}
	h := newTestHandler(store, &stubAI{strategy: &ai.Strategy{
		Markdown:    "## Plan",
		FocusTopics: []string{"Graphs", "Arrays", "DP"},
		Checklist:   []string{"Solve Word Ladder"},
	}})

	r := gin.New()
	r.Use(asUser("user-1"))
	r.POST("/companies/:slug/strategy", h.GenerateStrategy)

	w, env := doRequest(t, r, "POST", "/companies/google/strategy", gin.H{"target_level": "senior"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	require.NotNil(t, store.strategy)
	assert.Equal(t, "user-1", store.strategy.UserID)
	assert.Equal(t, company.CompanyID, store.strategy.CompanyID)
	require.Len(t, store.strategy.Checklist, 1)
	assert.False(t, store.strategy.Checklist[0].Done)
}

func TestGenerateStrategyUpstreamFailure(t *testing.T) {
	company, problems := fixtureCompany()
	h := newTestHandler(
		&stubStore{company: company, problems: problems},
		&stubAI{err: assert.AnError},
	)

	r := gin.New()
	r.Use(asUser("user-1"))
	r.POST("/companies/:slug/strategy", h.GenerateStrategy)

	w, env := doRequest(t, r, "POST", "/companies/google/strategy", gin.H{})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UPSTREAM_ERROR", env.Error.Code)
}
