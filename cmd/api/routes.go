package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.GetCORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := app.Handler

	v1 := r.Group("/api/v1")
	v1.Use(app.OptionalAuthMiddleware())
	{
		v1.GET("/companies", h.ListCompanies)
		v1.GET("/companies/:slug", h.GetCompany)
		v1.POST("/companies", h.CreateCompany)
		v1.PATCH("/companies/:slug", h.RenameCompany)

		v1.GET("/companies/:slug/problems", h.ListCompanyProblems)
		v1.GET("/companies/:slug/problems/:problem_slug", h.GetProblem)
		v1.GET("/problems", h.ListAllProblems)
		v1.POST("/problems", h.CreateProblem)

		v1.POST("/import/problems", h.ImportProblems)
		v1.POST("/import/companies", h.ImportCompanies)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.POST("/bookmarks/:problem_id/toggle", h.ToggleBookmark)
		protected.GET("/bookmarks", h.ListBookmarks)
		protected.PUT("/problems/:problem_id/status", h.SetProblemStatus)
		protected.GET("/statuses", h.ListStatuses)

		protected.GET("/companies/:slug/strategy", h.GetStrategy)
		protected.POST("/companies/:slug/strategy", h.GenerateStrategy)
		protected.PATCH("/strategy/items", h.ToggleStrategyItem)

		protected.GET("/history", h.GetHistory)
		protected.PUT("/history", h.PutHistory)

		protected.POST("/ai/similar", h.SimilarProblems)
		protected.POST("/ai/flashcards", h.Flashcards)
		protected.POST("/ai/interview", h.InterviewTurn)
	}

	return r
}
