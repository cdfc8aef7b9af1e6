package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retroboard/internal/auth"
	"retroboard/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	analyticsHandler *handler.AnalyticsHandler,
	assistantHandler *handler.AssistantHandler,
	estimateHandler *handler.EstimateHandler,
	offerHandler *handler.OfferHandler,
	pmHandler *handler.PMHandler,
	pool *pgxpool.Pool,
	jwtSecret string,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public: the whole dashboard is readable without auth
	r.POST("/auth/edit-mode", authHandler.EnterEditMode)

	r.GET("/projects", projectHandler.List)
	r.GET("/projects/:id", projectHandler.Get)
	r.GET("/analytics", analyticsHandler.GetSummary)
	r.POST("/assistant/chat", assistantHandler.Chat)

	r.GET("/estimates", estimateHandler.List)
	r.GET("/pm/jobs/:id", pmHandler.GetJob) // pollers do not carry the edit token
	r.GET("/pm/generations", pmHandler.ListGenerations)
	r.GET("/pm/templates", pmHandler.ListTemplates)

	// Writes require the edit capability token
	edit := r.Group("/")
	edit.Use(auth.EditMiddleware(jwtSecret))
	{
		edit.POST("/projects", projectHandler.Create)
		edit.PUT("/projects/:id", projectHandler.Update)
		edit.DELETE("/projects/:id", projectHandler.Delete)

		edit.PUT("/projects/:id/profile-hours", projectHandler.UpsertProfileHours)
		edit.DELETE("/projects/:id/profile-hours/:hoursId", projectHandler.DeleteProfileHours)

		edit.POST("/projects/:id/scope-items", projectHandler.CreateScopeItem)
		edit.PUT("/projects/:id/scope-items/:itemId", projectHandler.UpdateScopeItem)
		edit.DELETE("/projects/:id/scope-items/:itemId", projectHandler.DeleteScopeItem)

		edit.POST("/projects/:id/external-costs", projectHandler.CreateExternalCost)
		edit.PUT("/projects/:id/external-costs/:costId", projectHandler.UpdateExternalCost)
		edit.DELETE("/projects/:id/external-costs/:costId", projectHandler.DeleteExternalCost)

		edit.POST("/projects/:id/change-requests", projectHandler.CreateChangeRequest)
		edit.PUT("/projects/:id/change-requests/:crId", projectHandler.UpdateChangeRequest)
		edit.DELETE("/projects/:id/change-requests/:crId", projectHandler.DeleteChangeRequest)
		edit.PUT("/projects/:id/change-requests/:crId/hours", projectHandler.UpsertChangeRequestHours)
		edit.DELETE("/projects/:id/change-requests/:crId/hours/:hoursId", projectHandler.DeleteChangeRequestHours)

		edit.POST("/estimates/generate", estimateHandler.Generate)
		edit.DELETE("/estimates/:id", estimateHandler.Delete)

		edit.POST("/offers/parse", offerHandler.Parse)
		edit.POST("/offers/extract-text", offerHandler.ExtractText)

		edit.POST("/pm/jobs", pmHandler.SubmitJob)
		edit.POST("/pm/generations", pmHandler.SaveGeneration)
		edit.DELETE("/pm/generations/:id", pmHandler.DeleteGeneration)
		edit.POST("/pm/templates", pmHandler.SaveTemplate)
		edit.DELETE("/pm/templates/:id", pmHandler.DeleteTemplate)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
