package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/filters"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/taxonomy"
)

// JobSource is the part of the API client the server forwards to.
type JobSource interface {
	SearchJobs(ctx context.Context, pathAndQuery string) ([]models.Job, error)
	CompanyJobs(ctx context.Context, companyID string) ([]models.Job, error)
}

// Options configures the local API.
type Options struct {
	// Username and Password protect the /api group with basic auth when both are set.
	Username string
	Password string
}

// Server exposes the filter core and a job listing proxy over HTTP.
type Server struct {
	tax    *taxonomy.Taxonomy
	jobs   JobSource
	router *gin.Engine
}

func New(tax *taxonomy.Taxonomy, jobs JobSource, opts Options) *Server {
	if tax == nil {
		tax = taxonomy.Default()
	}
	s := &Server{tax: tax, jobs: jobs}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/health", s.health)

	api := r.Group("/api")
	if opts.Username != "" && opts.Password != "" {
		api.Use(gin.BasicAuthForRealm(gin.Accounts{opts.Username: opts.Password}, "jobboard"))
	}
	{
		api.GET("/taxonomy", s.taxonomy)
		api.POST("/filters/resolve", s.resolve)
		api.GET("/jobs", s.listJobs)
		api.GET("/companies/:id/jobs", s.companyJobs)
	}

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the given port until the server fails.
func (s *Server) Run(port int, protected bool) error {
	addr := fmt.Sprintf(":%d", port)
	if protected {
		log.Printf("[server] listening on http://localhost%s (api authentication enabled)", addr)
	} else {
		log.Printf("[server] listening on http://localhost%s (all endpoints public)", addr)
	}
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) taxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, s.tax)
}

type resolveResponse struct {
	State           filters.State `json:"state"`
	AvailableSkills []string      `json:"availableSkills"`
	Query           string        `json:"query"`
}

func (s *Server) resolve(c *gin.Context) {
	var req filters.State
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter state: " + err.Error()})
		return
	}
	state, available := filters.Resolve(s.tax, req)
	c.JSON(http.StatusOK, resolveResponse{
		State:           state,
		AvailableSkills: available,
		Query:           filters.BuildJobsQuery(state, ""),
	})
}

func (s *Server) listJobs(c *gin.Context) {
	req, err := filters.FromQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter state: " + err.Error()})
		return
	}
	state, _ := filters.Resolve(s.tax, req)
	jobs, err := s.jobs.SearchJobs(c.Request.Context(), filters.BuildJobsQuery(state, ""))
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobsOrEmpty(jobs))
}

func (s *Server) companyJobs(c *gin.Context) {
	jobs, err := s.jobs.CompanyJobs(c.Request.Context(), c.Param("id"))
	if err != nil {
		upstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobsOrEmpty(jobs))
}

func upstreamError(c *gin.Context, err error) {
	log.Printf("[server] upstream: %v", err)
	body := gin.H{"error": err.Error()}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		body["error"] = apiErr.Message
		body["status"] = apiErr.StatusCode
	}
	c.JSON(http.StatusBadGateway, body)
}

func jobsOrEmpty(jobs []models.Job) []models.Job {
	if jobs == nil {
		return []models.Job{}
	}
	return jobs
}
