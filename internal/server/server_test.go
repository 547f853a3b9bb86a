package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fr4nk3nst1ner/jobboard/internal/client"
	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/taxonomy"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource struct {
	queries   []string
	companies []string
	jobs      []models.Job
	err       error
}

func (s *stubSource) SearchJobs(_ context.Context, pathAndQuery string) ([]models.Job, error) {
	s.queries = append(s.queries, pathAndQuery)
	return s.jobs, s.err
}

func (s *stubSource) CompanyJobs(_ context.Context, id string) ([]models.Job, error) {
	s.companies = append(s.companies, id)
	return s.jobs, s.err
}

func serve(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := New(nil, &stubSource{}, Options{})
	rec := serve(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestTaxonomyEndpoint(t *testing.T) {
	s := New(taxonomy.Default(), &stubSource{}, Options{})
	rec := serve(t, s, http.MethodGet, "/api/taxonomy", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got taxonomy.Taxonomy
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.Languages, []string{"JS", "Python", "Java", "C#"}) {
		t.Errorf("languages = %v", got.Languages)
	}
	if got.Counts.Category["BackendPython"] != 4 {
		t.Errorf("counts = %+v", got.Counts)
	}
}

func TestResolveEndpoint(t *testing.T) {
	s := New(taxonomy.Default(), &stubSource{}, Options{})

	t.Run("prunes skills", func(t *testing.T) {
		rec := serve(t, s, http.MethodPost, "/api/filters/resolve",
			`{"language": "Python", "category": "Backend", "skills": ["Django", "React"]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var got resolveResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(got.State.Skills, []string{"Django"}) {
			t.Errorf("skills = %v", got.State.Skills)
		}
		if !slices.Equal(got.AvailableSkills, []string{"Django", "Flask", "FastAPI"}) {
			t.Errorf("available = %v", got.AvailableSkills)
		}
		if got.Query != "/jobs?language=Python&category=Backend&skills=Django&page=1" {
			t.Errorf("query = %s", got.Query)
		}
	})

	t.Run("negative salary", func(t *testing.T) {
		rec := serve(t, s, http.MethodPost, "/api/filters/resolve", `{"salaryMin": -1}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(t, s, http.MethodPost, "/api/filters/resolve", `{`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestListJobsResolvesBeforeForwarding(t *testing.T) {
	src := &stubSource{jobs: []models.Job{{ID: "j1", Title: "Frontend dev"}}}
	s := New(taxonomy.Default(), src, Options{})

	rec := serve(t, s, http.MethodGet, "/api/jobs?language=Python&category=Frontend&skills=React&grade=Senior", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	want := "/jobs?language=Python&grade=Senior&category=Frontend&page=1"
	if len(src.queries) != 1 || src.queries[0] != want {
		t.Errorf("queries = %v, want %s", src.queries, want)
	}
	var jobs []models.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Errorf("jobs = %+v", jobs)
	}
}

func TestCompanyJobsEmptyList(t *testing.T) {
	src := &stubSource{}
	s := New(taxonomy.Default(), src, Options{})

	rec := serve(t, s, http.MethodGet, "/api/companies/c7/jobs", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("got %d %s", rec.Code, rec.Body.String())
	}
	if len(src.companies) != 1 || src.companies[0] != "c7" {
		t.Errorf("companies = %v", src.companies)
	}
}

func TestUpstreamFailure(t *testing.T) {
	src := &stubSource{err: &client.APIError{Method: "GET", Path: "/jobs", StatusCode: 500, Message: "db down"}}
	s := New(taxonomy.Default(), src, Options{})

	rec := serve(t, s, http.MethodGet, "/api/jobs", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "db down" || body["status"] != float64(500) {
		t.Errorf("body = %v", body)
	}
}

func TestBasicAuth(t *testing.T) {
	s := New(taxonomy.Default(), &stubSource{}, Options{Username: "admin", Password: "pw"})

	if rec := serve(t, s, http.MethodGet, "/api/taxonomy", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d", rec.Code)
	}
	if rec := serve(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/taxonomy", nil)
	req.SetBasicAuth("admin", "pw")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d", rec.Code)
	}
}

func TestListJobsRejectsInvalidSalary(t *testing.T) {
	for _, raw := range []string{"[NaN,]", "[,+Inf]", "[NaN,-5]", "[-1,]", "50000"} {
		t.Run(raw, func(t *testing.T) {
			src := &stubSource{}
			s := New(taxonomy.Default(), src, Options{})

			rec := serve(t, s, http.MethodGet, "/api/jobs?salary="+url.QueryEscape(raw), "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d", rec.Code)
			}
			if len(src.queries) != 0 {
				t.Errorf("forwarded %v", src.queries)
			}
		})
	}
}
