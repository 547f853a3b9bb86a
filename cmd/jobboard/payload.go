package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/session"
)

// readPosting loads a job posting from a JSON file.
func readPosting(path string) (models.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.JobPosting{}, fmt.Errorf("read posting: %w", err)
	}
	var posting models.JobPosting
	if err := json.Unmarshal(data, &posting); err != nil {
		return models.JobPosting{}, fmt.Errorf("decode posting %s: %w", path, err)
	}
	if strings.TrimSpace(posting.Title) == "" {
		return models.JobPosting{}, errors.New("posting needs a title")
	}
	for _, bound := range []*float64{posting.SalaryRange.Min, posting.SalaryRange.Max} {
		if bound != nil && *bound < 0 {
			return models.JobPosting{}, errors.New("posting salary bounds must not be negative")
		}
	}
	return posting, nil
}

// readPayload loads a JSON object to send as-is for registration or profile edits.
func readPayload(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("payload %s must be a JSON object", path)
	}
	return json.RawMessage(data), nil
}

// findJob returns the job with id from a listing, used as the fallback record when editing.
func findJob(jobs []models.Job, id string) (models.Job, bool) {
	for _, j := range jobs {
		if j.ID == id {
			return j, true
		}
	}
	return models.Job{}, false
}

// hasRole reports whether sess is signed in and passes any of checks.
func hasRole(sess *session.Session, checks ...func(*session.Session) bool) bool {
	if !sess.Authenticated() {
		return false
	}
	for _, ok := range checks {
		if ok(sess) {
			return true
		}
	}
	return false
}
