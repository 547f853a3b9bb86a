package filters

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const jobsPath = "/jobs"

// BuildJobsQuery serializes a filter state into the path and query for the
// job listing endpoint. Parameters appear only for populated fields, in a
// fixed order, followed by page=1. searchTerm overrides s.SearchTerm when set.
func BuildJobsQuery(s State, searchTerm string) string {
	if searchTerm == "" {
		searchTerm = s.SearchTerm
	}

	var params []string
	add := func(key, value string) {
		if value != "" {
			params = append(params, key+"="+value)
		}
	}

	add("language", escape(s.Language))
	add("grade", joinEscaped(s.Seniority))
	add("category", escape(s.Category))
	add("skills", joinEscaped(s.Skills))
	if lo, hi := formatBound(s.SalaryMin), formatBound(s.SalaryMax); lo != "" || hi != "" {
		params = append(params, "salary=["+lo+","+hi+"]")
	}
	add("search", escape(strings.TrimSpace(searchTerm)))
	params = append(params, "page=1")

	return jobsPath + "?" + strings.Join(params, "&")
}

func escape(v string) string {
	return url.QueryEscape(v)
}

func joinEscaped(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, escape(v))
		}
	}
	return strings.Join(parts, ",")
}

// formatBound renders a salary bound; unset, negative and non-finite bounds render empty.
func formatBound(v *float64) string {
	if !validBound(v) {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func validBound(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

var ErrInvalidBound = errors.New("salary bound must be a finite, non-negative number")

// ParseBound reads one salary bound. A blank string is an unset bound.
func ParseBound(v string) (*float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !validBound(&f) {
		return nil, fmt.Errorf("%q: %w", v, ErrInvalidBound)
	}
	return &f, nil
}

// FromQuery reads a filter state from request parameters using the same keys
// BuildJobsQuery emits. A malformed salary parameter is an error.
func FromQuery(q url.Values) (State, error) {
	s := State{
		Language:   q.Get("language"),
		Category:   q.Get("category"),
		Seniority:  splitList(q.Get("grade")),
		Skills:     splitList(q.Get("skills")),
		SearchTerm: q.Get("search"),
	}
	var err error
	s.SalaryMin, s.SalaryMax, err = parseSalary(q.Get("salary"))
	if err != nil {
		return State{}, err
	}
	return s, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSalary reads "[min,max]" with either bound optionally blank.
func parseSalary(v string) (*float64, *float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil, nil
	}
	if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		return nil, nil, fmt.Errorf("salary %q: want [min,max]", v)
	}
	lo, hi, ok := strings.Cut(v[1:len(v)-1], ",")
	if !ok {
		return nil, nil, fmt.Errorf("salary %q: want [min,max]", v)
	}
	floor, err := ParseBound(lo)
	if err != nil {
		return nil, nil, fmt.Errorf("salary min %w", err)
	}
	ceil, err := ParseBound(hi)
	if err != nil {
		return nil, nil, fmt.Errorf("salary max %w", err)
	}
	return floor, ceil, nil
}
