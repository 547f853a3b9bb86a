package normalize

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// DateLayout is how record timestamps are rendered.
const DateLayout = "Jan 2, 2006"

var ErrInvalidJSON = errors.New("response is not valid JSON")

// ResolveID returns the record identifier, trying _id.$oid, _id, id.$oid, id
// and _id._id in that order.
func ResolveID(r gjson.Result) string {
	id := field(r, "_id")
	other := field(r, "id")
	for _, c := range []gjson.Result{field(id, "$oid"), id, field(other, "$oid"), other, field(id, "_id")} {
		if s := scalar(c); s != "" {
			return s
		}
	}
	return ""
}

func scalar(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	}
	return ""
}

// FormatDate renders ISO strings, epoch milliseconds and {"$date": ...}
// wrappers. Anything unparseable yields "".
func FormatDate(r gjson.Result) string {
	t, ok := parseDate(r)
	if !ok {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func parseDate(r gjson.Result) (time.Time, bool) {
	switch r.Type {
	case gjson.Number:
		return time.UnixMilli(int64(r.Num)), true
	case gjson.String:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, r.Str); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	if d := field(r, "$date"); d.Exists() {
		return parseDate(d)
	}
	if n := field(r, "$numberLong"); n.Type == gjson.String {
		ms, err := strconv.ParseInt(n.Str, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}

// PlainText strips markup from a job description. Text without tags is only trimmed.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		if s := scalar(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Job normalizes a single job record. Records without an identifier are
// rejected. fallback supplies salary bounds missing from raw.
func Job(raw, fallback gjson.Result) (models.Job, bool) {
	if !raw.IsObject() {
		return models.Job{}, false
	}
	id := ResolveID(raw)
	if id == "" {
		return models.Job{}, false
	}

	company := raw.Get("companyName").String()
	if company == "" {
		company = field(raw.Get("company"), "name").String()
	}

	return models.Job{
		ID:                id,
		Title:             raw.Get("title").String(),
		Description:       PlainText(raw.Get("description").String()),
		Category:          raw.Get("category").String(),
		Grade:             raw.Get("grade").String(),
		Location:          raw.Get("location").String(),
		Status:            raw.Get("status").String(),
		CompanyName:       company,
		RequiredLanguages: stringList(raw.Get("requiredLanguages")),
		Skills:            stringList(raw.Get("skills")),
		WorkType:          stringList(raw.Get("workType")),
		CreatedAt:         FormatDate(raw.Get("createdAt")),
		SalaryRange:       DeriveSalaryRange(raw, fallback),
		Raw:               []byte(raw.Raw),
	}, true
}

// records extracts the list of records from a response body: either a bare
// array or an object wrapping it under key. Other shapes yield nothing.
func records(body []byte, key string) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(body)
	switch {
	case root.IsArray():
		return root.Array(), nil
	case root.IsObject() && root.Get(key).IsArray():
		return root.Get(key).Array(), nil
	}
	return nil, nil
}

// Jobs normalizes a job listing response, dropping empty entries and records
// without an identifier.
func Jobs(body []byte) ([]models.Job, error) {
	items, err := records(body, "jobs")
	if err != nil {
		return nil, err
	}
	jobs := make([]models.Job, 0, len(items))
	for _, item := range items {
		if job, ok := Job(item, gjson.Result{}); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// Application normalizes one application record.
func Application(raw gjson.Result) (models.Application, bool) {
	if !raw.IsObject() {
		return models.Application{}, false
	}
	return models.Application{
		ID:          ResolveID(raw),
		JobTitle:    raw.Get("jobTitle").String(),
		CompanyName: raw.Get("companyName").String(),
		Status:      raw.Get("status").String(),
		CreatedAt:   FormatDate(raw.Get("createdAt")),
	}, true
}

func Applications(body []byte) ([]models.Application, error) {
	items, err := records(body, "applications")
	if err != nil {
		return nil, err
	}
	apps := make([]models.Application, 0, len(items))
	for _, item := range items {
		if app, ok := Application(item); ok {
			apps = append(apps, app)
		}
	}
	return apps, nil
}
