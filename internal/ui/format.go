package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/taxonomy"
)

// FormatSalary renders a normalized number with thousands separators.
// Text values are shown as received.
func FormatSalary(n models.Number) string {
	value, ok := n.Float64()
	if !ok {
		return n.String()
	}
	if math.IsInf(value, 0) {
		return n.String()
	}
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return "$" + humanize.Comma(int64(value))
	}
	return "$" + humanize.Commaf(value)
}

// FormatRange renders "min - max", leaving blank bounds out.
func FormatRange(r models.SalaryRange) string {
	lo, hi := FormatSalary(r.Min), FormatSalary(r.Max)
	switch {
	case lo == "" && hi == "":
		return "Not Available"
	case hi == "":
		return "from " + lo
	case lo == "":
		return "up to " + hi
	}
	return lo + " - " + hi
}

// truncateString truncates a string to the specified length and adds "..." if necessary
func truncateString(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

// JobTable builds table rows for a job listing.
func JobTable(jobs []models.Job) pterm.TableData {
	data := pterm.TableData{{"ID", "Title", "Company", "Category", "Grade", "Skills", "Salary", "Posted"}}
	for _, j := range jobs {
		data = append(data, []string{
			j.ID,
			truncateString(j.Title, 36),
			truncateString(j.CompanyName, 20),
			j.Category,
			j.Grade,
			truncateString(strings.Join(j.Skills, ", "), 30),
			FormatRange(j.SalaryRange),
			j.CreatedAt,
		})
	}
	return data
}

func ApplicationTable(apps []models.Application) pterm.TableData {
	data := pterm.TableData{{"ID", "Job", "Company", "Status", "Applied"}}
	for _, a := range apps {
		data = append(data, []string{a.ID, a.JobTitle, a.CompanyName, a.Status, a.CreatedAt})
	}
	return data
}

// TaxonomyTable lists every language/category pair with its skills and job count.
func TaxonomyTable(t *taxonomy.Taxonomy) pterm.TableData {
	data := pterm.TableData{{"Language", "Category", "Skills", "Jobs"}}
	for _, lang := range t.Languages {
		for _, cat := range t.Categories {
			skills := t.AvailableSkills(lang, cat)
			count := t.CategoryCount(cat, lang)
			if len(skills) == 0 && count == 0 {
				continue
			}
			data = append(data, []string{lang, cat, strings.Join(skills, ", "), strconv.Itoa(count)})
		}
	}
	return data
}

// RenderTable prints table data with a header row.
func RenderTable(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// PrintJobs prints jobs in the long form used when -table is not set.
func PrintJobs(jobs []models.Job) {
	for _, j := range jobs {
		pterm.Printfln("Title: %s", j.Title)
		if j.CompanyName != "" {
			pterm.Printfln("Company: %s", j.CompanyName)
		}
		pterm.Printfln("Category: %s  Grade: %s  Location: %s", j.Category, j.Grade, j.Location)
		if len(j.Skills) > 0 {
			pterm.Printfln("Skills: %s", strings.Join(j.Skills, ", "))
		}
		pterm.Printfln("Salary: %s - %s", ColorizeSalary(j.SalaryRange.Min), ColorizeSalary(j.SalaryRange.Max))
		if j.CreatedAt != "" {
			pterm.Printfln("Posted: %s", j.CreatedAt)
		}
		pterm.Printfln("ID: %s", j.ID)
		pterm.Println(strings.Repeat("-", 80))
	}
}
