package models

import (
	"encoding/json"
	"math"
	"strconv"
)

type numberKind uint8

const (
	kindEmpty numberKind = iota
	kindValue
	kindText
)

// Number is a normalized numeric value: a number, the original text of a
// tagged value that failed to parse, or empty.
type Number struct {
	kind  numberKind
	value float64
	text  string
}

// EmptyNumber returns the absent/unrepresentable marker.
func EmptyNumber() Number { return Number{} }

// NumberOf wraps a plain float. NaN is not representable and yields the empty marker.
func NumberOf(v float64) Number {
	if math.IsNaN(v) {
		return Number{}
	}
	return Number{kind: kindValue, value: v}
}

// TextNumber keeps a raw string as-is. An empty string is the empty marker.
func TextNumber(s string) Number {
	if s == "" {
		return Number{}
	}
	return Number{kind: kindText, text: s}
}

func (n Number) IsEmpty() bool { return n.kind == kindEmpty }

// IsText reports whether n carries a string that could not be parsed as a number.
func (n Number) IsText() bool { return n.kind == kindText }

// Float64 returns the numeric value and whether n holds one.
func (n Number) Float64() (float64, bool) {
	if n.kind != kindValue {
		return 0, false
	}
	return n.value, true
}

// String renders numbers in shortest decimal form, text as-is, empty as "".
func (n Number) String() string {
	switch n.kind {
	case kindValue:
		if math.IsInf(n.value, 0) {
			if n.value < 0 {
				return "-Infinity"
			}
			return "Infinity"
		}
		return strconv.FormatFloat(n.value, 'f', -1, 64)
	case kindText:
		return n.text
	default:
		return ""
	}
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.kind == kindValue && !math.IsInf(n.value, 0) {
		return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
	}
	return json.Marshal(n.String())
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*n = NumberOf(t)
	case string:
		*n = TextNumber(t)
	default:
		*n = EmptyNumber()
	}
	return nil
}

// SalaryRange is the salary bounds derived from a job record.
type SalaryRange struct {
	Min Number `json:"min"`
	Max Number `json:"max"`
}

// Job is a normalized job record as returned by the job-board API
type Job struct {
	ID                string      `json:"_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Category          string      `json:"category"`
	Grade             string      `json:"grade"`
	Location          string      `json:"location"`
	Status            string      `json:"status,omitempty"`
	CompanyName       string      `json:"companyName,omitempty"`
	RequiredLanguages []string    `json:"requiredLanguages"`
	Skills            []string    `json:"skills"`
	WorkType          []string    `json:"workType"`
	CreatedAt         string      `json:"createdAt"`
	SalaryRange       SalaryRange `json:"salaryRange"`

	// Raw is the record as received, kept as the fallback source for later updates.
	Raw json.RawMessage `json:"-"`
}

// JobPosting is the payload for creating or editing a job
type JobPosting struct {
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	RequiredLanguages []string      `json:"requiredLanguages"`
	Grade             string        `json:"grade"`
	Skills            []string      `json:"skills"`
	Category          string        `json:"category"`
	SalaryRange       PostingSalary `json:"salaryRange"`
	Location          string        `json:"location"`
	WorkType          []string      `json:"workType"`
}

// PostingSalary sends unset bounds as null.
type PostingSalary struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Application represents a user's application to a job
type Application struct {
	ID          string `json:"_id"`
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}
