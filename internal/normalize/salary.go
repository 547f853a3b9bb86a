package normalize

import (
	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// DeriveSalaryRange resolves salary bounds from every salary shape the
// backend has produced over time. For each bound the first candidate that
// coerces to a non-empty value wins:
//
//	min: salaryRange.min, salaryRange.from, salaryRange[0], salary.min, salary[0], salaryMin, fallback.salaryRange.min
//	max: salaryRange.max, salaryRange.to,   salaryRange[1], salary.max, salary[1], salaryMax, fallback.salaryRange.max
//
// fallback is usually the previously stored version of the same record; pass
// an empty gjson.Result when there is none.
func DeriveSalaryRange(job, fallback gjson.Result) models.SalaryRange {
	rng := job.Get("salaryRange")
	salary := job.Get("salary")
	fallbackRange := fallback.Get("salaryRange")

	return models.SalaryRange{
		Min: firstNumber(
			field(rng, "min"),
			field(rng, "from"),
			element(rng, 0),
			field(salary, "min"),
			element(salary, 0),
			job.Get("salaryMin"),
			field(fallbackRange, "min"),
		),
		Max: firstNumber(
			field(rng, "max"),
			field(rng, "to"),
			element(rng, 1),
			field(salary, "max"),
			element(salary, 1),
			job.Get("salaryMax"),
			field(fallbackRange, "max"),
		),
	}
}

func firstNumber(candidates ...gjson.Result) models.Number {
	for _, c := range candidates {
		if n := CoerceResult(c); !n.IsEmpty() {
			return n
		}
	}
	return models.EmptyNumber()
}

// field reads a key only from objects.
func field(r gjson.Result, key string) gjson.Result {
	if !r.IsObject() {
		return gjson.Result{}
	}
	return r.Map()[key]
}

// element reads an index only from arrays.
func element(r gjson.Result, i int) gjson.Result {
	if !r.IsArray() {
		return gjson.Result{}
	}
	items := r.Array()
	if i >= len(items) {
		return gjson.Result{}
	}
	return items[i]
}
