package jobs

import (
	"context"
	"fmt"
	"time"
)

// Job is the normalized posting shape shared by all providers.
type Job struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Location       string  `json:"location"`
	Description    string  `json:"description"`
	SalaryMin      float64 `json:"salary_min,omitempty"`
	SalaryMax      float64 `json:"salary_max,omitempty"`
	SalaryCurrency string  `json:"salary_currency,omitempty"`
	Category       string  `json:"category"`
	URL            string  `json:"url"`
	Created        string  `json:"created"`
	ContractTime   string  `json:"contract_time,omitempty"`
	ContractType   string  `json:"contract_type,omitempty"`
}

// Provider is the port for job-board search backends.
// Implementations return transport errors as-is; substituting mock or
// empty data on failure is the caller's documented decision.
type Provider interface {
	Search(ctx context.Context, keywords []string, location string) ([]Job, error)
	Categories(ctx context.Context) ([]string, error)
}

// Placeholders for fields a provider did not supply.
const (
	UnknownCompany  = "Unknown Company"
	RemoteLocation  = "Remote"
	GeneralCategory = "General"
)

// Mock returns the fixed fallback set used when a provider is unreachable.
func Mock(keywords []string) []Job {
	_ = keywords // kept for future keyword-aware mocks
	return []Job{
		{
			ID:             "1",
			Title:          "Software Developer",
			Company:        "Tech Corp",
			Location:       "Atlanta, US",
			Description:    "Looking for experienced developer with React and Node.js skills.",
			SalaryMin:      80000,
			SalaryMax:      120000,
			SalaryCurrency: "USD",
			Category:       "IT Jobs",
			URL:            "https://example.com/job1",
			Created:        time.Now().UTC().Format(time.RFC3339),
			ContractTime:   "full_time",
			ContractType:   "permanent",
		},
	}
}

// FormatSalary renders the salary range for display, empty when unknown.
func (j Job) FormatSalary() string {
	if j.SalaryMin <= 0 && j.SalaryMax <= 0 {
		return ""
	}
	currency := j.SalaryCurrency
	if currency == "" {
		currency = "USD"
	}
	if j.SalaryMin > 0 && j.SalaryMax > 0 {
		return fmt.Sprintf("%.0f - %.0f %s", j.SalaryMin, j.SalaryMax, currency)
	}
	if j.SalaryMin > 0 {
		return fmt.Sprintf("from %.0f %s", j.SalaryMin, currency)
	}
	return fmt.Sprintf("up to %.0f %s", j.SalaryMax, currency)
}
