package adzuna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkrylov/resume-analyzer/pkg/jobs"
)

// Client queries the Adzuna job board and normalizes its flat results
// array into the common job record shape.
type Client struct {
	AppID   string
	AppKey  string
	Country string
	BaseURL string
	httpDo  *http.Client
}

func New(appID, appKey, country string) *Client {
	if country == "" {
		country = "us"
	}
	return &Client{
		AppID:   appID,
		AppKey:  appKey,
		Country: country,
		BaseURL: "https://api.adzuna.com/v1/api/jobs",
		httpDo: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// adzunaJob mirrors the provider's nested response fields.
type adzunaJob struct {
	ID      json.Number `json:"id"`
	Title   string      `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description    string  `json:"description"`
	SalaryMin      float64 `json:"salary_min"`
	SalaryMax      float64 `json:"salary_max"`
	SalaryCurrency string  `json:"salary_currency"`
	Category       struct {
		Label string `json:"label"`
	} `json:"category"`
	RedirectURL  string `json:"redirect_url"`
	Created      string `json:"created"`
	ContractTime string `json:"contract_time"`
	ContractType string `json:"contract_type"`
}

type searchResponse struct {
	Results []adzunaJob `json:"results"`
}

type categoriesResponse struct {
	Results []struct {
		Label string `json:"label"`
	} `json:"results"`
}

// Search queries postings by keywords and location, newest first.
func (c *Client) Search(ctx context.Context, keywords []string, location string) ([]jobs.Job, error) {
	if err := c.checkCreds(); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)
	params.Set("results_per_page", "20")
	params.Set("what", strings.Join(keywords, " "))
	params.Set("where", location)
	params.Set("sort_by", "date")

	endpoint := fmt.Sprintf("%s/%s/search/1?%s", c.BaseURL, c.Country, params.Encode())
	var out searchResponse
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	normalized := make([]jobs.Job, 0, len(out.Results))
	for _, j := range out.Results {
		normalized = append(normalized, normalize(j))
	}
	return normalized, nil
}

// Categories lists job category labels.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	if err := c.checkCreds(); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)

	endpoint := fmt.Sprintf("%s/%s/categories?%s", c.BaseURL, c.Country, params.Encode())
	var out categoriesResponse
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(out.Results))
	for _, cat := range out.Results {
		labels = append(labels, cat.Label)
	}
	return labels, nil
}

func (c *Client) checkCreds() error {
	if c.AppID == "" || c.AppKey == "" {
		return errors.New("missing adzuna credentials: set ADZUNA_APP_ID and ADZUNA_APP_KEY")
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("adzuna http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func normalize(j adzunaJob) jobs.Job {
	company := j.Company.DisplayName
	if company == "" {
		company = jobs.UnknownCompany
	}
	location := j.Location.DisplayName
	if location == "" {
		location = jobs.RemoteLocation
	}
	category := j.Category.Label
	if category == "" {
		category = jobs.GeneralCategory
	}
	return jobs.Job{
		ID:             j.ID.String(),
		Title:          j.Title,
		Company:        company,
		Location:       location,
		Description:    j.Description,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		SalaryCurrency: j.SalaryCurrency,
		Category:       category,
		URL:            j.RedirectURL,
		Created:        j.Created,
		ContractTime:   j.ContractTime,
		ContractType:   j.ContractType,
	}
}
