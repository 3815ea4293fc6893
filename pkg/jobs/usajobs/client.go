package usajobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mkrylov/resume-analyzer/pkg/jobs"
)

// Client queries the USAJobs government board. Its responses nest
// postings under SearchResult.SearchResultItems with PascalCase field
// names; everything is normalized into the common job record shape.
type Client struct {
	APIKey  string
	Email   string
	Host    string
	BaseURL string
	httpDo  *http.Client
}

func New(apiKey, email, host string) *Client {
	if host == "" {
		host = "data.usajobs.gov"
	}
	return &Client{
		APIKey:  apiKey,
		Email:   email,
		Host:    host,
		BaseURL: "https://data.usajobs.gov/api",
		httpDo: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

const remoteUnknown = "Remote/Unknown"

type searchResponse struct {
	SearchResult struct {
		SearchResultItems []resultItem `json:"SearchResultItems"`
	} `json:"SearchResult"`
}

type resultItem struct {
	MatchedObjectID         string `json:"MatchedObjectId"`
	MatchedObjectDescriptor struct {
		PositionTitle           string `json:"PositionTitle"`
		OrganizationName        string `json:"OrganizationName"`
		PositionLocationDisplay string `json:"PositionLocationDisplay"`
		PositionURI             string `json:"PositionURI"`
		PublicationStartDate    string `json:"PublicationStartDate"`
		JobCategory             []struct {
			Name string `json:"Name"`
		} `json:"JobCategory"`
		PositionSchedule []struct {
			Name string `json:"Name"`
		} `json:"PositionSchedule"`
		PositionRemuneration []struct {
			MinimumRange     string `json:"MinimumRange"`
			MaximumRange     string `json:"MaximumRange"`
			RateIntervalCode string `json:"RateIntervalCode"`
		} `json:"PositionRemuneration"`
		UserArea struct {
			Details struct {
				JobSummary string `json:"JobSummary"`
			} `json:"Details"`
		} `json:"UserArea"`
	} `json:"MatchedObjectDescriptor"`
}

type codelistResponse struct {
	CodeList []struct {
		ValidValue []struct {
			Value string `json:"Value"`
		} `json:"ValidValue"`
	} `json:"CodeList"`
}

// Search queries postings by keywords and location.
func (c *Client) Search(ctx context.Context, keywords []string, location string) ([]jobs.Job, error) {
	params := url.Values{}
	params.Set("Keyword", strings.Join(keywords, " "))
	params.Set("LocationName", location)
	params.Set("ResultsPerPage", "20")

	var out searchResponse
	if err := c.get(ctx, c.BaseURL+"/search?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	normalized := make([]jobs.Job, 0, len(out.SearchResult.SearchResultItems))
	for _, item := range out.SearchResult.SearchResultItems {
		normalized = append(normalized, normalize(item))
	}
	return normalized, nil
}

// GetJob fetches a single posting by its control number.
func (c *Client) GetJob(ctx context.Context, id string) (jobs.Job, error) {
	params := url.Values{}
	params.Set("PositionID", id)

	var out searchResponse
	if err := c.get(ctx, c.BaseURL+"/search?"+params.Encode(), &out); err != nil {
		return jobs.Job{}, err
	}
	items := out.SearchResult.SearchResultItems
	if len(items) == 0 {
		return jobs.Job{}, fmt.Errorf("job %s not found", id)
	}
	return normalize(items[0]), nil
}

// Categories lists occupational series names from the codelist API.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out codelistResponse
	if err := c.get(ctx, c.BaseURL+"/codelist/occupationalseries", &out); err != nil {
		return nil, err
	}
	var names []string
	for _, list := range out.CodeList {
		for _, v := range list.ValidValue {
			if v.Value != "" {
				names = append(names, v.Value)
			}
		}
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	if c.APIKey == "" {
		return errors.New("missing usajobs credentials: set USAJOBS_API_KEY")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Host", c.Host)
	req.Header.Set("User-Agent", c.Email)
	req.Header.Set("Authorization-Key", c.APIKey)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("usajobs http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func normalize(item resultItem) jobs.Job {
	d := item.MatchedObjectDescriptor

	company := d.OrganizationName
	if company == "" {
		company = jobs.UnknownCompany
	}
	location := d.PositionLocationDisplay
	if location == "" {
		location = remoteUnknown
	}
	category := jobs.GeneralCategory
	if len(d.JobCategory) > 0 && d.JobCategory[0].Name != "" {
		category = d.JobCategory[0].Name
	}
	var contractTime string
	if len(d.PositionSchedule) > 0 {
		contractTime = d.PositionSchedule[0].Name
	}

	job := jobs.Job{
		ID:           item.MatchedObjectID,
		Title:        d.PositionTitle,
		Company:      company,
		Location:     location,
		Description:  d.UserArea.Details.JobSummary,
		Category:     category,
		URL:          d.PositionURI,
		Created:      d.PublicationStartDate,
		ContractTime: contractTime,
	}
	if len(d.PositionRemuneration) > 0 {
		rem := d.PositionRemuneration[0]
		job.SalaryMin = parseAmount(rem.MinimumRange)
		job.SalaryMax = parseAmount(rem.MaximumRange)
		job.SalaryCurrency = "USD"
	}
	return job
}

// parseAmount coerces the board's string-typed salary values; malformed
// input defaults to zero rather than failing the whole search.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
