package zoho

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/config"
	"github.com/google/uuid"
)

// wireDateLayout is the DD-MM-YYYY format the People API expects in sdate
// and edate query parameters.
const wireDateLayout = "02-01-2006"

// FormatDate renders a date for the People API. The year is taken from the
// date itself, so ranges spanning a year boundary stay correct.
func FormatDate(t time.Time) string {
	return t.Format(wireDateLayout)
}

// ParseDate is the inverse of FormatDate.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(wireDateLayout, s)
}

// APIError is a non-2xx response from the People API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zoho API error [%d]: %s", e.StatusCode, e.Body)
}

// Client talks to the Zoho People API. Every request is authenticated
// through the TokenManager; nothing else reads token state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenManager
}

func NewClient(cfg config.ZohoConfig, tokens *TokenManager) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.APIBaseURL,
		tokens:     tokens,
	}
}

// Tokens exposes the token manager so callers can force a refresh before a
// large fan-out.
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// GetAttendanceReport fetches one employee's attendance records for an
// inclusive date range and parses them into per-date records.
func (c *Client) GetAttendanceReport(ctx context.Context, employeeID string, start, end time.Time) (map[string]DayRecord, error) {
	params := url.Values{}
	params.Set("sdate", FormatDate(start))
	params.Set("edate", FormatDate(end))
	params.Set("empId", employeeID)

	body, err := c.get(ctx, "/attendance/getUserReport", params)
	if err != nil {
		return nil, err
	}

	records, _, err := ParseReport(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse attendance report for %s: %w", employeeID, err)
	}
	return records, nil
}

// GetDepartmentEmployees fetches the raw directory records of a department.
func (c *Client) GetDepartmentEmployees(ctx context.Context, departmentID string) ([]DirectoryRecord, error) {
	params := url.Values{}
	params.Set("parentModule", "department")
	params.Set("id", departmentID)
	params.Set("sIndex", "1")
	params.Set("limit", "200")

	body, err := c.get(ctx, "/forms/employee/getRelatedRecords", params)
	if err != nil {
		return nil, err
	}

	records, err := ParseDirectory(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse employee directory: %w", err)
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	authHeader, err := c.tokens.Header(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth header: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", authHeader)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
