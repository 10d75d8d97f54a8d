package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

var ErrGenusNotFound = errors.New("genus not found in catalog")

// Client queries the hosted content catalog. Tables follow a fixed schema:
// a title field, multi-select fields and rich-text fields per row.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	typesTable    string
	pediaTable    string
	passivesTable string
}

// Config identifies the catalog tables and credentials.
type Config struct {
	BaseURL       string
	Token         string
	TypesTable    string
	PediaTable    string
	PassivesTable string
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:       baseURL,
		token:         cfg.Token,
		typesTable:    cfg.TypesTable,
		pediaTable:    cfg.PediaTable,
		passivesTable: cfg.PassivesTable,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// page is one row of a catalog table.
type page struct {
	Properties map[string]property `json:"properties"`
}

type property struct {
	Title       []richText `json:"title"`
	RichText    []richText `json:"rich_text"`
	MultiSelect []option   `json:"multi_select"`
	Select      *option    `json:"select"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type option struct {
	Name string `json:"name"`
}

// plainText returns the first rich-text fragment, or "" for empty cells.
func (p property) plainText() string {
	if len(p.RichText) > 0 {
		return p.RichText[0].PlainText
	}
	return ""
}

// titleText returns the row title, or "" when missing.
func (p property) titleText() string {
	if len(p.Title) > 0 {
		return p.Title[0].PlainText
	}
	return ""
}

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// queryAll fetches every row of a table, following pagination cursors.
func (c *Client) queryAll(ctx context.Context, tableID string) ([]page, error) {
	var rows []page
	cursor := ""

	for {
		body, err := json.Marshal(queryRequest{StartCursor: cursor})
		if err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, tableID)
		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Notion-Version", apiVersion)
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog query: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			errBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("catalog API error: %s - %s", resp.Status, string(errBody))
		}

		var qr queryResponse
		if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("catalog decode: %w", err)
		}
		resp.Body.Close()

		rows = append(rows, qr.Results...)
		if !qr.HasMore || qr.NextCursor == "" {
			break
		}
		cursor = qr.NextCursor
	}

	return rows, nil
}

// findGenusRow locates a pedia row by its title, case-insensitively.
func findGenusRow(rows []page, genus string) (*page, bool) {
	for i := range rows {
		name := rows[i].Properties["Official Name"].titleText()
		if strings.EqualFold(name, genus) {
			return &rows[i], true
		}
	}
	return nil, false
}
