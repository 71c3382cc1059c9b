package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Dataset identifies one tab of one spreadsheet.
type Dataset struct {
	Name          string
	SpreadsheetID string
	Tab           string
}

// Source reads every row of a dataset, header included.
type Source interface {
	Rows(ctx context.Context, ds Dataset) ([][]string, error)
}

// CSVSource reads the published CSV export of a tab.
type CSVSource struct {
	baseURL string
	client  *http.Client
}

func NewCSVSource(baseURL string, client *http.Client) *CSVSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CSVSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// ExportURL builds the gviz CSV export address of ds.
func (s *CSVSource) ExportURL(ds Dataset) string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", ds.Tab)
	return fmt.Sprintf("%s/%s/gviz/tq?%s", s.baseURL, url.PathEscape(ds.SpreadsheetID), q.Encode())
}

func (s *CSVSource) Rows(ctx context.Context, ds Dataset) ([][]string, error) {
	u := s.ExportURL(ds)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", ds.Name, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Dataset: ds.Name, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{
			Dataset: ds.Name,
			URL:     u,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Dataset: ds.Name, URL: u, Status: resp.StatusCode, Err: err}
	}
	return ParseCSV(body)
}
