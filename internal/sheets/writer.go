package sheets

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Writer appends rows through the spreadsheet's form endpoint.
type Writer struct {
	endpoint      string
	spreadsheetID string
	client        *http.Client
}

func NewWriter(endpoint, spreadsheetID string, client *http.Client) *Writer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Writer{endpoint: endpoint, spreadsheetID: spreadsheetID, client: client}
}

// Configured reports whether a write endpoint was provided.
func (w *Writer) Configured() bool {
	return w != nil && w.endpoint != "" && w.spreadsheetID != ""
}

// IdempotencyKey identifies a row write so the endpoint can discard replays.
func IdempotencyKey(sheetName string, row []string) string {
	h := sha1.New()
	h.Write([]byte(sheetName))
	for _, v := range row {
		h.Write([]byte{0})
		h.Write([]byte(v))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// AppendRow posts one row. A nil error only means the request was delivered;
// the endpoint's answer is not inspected.
func (w *Writer) AppendRow(ctx context.Context, sheetName string, row []string) (string, error) {
	if !w.Configured() {
		return "", fmt.Errorf("sheets writer: endpoint not configured")
	}

	data, err := json.Marshal(row)
	if err != nil {
		return "", fmt.Errorf("encode row: %w", err)
	}
	key := IdempotencyKey(sheetName, row)

	form := url.Values{}
	form.Set("spreadsheetId", w.spreadsheetID)
	form.Set("sheetName", sheetName)
	form.Set("data", string(data))
	form.Set("idempotencyKey", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", &TransportError{Dataset: sheetName, URL: w.endpoint, Attempts: 1, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	log.Info().
		Str("sheet", sheetName).
		Str("idempotency_key", key).
		Int("status", resp.StatusCode).
		Msg("row sent to sheet")
	return key, nil
}
