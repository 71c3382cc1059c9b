package sheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// APISource reads tabs through the Sheets API with a service account.
type APISource struct {
	srv *sheets.Service
}

func NewAPISource(ctx context.Context, credentialsJSON string) (*APISource, error) {
	config, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		sheets.SpreadsheetsReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}

	return &APISource{srv: srv}, nil
}

func (s *APISource) Rows(ctx context.Context, ds Dataset) ([][]string, error) {
	resp, err := s.srv.Spreadsheets.Values.
		Get(ds.SpreadsheetID, ds.Tab).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		te := &TransportError{Dataset: ds.Name, URL: ds.SpreadsheetID + "!" + ds.Tab, Err: err}
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			te.Status = gerr.Code
		}
		return nil, te
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
