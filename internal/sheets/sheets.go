package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Row is one spreadsheet row as an ordered sequence of cell strings. Sheets
// omit trailing empty cells, so rows in the same tab vary in length.
type Row []string

// Cell returns the trimmed value at index i, or "" when the index is out of
// range or negative. Negative indexes mark columns a source does not carry.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Client reads transfer-portal spreadsheets through the Sheets API.
type Client struct {
	svc *sheetsapi.Service
}

// NewClient builds a read-only Sheets client from an OAuth client secret file
// and a previously stored user token. The token must already exist; this tool
// runs unattended and cannot drive an authorization flow.
func NewClient(ctx context.Context, credentialsFile, tokenFile string) (*Client, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(secret, sheetsapi.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	tokenData, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(tokenData, token); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("build sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Fetch reads every populated row of one spreadsheet tab.
func (c *Client) Fetch(ctx context.Context, spreadsheetID, tab string) ([]Row, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s!%s: %w", spreadsheetID, tab, err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make(Row, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
