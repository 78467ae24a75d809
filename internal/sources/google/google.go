package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"activitylog/internal/core"
	"activitylog/internal/sources"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// valuesGetter is the slice of the Sheets API the client needs.
type valuesGetter interface {
	GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
	Ping(ctx context.Context, spreadsheetID string) error
}

type Client struct {
	api           valuesGetter
	spreadsheetID string
	readRange     string
}

// Ensure interface conformance
var (
	_ sources.RecordReader  = (*Client)(nil)
	_ sources.HealthChecker = (*Client)(nil)
)

// Options configures the Sheets client. Credentials come from CredentialsJSON
// or CredentialsFile, falling back to GOOGLE_APPLICATION_CREDENTIALS.
type Options struct {
	SpreadsheetID   string
	ReadRange       string
	CredentialsJSON string
	CredentialsFile string
}

// New creates a read-only Sheets client for one range of one spreadsheet.
func New(ctx context.Context, opts Options) (*Client, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	readRange := strings.TrimSpace(opts.ReadRange)
	if readRange == "" {
		readRange = "Activity Log"
	}

	svc, err := newSheetsService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		api:           serviceAPI{svc: svc},
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, opts Options) (*gsheet.Service, error) {
	credentialsFile := strings.TrimSpace(opts.CredentialsFile)
	if opts.CredentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case opts.CredentialsJSON != "":
		credentialsJSON = []byte(opts.CredentialsJSON)
	case credentialsFile != "":
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.DebugContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadRecords fetches the configured range and decodes it like a CSV table.
func (c *Client) ReadRecords(ctx context.Context) ([]core.ActivityRecord, error) {
	if c.api == nil {
		return nil, errors.New("sheets service not initialized")
	}
	values, err := c.api.GetValues(ctx, c.spreadsheetID, c.readRange)
	if err != nil {
		return nil, fmt.Errorf("read range %q: %w", c.readRange, err)
	}
	records, err := decodeValues(values)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", c.readRange, err)
	}
	return records, nil
}

// Check asks the API for the spreadsheet id only.
func (c *Client) Check(ctx context.Context) error {
	if c.api == nil {
		return errors.New("sheets service not initialized")
	}
	return c.api.Ping(ctx, c.spreadsheetID)
}

type serviceAPI struct {
	svc *gsheet.Service
}

func (s serviceAPI) GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (s serviceAPI) Ping(ctx context.Context, spreadsheetID string) error {
	_, err := s.svc.Spreadsheets.Get(spreadsheetID).
		Fields(googleapi.Field("spreadsheetId")).
		Context(ctx).
		Do()
	return err
}
