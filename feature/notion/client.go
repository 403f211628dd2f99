package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"steam-ledger/feature/games/models"

	"go.uber.org/zap"
)

const pageSize = 100

// Client reads and updates the games database.
type Client struct {
	http   *http.Client
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a client with a request timeout taken from cfg.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIHost+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", models.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Notion-Version", c.cfg.Version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrTransport, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned status %d: %s", models.ErrTransport, method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrDecode, path, err)
	}
	return nil
}

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size"`
}

type queryResponse struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
}

// ListNotes reads every page of the database. Unusable pages are skipped with a warning.
func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	path := "/v1/databases/" + c.cfg.DatabaseID + "/query"
	cursor := ""

	for {
		body, err := json.Marshal(queryRequest{StartCursor: cursor, PageSize: pageSize})
		if err != nil {
			return nil, fmt.Errorf("%w: encode query: %w", models.ErrDecode, err)
		}

		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
			return nil, err
		}

		for _, raw := range resp.Results {
			var p page
			if err := json.Unmarshal(raw, &p); err != nil {
				c.logger.Warn("Skipping unreadable note", zap.Error(err))
				continue
			}
			note, err := p.toNote()
			if err != nil {
				c.logger.Warn("Skipping note", zap.String("note_id", p.ID), zap.Error(err))
				continue
			}
			notes = append(notes, note)
		}

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		cursor = *resp.NextCursor
	}

	c.logger.Debug("Listed notes", zap.Int("count", len(notes)))
	return notes, nil
}

func (c *Client) updatePage(ctx context.Context, noteID string, props map[string]any) error {
	body, err := encodeProperties(props)
	if err != nil {
		return fmt.Errorf("%w: encode page update: %w", models.ErrDecode, err)
	}
	return c.do(ctx, http.MethodPatch, "/v1/pages/"+noteID, body, nil)
}

// SetIdentifier writes the resolved library id and canonical name back to a note.
func (c *Client) SetIdentifier(ctx context.Context, noteID string, appID models.GameId, name string) error {
	return c.updatePage(ctx, noteID, identifierProperties(appID, name))
}

// SetState writes a lifecycle state back to a note.
func (c *Client) SetState(ctx context.Context, noteID string, state models.GameState) error {
	return c.updatePage(ctx, noteID, stateProperties(state))
}
