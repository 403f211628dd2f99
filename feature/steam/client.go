package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"steam-ledger/feature/games/models"

	"go.uber.org/zap"
)

// Client talks to the Steam Web API and store front.
type Client struct {
	http   *http.Client
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
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
		now:    time.Now,
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	u := endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", models.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

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
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned status %d", models.ErrTransport, req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrDecode, req.URL.Path, err)
	}
	return nil
}

func (c *Client) accountQuery(account string) url.Values {
	q := url.Values{}
	q.Set("key", c.cfg.APIKey)
	q.Set("steamid", account)
	q.Set("format", "json")
	return q
}

type appListResponse struct {
	AppList struct {
		Apps []struct {
			AppID uint32 `json:"appid"`
			Name  string `json:"name"`
		} `json:"apps"`
	} `json:"applist"`
}

// ListCatalog returns every app id and name the provider knows.
func (c *Client) ListCatalog(ctx context.Context) ([]models.CatalogEntry, error) {
	var resp appListResponse
	if err := c.getJSON(ctx, c.cfg.APIHost+"/ISteamApps/GetAppList/v2/", nil, &resp); err != nil {
		return nil, err
	}

	entries := make([]models.CatalogEntry, 0, len(resp.AppList.Apps))
	for _, app := range resp.AppList.Apps {
		entries = append(entries, models.CatalogEntry{AppID: models.GameId(app.AppID), Name: app.Name})
	}
	return entries, nil
}

type ownedGamesResponse struct {
	Response struct {
		Games []struct {
			AppID           uint32 `json:"appid"`
			PlaytimeForever int64  `json:"playtime_forever"`
			LastPlayed      int64  `json:"rtime_last_played"`
		} `json:"games"`
	} `json:"response"`
}

func (c *Client) ownedGames(ctx context.Context, account string) (*ownedGamesResponse, error) {
	var resp ownedGamesResponse
	if err := c.getJSON(ctx, c.cfg.APIHost+"/IPlayerService/GetOwnedGames/v0001/", c.accountQuery(account), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListOwned returns the ids of every game owned by account.
func (c *Client) ListOwned(ctx context.Context, account string) ([]models.GameId, error) {
	resp, err := c.ownedGames(ctx, account)
	if err != nil {
		return nil, err
	}

	ids := make([]models.GameId, 0, len(resp.Response.Games))
	for _, g := range resp.Response.Games {
		ids = append(ids, models.GameId(g.AppID))
	}
	return ids, nil
}

// ListPlaytime returns the total playtime of every game owned by account.
// A game never played reports the current time as its last played time.
func (c *Client) ListPlaytime(ctx context.Context, account string) ([]models.Playtime, error) {
	resp, err := c.ownedGames(ctx, account)
	if err != nil {
		return nil, err
	}

	now := c.now().UTC()
	out := make([]models.Playtime, 0, len(resp.Response.Games))
	for _, g := range resp.Response.Games {
		lastPlayed := now
		if g.LastPlayed > 0 {
			lastPlayed = time.Unix(g.LastPlayed, 0).UTC()
		}
		out = append(out, models.Playtime{
			AppID:      models.GameId(g.AppID),
			Playtime:   time.Duration(g.PlaytimeForever) * time.Minute,
			LastPlayed: lastPlayed,
		})
	}
	return out, nil
}

type wishlistResponse struct {
	Response struct {
		Items []struct {
			AppID     uint32 `json:"appid"`
			DateAdded int64  `json:"date_added"`
		} `json:"items"`
	} `json:"response"`
}

// ListWishlist returns the current wishlist of account.
func (c *Client) ListWishlist(ctx context.Context, account string) ([]models.WishlistedGame, error) {
	var resp wishlistResponse
	q := url.Values{}
	q.Set("key", c.cfg.APIKey)
	q.Set("steamid", account)
	if err := c.getJSON(ctx, c.cfg.APIHost+"/IWishlistService/GetWishlist/v1/", q, &resp); err != nil {
		return nil, err
	}

	items := make([]models.WishlistedGame, 0, len(resp.Response.Items))
	for _, it := range resp.Response.Items {
		items = append(items, models.WishlistedGame{
			AppID:      models.GameId(it.AppID),
			Wishlisted: time.Unix(it.DateAdded, 0).UTC(),
		})
	}
	return items, nil
}

// FetchDetails looks up store details one id at a time. Ids whose lookup fails for any
// reason are returned in the failed list. The error is only set when ctx ends.
func (c *Client) FetchDetails(ctx context.Context, ids []models.GameId) (map[models.GameId]models.GameDetails, []models.GameId, error) {
	found := make(map[models.GameId]models.GameDetails, len(ids))
	var failed []models.GameId

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return found, append(failed, ids[i:]...), fmt.Errorf("%w: %w", models.ErrTransport, err)
		}

		details, err := c.fetchOne(ctx, id)
		if err != nil {
			c.logger.Warn("Failed to fetch game details", zap.Uint32("app_id", uint32(id)), zap.Error(err))
			failed = append(failed, id)
			continue
		}
		found[id] = details
	}
	return found, failed, nil
}

func (c *Client) fetchOne(ctx context.Context, id models.GameId) (models.GameDetails, error) {
	q := url.Values{}
	q.Set("appids", id.String())
	if c.cfg.Currency != "" {
		q.Set("currency", c.cfg.Currency)
	}

	var resp map[string]appDetailsEnvelope
	if err := c.getJSON(ctx, c.cfg.StoreHost+"/api/appdetails", q, &resp); err != nil {
		return models.GameDetails{}, err
	}

	env, ok := resp[id.String()]
	if !ok || !env.Success || env.Data == nil {
		return models.GameDetails{}, fmt.Errorf("%w: no store data for %s", models.ErrDecode, id)
	}
	return convertDetails(id, *env.Data, c.now().UTC()), nil
}
