package exchange

import (
	"context"

	"github.com/jimezsa/mxdl/internal/models"
	"github.com/rs/zerolog"
)

var jsonHeaders = map[string]string{"accept": "application/json"}

// Client talks to the search and download endpoints of one site.
type Client struct {
	doer   Doer
	site   Site
	logger zerolog.Logger
}

func NewClient(doer Doer, site Site, logger zerolog.Logger) *Client {
	return &Client{
		doer:   doer,
		site:   site,
		logger: logger.With().Str("site", site.ID).Logger(),
	}
}

func (c *Client) Site() Site {
	return c.site
}

type searchResponse struct {
	TotalItemCount *int            `json:"totalItemCount"`
	Results        *[]models.Track `json:"results"`
}

// Count returns the number of tracks matching query.
func (c *Client) Count(ctx context.Context, query models.Query) (int, error) {
	target := c.searchURL(query)
	resp, err := c.get(ctx, target, copyHeaders(jsonHeaders))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var data searchResponse
	if err := decodeJSON(target, resp.Body, &data); err != nil {
		return 0, err
	}
	if data.TotalItemCount == nil {
		return 0, newError(KindMalformedResponse, nil, "'%s' returned no totalItemCount", target)
	}
	return *data.TotalItemCount, nil
}

// List fetches up to EffectiveCount(count, limit) tracks page by page,
// keeping the order the server returned them in.
func (c *Client) List(ctx context.Context, query models.Query, count int, limit int) ([]models.Track, error) {
	pages := PlanPages(count, limit)
	tracks := make([]models.Track, 0, EffectiveCount(count, limit))

	for _, page := range pages {
		c.logger.Debug().Int("page", page.Number).Int("size", page.Size).Msg("listing page")
		pageTracks, err := c.listPage(ctx, query.WithPage(page.Number, page.Size))
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, pageTracks...)
	}

	return tracks, nil
}

func (c *Client) listPage(ctx context.Context, query models.Query) ([]models.Track, error) {
	target := c.searchURL(query)
	resp, err := c.get(ctx, target, copyHeaders(jsonHeaders))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data searchResponse
	if err := decodeJSON(target, resp.Body, &data); err != nil {
		return nil, err
	}
	if data.Results == nil {
		return nil, newError(KindMalformedResponse, nil, "'%s' returned no results", target)
	}

	tracks := *data.Results
	for i := range tracks {
		tracks[i].Site = c.site.ID
	}
	return tracks, nil
}

func (c *Client) searchURL(query models.Query) string {
	return c.site.SearchURL + "?" + query.Encode()
}

func copyHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for key, value := range headers {
		out[key] = value
	}
	return out
}
