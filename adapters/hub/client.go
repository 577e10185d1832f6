package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"datalens/domain/dataset"
	"datalens/internal"
	"datalens/internal/config"
	"datalens/internal/errors"
)

// pageFetchers bounds how many /rows requests run at once.
const pageFetchers = 4

// Client loads datasets through the HuggingFace datasets-server API and
// fetches dataset cards from the hub. It is the external loader
// collaborator: everything past the returned Dataset is someone else's job.
type Client struct {
	http       *http.Client
	apiBaseURL string
	hubBaseURL string
	maxRows    int
	pageSize   int
	log        *internal.Logger
}

// NewClient creates a loader client from hub configuration.
func NewClient(cfg config.HubConfig) *Client {
	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		apiBaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		hubBaseURL: strings.TrimRight(cfg.HubBaseURL, "/"),
		maxRows:    cfg.MaxRows,
		pageSize:   cfg.PageSize,
		log:        internal.DefaultLogger,
	}
}

// splitsResponse mirrors the datasets-server /splits payload.
type splitsResponse struct {
	Splits []struct {
		Dataset string `json:"dataset"`
		Config  string `json:"config"`
		Split   string `json:"split"`
	} `json:"splits"`
	Error string `json:"error"`
}

// rowsResponse mirrors the datasets-server /rows payload.
type rowsResponse struct {
	Features []feature `json:"features"`
	Rows     []struct {
		RowIdx int                        `json:"row_idx"`
		Row    map[string]json.RawMessage `json:"row"`
	} `json:"rows"`
	NumRowsTotal int    `json:"num_rows_total"`
	Error        string `json:"error"`
}

// feature describes one column as declared by the server.
type feature struct {
	Name string `json:"name"`
	Type struct {
		DType string `json:"dtype"`
		Kind  string `json:"_type"`
	} `json:"type"`
}

// Load fetches a dataset split and converts it to the in-memory model.
// Unknown dataset names or splits return a VALIDATION_ERROR; any other
// failure surfaces as a LOAD_ERROR with the underlying message.
func (c *Client) Load(ctx context.Context, name, split string) (*dataset.Dataset, error) {
	cfg, err := c.resolveConfig(ctx, name, split)
	if err != nil {
		return nil, err
	}

	c.log.Info("loading dataset %s (config=%s, split=%s)", name, cfg, split)

	first, err := c.fetchRows(ctx, name, cfg, split, 0)
	if err != nil {
		return nil, err
	}

	total := first.NumRowsTotal
	if total > c.maxRows {
		c.log.Warn("dataset %s has %d rows, capping at %d", name, total, c.maxRows)
		total = c.maxRows
	}

	pageCount := (total + c.pageSize - 1) / c.pageSize
	pages := make([]*rowsResponse, pageCount)
	if pageCount > 0 {
		pages[0] = first
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pageFetchers)
	for p := 1; p < pageCount; p++ {
		g.Go(func() error {
			page, err := c.fetchRows(gctx, name, cfg, split, p*c.pageSize)
			if err != nil {
				return err
			}
			pages[p] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := buildDataset(name, split, first.Features, pages, total)
	applyDatetimeHeuristic(ds, c.log)

	c.log.Info("dataset %s loaded: %d rows, %d columns", name, ds.Rows, len(ds.Columns))
	return ds, nil
}

// resolveConfig validates the dataset and split, returning the config the
// split belongs to ("default" preferred when the split exists in several).
func (c *Client) resolveConfig(ctx context.Context, name, split string) (string, error) {
	endpoint := fmt.Sprintf("%s/splits?dataset=%s", c.apiBaseURL, url.QueryEscape(name))

	var resp splitsResponse
	if err := c.getJSON(ctx, endpoint, name, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", errors.ValidationError(fmt.Sprintf(
			"dataset %q not found or not accessible: %s", name, resp.Error))
	}

	cfg := ""
	for _, s := range resp.Splits {
		if s.Split != split {
			continue
		}
		if cfg == "" || s.Config == "default" {
			cfg = s.Config
		}
	}
	if cfg == "" {
		return "", errors.ValidationError(fmt.Sprintf(
			"split %q does not exist for dataset %q", split, name))
	}
	return cfg, nil
}

func (c *Client) fetchRows(ctx context.Context, name, cfg, split string, offset int) (*rowsResponse, error) {
	endpoint := fmt.Sprintf("%s/rows?dataset=%s&config=%s&split=%s&offset=%d&length=%d",
		c.apiBaseURL, url.QueryEscape(name), url.QueryEscape(cfg), url.QueryEscape(split),
		offset, c.pageSize)

	var resp rowsResponse
	if err := c.getJSON(ctx, endpoint, name, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.LoadError(fmt.Sprintf("row fetch failed for %q", name),
			fmt.Errorf("%s", resp.Error))
	}
	return &resp, nil
}

// getJSON performs one API request and decodes the body. 404 responses map
// to VALIDATION_ERROR (unknown dataset), everything else to LOAD_ERROR.
func (c *Client) getJSON(ctx context.Context, endpoint, name string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.LoadError("failed to build request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.LoadError(fmt.Sprintf("failed to reach dataset server for %q", name), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity {
		return errors.ValidationError(fmt.Sprintf(
			"dataset %q not found or split invalid (check the name on the hub)", name))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.LoadError(
			fmt.Sprintf("dataset server returned %d for %q", resp.StatusCode, name),
			fmt.Errorf("%s", strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.LoadError(fmt.Sprintf("failed to decode response for %q", name), err)
	}
	return nil
}

// Card fetches the dataset's README markdown with YAML front matter
// stripped. Callers treat failures as a missing card, not a load failure.
func (c *Client) Card(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/datasets/%s/raw/main/README.md", c.hubBaseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NotFound("dataset card")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return stripFrontMatter(string(body)), nil
}

// stripFrontMatter removes a leading "---" YAML block from card markdown.
func stripFrontMatter(md string) string {
	trimmed := strings.TrimLeft(md, "\n")
	if !strings.HasPrefix(trimmed, "---") {
		return md
	}
	rest := trimmed[3:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return md
	}
	after := rest[end+4:]
	return strings.TrimLeft(after, "-\n ")
}
