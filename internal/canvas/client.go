package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vandank/CanvasAutomateQuiz/internal/config"
	"github.com/vandank/CanvasAutomateQuiz/internal/logger"
	"github.com/vandank/CanvasAutomateQuiz/pkg/errors"
	"github.com/vandank/CanvasAutomateQuiz/pkg/ordmap"
)

// Client talks to the Canvas REST API. All calls are synchronous and any
// non-2xx response aborts the run; there is no retry.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger.Get(),
	}
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.API.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, errors.APIStatusError{
			URL:    rawURL,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	return body, resp.Header, nil
}

// getJSON fetches a single, non-paginated resource.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	body, _, err := c.do(ctx, withQuery(rawURL, params))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}

// getPaginated walks every page of a collection resource, following the
// rel="next" link from the Link response header. params go only on the
// first request; the next link already carries the paging state.
//
// Two body shapes are handled: a plain array of entities, and the composite
// quiz-submission object carrying quiz_submissions plus an auxiliary users
// list. Auxiliary users are deduplicated by id across pages, last seen wins,
// first-seen order preserved. Anything else fails the run.
func (c *Client) getPaginated(ctx context.Context, rawURL string, params url.Values) (primary, related []json.RawMessage, err error) {
	next := withQuery(rawURL, params)
	users := ordmap.New[int64, json.RawMessage]()
	sawComposite := false
	pages := 0

	for next != "" {
		body, header, err := c.do(ctx, next)
		if err != nil {
			return nil, nil, err
		}
		pages++

		trimmed := bytes.TrimLeft(body, " \t\r\n")
		switch {
		case len(trimmed) > 0 && trimmed[0] == '[':
			var page []json.RawMessage
			if err := json.Unmarshal(body, &page); err != nil {
				return nil, nil, fmt.Errorf("failed to decode page from %s: %w", next, err)
			}
			primary = append(primary, page...)

		case len(trimmed) > 0 && trimmed[0] == '{':
			subs, pageUsers, err := decodeCompositePage(body)
			if err != nil {
				return nil, nil, fmt.Errorf("page from %s: %w", next, err)
			}
			primary = append(primary, subs...)
			for _, u := range pageUsers {
				var ident struct {
					ID int64 `json:"id"`
				}
				if err := json.Unmarshal(u, &ident); err != nil {
					return nil, nil, fmt.Errorf("failed to decode related user: %w", err)
				}
				users.Set(ident.ID, u)
			}
			sawComposite = true

		default:
			return nil, nil, fmt.Errorf("%w: response from %s is neither an array nor an object", errors.ErrUnexpectedShape, next)
		}

		next = nextPageURL(header.Get("Link"))
	}

	c.log.Debug().
		Str("url", rawURL).
		Int("pages", pages).
		Int("entities", len(primary)).
		Msg("Paginated fetch complete")

	if sawComposite {
		related = users.Values()
	}
	return primary, related, nil
}

func decodeCompositePage(body []byte) (subs, users []json.RawMessage, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, nil, fmt.Errorf("failed to decode object page: %w", err)
	}

	rawSubs, ok := fields["quiz_submissions"]
	if !ok {
		return nil, nil, fmt.Errorf("%w: object has no quiz_submissions collection", errors.ErrUnexpectedShape)
	}
	if err := json.Unmarshal(rawSubs, &subs); err != nil {
		return nil, nil, fmt.Errorf("failed to decode quiz_submissions: %w", err)
	}

	if rawUsers, ok := fields["users"]; ok {
		if err := json.Unmarshal(rawUsers, &users); err != nil {
			return nil, nil, fmt.Errorf("failed to decode users: %w", err)
		}
	}
	return subs, users, nil
}

// nextPageURL extracts the rel="next" target from a Link header, or ""
// when the chain ends.
func nextPageURL(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}

func withQuery(rawURL string, params url.Values) string {
	if len(params) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + params.Encode()
}

func decodeAll[T any](raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, fmt.Errorf("failed to decode entity: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}
