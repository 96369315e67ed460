// Package catalog talks to the catalog collaborator that owns hotel, room
// and customer records. This service only reads the feed; catalog
// management lives on the other side of this client.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"staybook/internal/domain"
)

type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) ListHotels(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	return out, c.get(ctx, c.base+"/hotels", &out)
}

func (c *Client) ListRooms(ctx context.Context, hotelID string) ([]map[string]any, error) {
	var out []map[string]any
	return out, c.get(ctx, fmt.Sprintf("%s/hotels/%s/rooms", c.base, hotelID), &out)
}

func (c *Client) ListCustomers(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	return out, c.get(ctx, c.base+"/customers", &out)
}

// get performs a GET with client-side rate limiting and retries on 429 and
// transient 5xx, honoring Retry-After when provided. 404 maps to
// domain.ErrNotFound.
func (c *Client) get(ctx context.Context, url string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < 4; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.hc.Do(req)
		if err != nil {
			lastErr = err
			if err := sleepCtx(ctx, backoff(attempt)); err != nil {
				return err
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			_ = resp.Body.Close()
			return err
		case resp.StatusCode == http.StatusNotFound:
			_ = resp.Body.Close()
			return fmt.Errorf("%w: %s", domain.ErrNotFound, url)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			delay := backoff(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("catalog: status %d from %s", resp.StatusCode, url)
			if err := sleepCtx(ctx, delay); err != nil {
				return err
			}
		default:
			_ = resp.Body.Close()
			return fmt.Errorf("catalog: unexpected status %d from %s", resp.StatusCode, url)
		}
	}
	if lastErr == nil {
		lastErr = errors.New("catalog: retries exhausted")
	}
	return lastErr
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 250 * time.Millisecond
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
