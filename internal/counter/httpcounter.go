package counter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dvdk01/trove-counter/internal/schema"
	log "github.com/sirupsen/logrus"
)

const DefaultTimeout = 10 * time.Second

var (
	ErrNoZone       = errors.New("response contains no zone")
	ErrInvalidTotal = errors.New("invalid total")
)

type httpCounter struct {
	client  *http.Client
	timeout time.Duration
}

type resultResponse struct {
	Response struct {
		Zone []struct {
			Name    string `json:"name"`
			Records struct {
				Total *total `json:"total"`
			} `json:"records"`
		} `json:"zone"`
	} `json:"response"`
}

// total accepts both "1234" and 1234; the API quotes it.
type total int64

func (t *total) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTotal, raw)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative value %d", ErrInvalidTotal, n)
	}
	*t = total(n)
	return nil
}

func (c *httpCounter) Count(ctx context.Context, query schema.Query) (int64, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, requestURL(query), nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", query.Predicate, err)
	}
	defer resp.Body.Close() //nolint

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	log.WithFields(log.Fields{
		"q":        query.Predicate,
		"zone":     query.Zone,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
		"payload":  len(body),
	}).Debug("trove query finished")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("query %s: unexpected status %d", query.Predicate, resp.StatusCode)
	}

	return decodeTotal(body)
}

func decodeTotal(body []byte) (int64, error) {
	var data resultResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(data.Response.Zone) == 0 {
		return 0, ErrNoZone
	}
	t := data.Response.Zone[0].Records.Total
	if t == nil {
		return 0, fmt.Errorf("%w: missing records.total", ErrInvalidTotal)
	}
	return int64(*t), nil
}

// requestURL appends the query parameters to the endpoint, keeping any
// parameters already present on it.
func requestURL(query schema.Query) string {
	u, err := url.Parse(query.Endpoint)
	if err != nil {
		return query.Endpoint
	}

	params := u.Query()
	params.Set("q", query.Predicate)
	params.Set("zone", query.Zone)
	params.Set("encoding", query.Encoding)
	params.Set("n", strconv.Itoa(query.PageSize))
	params.Set("key", query.Key)
	u.RawQuery = params.Encode()

	return u.String()
}

func NewCounter(client *http.Client, timeout time.Duration) *httpCounter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &httpCounter{
		client:  client,
		timeout: timeout,
	}
}
