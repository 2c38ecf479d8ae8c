package e2e

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"

	"github.com/dvdk01/trove-counter/internal/application"
	"github.com/dvdk01/trove-counter/internal/config"
	"github.com/dvdk01/trove-counter/internal/counter"
	"github.com/dvdk01/trove-counter/internal/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// Test case for polling both built-in variants into an HTML display
// Verifies that each variant sends its own predicate and that the display
// is replaced with the newest total on every iteration
func TestWatch_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		variant string
		verb    string
	}{
		{variant: "corrections", verb: "corrected"},
		{variant: "tags", verb: "tagged"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.variant, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			variant, err := cfg.Variant(tt.variant)
			require.NoError(t, err)

			transport := httpmock.NewMockTransport()
			client := &http.Client{Transport: transport}
			defer transport.Reset()

			var calls int64
			transport.RegisterResponderWithQuery("GET", config.DefaultEndpoint,
				map[string]string{
					"q":        variant.Predicate,
					"zone":     "newspaper",
					"encoding": "json",
					"n":        "0",
					"key":      config.DefaultKey,
				},
				func(req *http.Request) (*http.Response, error) {
					n := atomic.AddInt64(&calls, 1)
					body := fmt.Sprintf(`{"response":{"zone":[{"records":{"total":"%d"}}]}}`, 1000000+n)
					return httpmock.NewStringResponse(200, body), nil
				},
			)

			path := filepath.Join(t.TempDir(), "out.html")
			display := application.NewHTMLApplication(path, 1)
			p := processor.New(counter.NewCounter(client, time.Second), display, cfg.Query(), variant, 20*time.Millisecond)

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- p.Run(ctx) }()

			assert.Eventually(t, func() bool {
				return strings.Contains(readFile(path), "1,000,002")
			}, 3*time.Second, 10*time.Millisecond)

			cancel()
			require.NoError(t, <-done)

			content := readFile(path)
			assert.Contains(t, content, "Trove users have "+tt.verb)
			assert.NotContains(t, content, "1,000,001")
		})
	}
}

// Test case for a request that exceeds its timeout
// Verifies that the loop stops with the deadline error instead of hanging
func TestWatch_Timeout(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()
	client := &http.Client{Transport: transport}
	defer transport.Reset()

	transport.RegisterResponder("GET", config.DefaultEndpoint,
		func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		},
	)

	cfg := config.Default()
	variant, err := cfg.Variant("tags")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.html")
	p := processor.New(counter.NewCounter(client, 50*time.Millisecond),
		application.NewHTMLApplication(path, 1), cfg.Query(), variant, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = p.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, ctx.Err())
	assert.Empty(t, readFile(path))
}

// Test case for a response without the zone list
// Verifies that a malformed response ends the loop with an error
func TestWatch_MissingZone(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()
	client := &http.Client{Transport: transport}
	defer transport.Reset()

	transport.RegisterResponder("GET", config.DefaultEndpoint,
		httpmock.NewStringResponder(200, `{"response":{}}`))

	cfg := config.Default()
	variant, err := cfg.Variant("corrections")
	require.NoError(t, err)

	p := processor.New(counter.NewCounter(client, time.Second),
		application.NewHTMLApplication(filepath.Join(t.TempDir(), "out.html"), 1), cfg.Query(), variant, time.Second)

	err = p.Run(context.Background())
	assert.ErrorIs(t, err, counter.ErrNoZone)
}

// Test case for an interrupt while waiting for the next poll
// Verifies that the loop returns quietly and keeps the last display
func TestWatch_Interrupt(t *testing.T) {
	t.Parallel()

	transport := httpmock.NewMockTransport()
	client := &http.Client{Transport: transport}
	defer transport.Reset()

	transport.RegisterResponder("GET", config.DefaultEndpoint,
		httpmock.NewStringResponder(200, `{"response":{"zone":[{"records":{"total":"1234567"}}]}}`))

	cfg := config.Default()
	variant, err := cfg.Variant("corrections")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.html")
	p := processor.New(counter.NewCounter(client, time.Second),
		application.NewHTMLApplication(path, 5), cfg.Query(), variant, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return strings.Contains(readFile(path), "1,234,567")
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for the loop to stop")
	}
	assert.Equal(t, 1, transport.GetTotalCallCount())
}
