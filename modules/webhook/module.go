// Package webhook provides a renderer that posts snapshots to an HTTP
// endpoint through a pooled client. Requests are sent by a background
// worker, so a slow endpoint never holds up a tick; when the queue is full
// the snapshot is dropped.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/ctxlog"
	"github.com/vk/liftsim/internal/engine"
	"github.com/vk/liftsim/internal/registry"
)

const (
	defaultTimeout = 5 * time.Second
	defaultQueue   = 16
)

// ErrQueueFull is returned by Render when the worker is behind.
var ErrQueueFull = errors.New("webhook queue full, snapshot dropped")

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of a `renderer "webhook"` block.
type Input struct {
	URL     string `hcl:"url"`
	Method  string `hcl:"method,optional"`
	Timeout string `hcl:"timeout,optional"`
	Every   int    `hcl:"every,optional"`
	Queue   int    `hcl:"queue,optional"`
}

// Renderer queues every Every-th snapshot for delivery as a JSON body.
type Renderer struct {
	client *http.Client
	url    string
	method string
	every  uint64
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	queue  chan engine.Snapshot
	done   chan struct{}
}

// New validates input, creates the client and starts the delivery worker.
// The worker logs through the logger carried by ctx.
func New(ctx context.Context, input *Input) (*Renderer, error) {
	if input.URL == "" {
		return nil, fmt.Errorf("url is required")
	}

	timeout := defaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		timeout = d
	}

	method := input.Method
	if method == "" {
		method = http.MethodPost
	}

	if input.Every < 0 {
		return nil, fmt.Errorf("every must not be negative, got %d", input.Every)
	}
	every := uint64(1)
	if input.Every > 0 {
		every = uint64(input.Every)
	}

	if input.Queue < 0 {
		return nil, fmt.Errorf("queue must not be negative, got %d", input.Queue)
	}
	queue := defaultQueue
	if input.Queue > 0 {
		queue = input.Queue
	}

	r := &Renderer{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		url:    input.URL,
		method: method,
		every:  every,
		logger: ctxlog.FromContext(ctx).With("url", input.URL),
		queue:  make(chan engine.Snapshot, queue),
		done:   make(chan struct{}),
	}
	go r.worker()
	return r, nil
}

// Render hands snap to the worker without waiting for the request.
func (r *Renderer) Render(_ context.Context, snap engine.Snapshot) error {
	if snap.Tick%r.every != 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.New("webhook renderer is closed")
	}
	select {
	case r.queue <- snap:
		return nil
	default:
		return fmt.Errorf("tick %d: %w", snap.Tick, ErrQueueFull)
	}
}

// Close stops accepting snapshots, waits for the queued ones to be sent and
// releases idle connections.
func (r *Renderer) Close() error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	<-r.done
	r.client.CloseIdleConnections()
	return nil
}

func (r *Renderer) worker() {
	defer close(r.done)
	for snap := range r.queue {
		if err := r.post(context.Background(), snap); err != nil {
			r.logger.Warn("Webhook delivery failed.", "tick", snap.Tick, "error", err)
		}
	}
}

// post sends snap. A non-2xx response is an error.
func (r *Renderer) post(ctx context.Context, snap engine.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	r.logger.Debug("Received HTTP response", "status", resp.Status, "tick", snap.Tick)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRenderer("webhook", &registry.RegisteredRenderer{
		Description: "Posts snapshots as JSON to an HTTP endpoint.",
		New: func(ctx context.Context, _ *registry.Deps, spec *config.Renderer) (engine.Renderer, error) {
			input := new(Input)
			if err := registry.DecodeBody(spec, input); err != nil {
				return nil, err
			}
			return New(ctx, input)
		},
	})
}
