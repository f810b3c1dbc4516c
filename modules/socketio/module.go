package socketio

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"time"

	"github.com/vk/liftsim/internal/config"
	"github.com/vk/liftsim/internal/ctxlog"
	"github.com/vk/liftsim/internal/engine"
	"github.com/vk/liftsim/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	defaultEvent          = "snapshot"
	defaultConnectTimeout = 15 * time.Second
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of a `renderer "socketio"` block.
type Input struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	Event              string `hcl:"event,optional"`
	SubmitEvent        string `hcl:"submit_event,optional"`
	ConnectTimeout     string `hcl:"connect_timeout,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Renderer publishes snapshots to a socket.io server and, when a submit
// event is configured, forwards trip requests from it to the engine.
type Renderer struct {
	io     *socket.Socket
	event  string
	logger *slog.Logger
}

// Connect dials the server and waits for the connection to be established.
func Connect(ctx context.Context, input *Input, submitter engine.Submitter) (*Renderer, error) {
	logger := ctxlog.FromContext(ctx).With("url", input.URL)

	timeout := defaultConnectTimeout
	if input.ConnectTimeout != "" {
		d, err := time.ParseDuration(input.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid connect_timeout %q: %w", input.ConnectTimeout, err)
		}
		timeout = d
	}
	event := input.Event
	if event == "" {
		event = defaultEvent
	}

	parsedURL, err := url.Parse(input.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if input.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(input.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- connectError(errs)
	})

	if input.SubmitEvent != "" && submitter != nil {
		io.On(types.EventName(input.SubmitEvent), func(data ...any) {
			from, to, err := parseTrip(data)
			if err != nil {
				logger.Warn("Ignoring malformed trip request.", "event", input.SubmitEvent, "error", err)
				return
			}
			p, err := submitter.Submit(from, to)
			if err != nil {
				logger.Warn("Trip request rejected.", "from", from, "to", to, "error", err)
				return
			}
			logger.Debug("Trip request accepted.", "passenger", p.ID, "from", from, "to", to)
		})
	}

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Renderer{io: io, event: event, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Render emits the snapshot as a JSON object.
func (r *Renderer) Render(_ context.Context, snap engine.Snapshot) error {
	payload, err := toPayload(snap)
	if err != nil {
		return err
	}
	r.io.Emit(r.event, payload)
	return nil
}

// Close disconnects from the server.
func (r *Renderer) Close() error {
	r.logger.Info("Disconnecting socket.io client", "sid", r.io.Id())
	r.io.Disconnect()
	return nil
}

// toPayload converts the snapshot into the generic JSON shape the socket.io
// encoder expects.
func toPayload(snap engine.Snapshot) (map[string]any, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return payload, nil
}

// parseTrip reads a {"from": n, "to": m} event payload.
func parseTrip(data []any) (int, int, error) {
	if len(data) == 0 {
		return 0, 0, errors.New("empty payload")
	}
	obj, ok := data[0].(map[string]any)
	if !ok {
		return 0, 0, fmt.Errorf("payload must be an object, got %T", data[0])
	}
	from, err := floorField(obj, "from")
	if err != nil {
		return 0, 0, err
	}
	to, err := floorField(obj, "to")
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func floorField(obj map[string]any, key string) (int, error) {
	v, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%q must be a whole number, got %v", key, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%q must be a whole number: %w", key, err)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("%q must be a number, got %T", key, v)
	}
}

func connectError(errs []any) error {
	if len(errs) > 0 {
		if err, ok := errs[0].(error); ok {
			return err
		}
		return fmt.Errorf("%v", errs[0])
	}
	return errors.New("unknown connect error")
}

// Register registers the renderer with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRenderer("socketio", &registry.RegisteredRenderer{
		Description: "Publishes snapshots to a socket.io server and accepts trip requests from it.",
		New: func(ctx context.Context, deps *registry.Deps, spec *config.Renderer) (engine.Renderer, error) {
			input := new(Input)
			if err := registry.DecodeBody(spec, input); err != nil {
				return nil, err
			}
			if input.URL == "" {
				return nil, errors.New("url is required")
			}
			return Connect(ctx, input, deps.Submitter)
		},
	})
}
