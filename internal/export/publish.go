package export

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultPublishTimeout bounds the connection attempt when none is configured.
const DefaultPublishTimeout = 15 * time.Second

// PublishConfig describes a socket.io endpoint that receives exported records.
type PublishConfig struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Publisher emits exported records as a single socket.io event.
type Publisher struct {
	cfg    PublishConfig
	target *url.URL
}

// NewPublisher validates cfg and returns a publisher. No connection is made
// until Publish is called.
func NewPublisher(cfg PublishConfig) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("publish url is required")
	}
	if cfg.Event == "" {
		return nil, errors.New("publish event is required")
	}
	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse publish url: %w", err)
	}
	switch target.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported publish url scheme %q", target.Scheme)
	}
	if target.Host == "" {
		return nil, fmt.Errorf("publish url %q has no host", cfg.URL)
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPublishTimeout
	}
	return &Publisher{cfg: cfg, target: target}, nil
}

// Config returns the effective configuration.
func (p *Publisher) Config() PublishConfig {
	return p.cfg
}

// Publish connects, emits the records under the configured event and
// disconnects. Each record is sent as a flat object.
func (p *Publisher) Publish(ctx context.Context, records []Record) error {
	logger := ctxlog.FromContext(ctx).With("url", p.cfg.URL, "event", p.cfg.Event)

	client, err := p.connect(ctx)
	if err != nil {
		return &Error{Path: p.cfg.URL, Err: err}
	}
	defer client.Disconnect()

	payload := make([]map[string]string, 0, len(records))
	for _, r := range records {
		payload = append(payload, r.Map())
	}
	client.Emit(p.cfg.Event, payload)
	logger.Info("Records published.", "records", len(records), "sid", client.Id())
	return nil
}

func (p *Publisher) connect(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx)

	opts := socket.DefaultOptions()
	if p.target.Path != "" && p.target.Path != "/" {
		opts.SetPath(p.target.Path)
	}
	if p.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connected := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", p.target.Scheme, p.target.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(p.cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Publisher connected.", "sid", io.Id())
		connected <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connected <- err
	})

	io.Connect()

	timer := time.NewTimer(p.cfg.Timeout)
	defer timer.Stop()

	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-timer.C:
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", p.cfg.Timeout)
	}
}
