package webhook

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	EventMatchesChanged = "matches_changed"

	defaultTimeout = 3 * time.Second
	defaultWorkers = 4
)

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	// Workers bounds concurrent deliveries. Events arriving while every
	// worker is busy are dropped and logged.
	Workers int
	Logger  *logging.Logger
}

// Event is the JSON body posted to the results endpoint.
type Event struct {
	Type       string    `json:"type"`
	SportID    string    `json:"sport_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher pushes bracket change events to an external results board.
type Publisher struct {
	client  *fasthttp.Client
	pool    *ants.Pool
	url     string
	token   string
	timeout time.Duration
	logger  *logging.Logger
	now     func() time.Time
}

func NewPublisher(cfg Config) (*Publisher, error) {
	url := strings.TrimSpace(cfg.URL)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, crerr.Newf("webhook url %q must use http or https", cfg.URL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, crerr.Wrap(err, "create webhook worker pool")
	}

	return &Publisher{
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		url:     url,
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		logger:  logger.Named("webhook"),
		now:     time.Now,
		pool:    pool,
	}, nil
}

// MatchesChanged queues a change event and returns without waiting for the
// delivery. Delivery failures are only logged.
func (p *Publisher) MatchesChanged(ctx context.Context, sportID string) {
	event := Event{
		Type:       EventMatchesChanged,
		SportID:    sportID,
		OccurredAt: p.now().UTC(),
	}
	deliverCtx := context.WithoutCancel(ctx)

	err := p.pool.Submit(func() {
		if err := p.Publish(deliverCtx, event); err != nil {
			p.logger.WarnContext(deliverCtx, "publish results webhook failed", "sport_id", sportID, "error", err)
		}
	})
	if err != nil {
		p.logger.WarnContext(ctx, "results webhook event dropped", "sport_id", sportID, "error", err)
	}
}

// Close waits up to the delivery timeout for queued events, then stops the
// workers.
func (p *Publisher) Close() error {
	if err := p.pool.ReleaseTimeout(p.timeout); err != nil {
		return crerr.Wrap(err, "release webhook workers")
	}
	return nil
}

func (p *Publisher) Publish(ctx context.Context, event Event) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return crerr.Wrap(err, "encode webhook event")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(buf.B)

	deadline := time.Now().Add(p.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := ctx.Err(); err != nil {
		return crerr.Wrap(err, "webhook context done")
	}
	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return crerr.Wrapf(err, "post webhook event type=%s", event.Type)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return crerr.Newf("webhook responded with status=%d body=%q", status, truncate(string(resp.Body()), 256))
	}

	p.logger.DebugContext(ctx, "results webhook delivered", "type", event.Type, "sport_id", event.SportID, "status", status)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
