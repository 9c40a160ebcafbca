package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/minhyannv/prompt-cli/pkg/completion"
	configpkg "github.com/minhyannv/prompt-cli/pkg/config"
	loggerpkg "github.com/minhyannv/prompt-cli/pkg/logger"
	"github.com/minhyannv/prompt-cli/pkg/preamble"
)

const instrumentationName = "github.com/minhyannv/prompt-cli/pkg/session"

// Completer sends one completion request.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (completion.Response, error)
}

// Indicator is shown for the duration of a request.
type Indicator interface {
	Start()
	Stop()
}

type nopIndicator struct{}

func (nopIndicator) Start() {}
func (nopIndicator) Stop()  {}

// Session drives single, independent completion turns.
type Session struct {
	config    configpkg.Config
	client    Completer
	preamble  string
	indicator Indicator

	logger  loggerpkg.Logger
	verbose bool

	tracer   trace.Tracer
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// New validates cfg and builds a Session. A missing API token fails here,
// before any client exists.
func New(cfg configpkg.Config, opts ...Option) (*Session, error) {
	cfg = configpkg.Normalize(cfg)
	deps := sessionDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "session init", map[string]any{
		"max_tokens":    cfg.MaxTokens,
		"preamble_name": cfg.PreambleName,
		"preamble_dirs": cfg.PreambleDirs,
		"timeout":       cfg.Timeout.String(),
	})
	if err := configpkg.Validate(cfg); err != nil {
		return nil, err
	}

	text, err := resolvePreamble(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve preamble: %w", err)
	}
	loggerpkg.Debug(cfg.Verbose, deps.logger, "preamble ready", map[string]any{
		"bytes": len(text),
	})

	client := deps.completer
	if client == nil {
		httpClient := completion.NewClient(cfg)
		loggerpkg.Debug(cfg.Verbose, deps.logger, "completion client ready", map[string]any{
			"base_url": cfg.BaseURL,
			"endpoint": httpClient.Endpoint(),
		})
		client = httpClient
	}
	indicator := deps.indicator
	if indicator == nil {
		indicator = nopIndicator{}
	}
	tracer := deps.tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	meter := deps.meter
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	requests, err := meter.Int64Counter("completion.requests",
		metric.WithDescription("Completion requests by outcome"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}
	latency, err := meter.Float64Histogram("completion.latency",
		metric.WithDescription("Completion round-trip time"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create latency histogram: %w", err)
	}

	return &Session{
		config:    cfg,
		client:    client,
		preamble:  text,
		indicator: indicator,

		logger:  deps.logger,
		verbose: cfg.Verbose,

		tracer:   tracer,
		requests: requests,
		latency:  latency,
	}, nil
}

func resolvePreamble(cfg configpkg.Config) (string, error) {
	if text := strings.TrimSpace(cfg.Preamble); text != "" {
		return text, nil
	}
	if cfg.PreambleName == "" {
		return configpkg.DefaultPreamble, nil
	}
	profiles, err := preamble.LoadFromDirs(cfg.PreambleDirs)
	if err != nil {
		return "", fmt.Errorf("load preambles: %w", err)
	}
	return preamble.Resolve(cfg.PreambleName, profiles)
}

// Preamble returns the instruction prepended to every line.
func (s *Session) Preamble() string {
	return s.preamble
}

// Ask sends one line and returns the first choice text verbatim.
// Turns share no state: the request is built only from the preamble and line.
func (s *Session) Ask(ctx context.Context, line string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	turnID := uuid.NewString()
	req := completion.NewRequest(s.preamble, line, s.config.MaxTokens)

	ctx, span := s.tracer.Start(ctx, "completion.turn", trace.WithAttributes(
		attribute.String("turn.id", turnID),
		attribute.Int("completion.max_tokens", req.MaxTokens),
		attribute.Int("completion.prompt_bytes", len(req.Prompt)),
	))
	defer span.End()

	loggerpkg.Debug(s.verbose, s.logger, "turn start", map[string]any{
		"turn_id":      turnID,
		"prompt_bytes": len(req.Prompt),
	})

	start := time.Now()
	s.indicator.Start()
	resp, err := s.client.Complete(ctx, req)
	s.indicator.Stop()

	var text string
	if err == nil {
		text, err = resp.FirstText()
	}
	elapsed := time.Since(start)

	outcome := completion.Outcome(err)
	outcomeAttr := metric.WithAttributes(attribute.String("outcome", outcome))
	s.requests.Add(ctx, 1, outcomeAttr)
	s.latency.Record(ctx, elapsed.Seconds(), outcomeAttr)
	span.SetAttributes(attribute.String("completion.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		fields := map[string]any{
			"turn_id": turnID,
			"outcome": outcome,
			"error":   err.Error(),
			"elapsed": elapsed.String(),
		}
		var decodeErr *completion.DecodeError
		if errors.As(err, &decodeErr) {
			fields["response_body"] = decodeErr.Body
		}
		loggerpkg.Warn(s.logger, "turn failed", fields)
		return "", err
	}

	loggerpkg.Debug(s.verbose, s.logger, "turn done", map[string]any{
		"turn_id":       turnID,
		"response_id":   resp.ID,
		"choices":       len(resp.Choices),
		"finish_reason": resp.Choices[0].FinishReason,
		"elapsed":       elapsed.String(),
	})
	return text, nil
}
