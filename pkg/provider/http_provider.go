package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/poktfn/pocket-go/pkg/log"
)

const (
	// rawTxPath is the node's broadcast endpoint.
	rawTxPath = "/v1/client/rawtx"
	// requestIDHeader correlates requests in node logs.
	requestIDHeader = "X-Request-ID"
)

var _ Provider = (*HTTPProvider)(nil)

// HTTPProviderConfig contains configuration options for the HTTP provider.
type HTTPProviderConfig struct {
	// BaseURL is the node's RPC base URL, e.g. "https://node.example.com:8081".
	BaseURL string
	// Client is the HTTP client to use. Defaults to a client with a 30s
	// timeout. Any retry or failover policy belongs in here, not in the SDK.
	Client *http.Client
	// Logger defaults to a no-op logger.
	Logger log.Logger
	// Metrics defaults to nil (no metrics recorded).
	Metrics *Metrics
}

// HTTPProvider broadcasts raw transactions over a single HTTP POST per call.
// It never retries: a broadcast that timed out may still have been accepted,
// and only the caller can decide whether re-broadcasting is safe.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	lg      log.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// NewHTTPProvider creates an HTTPProvider from the given config.
func NewHTTPProvider(cfg HTTPProviderConfig) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("provider base URL is required")
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	lg := cfg.Logger
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		lg:      lg.NewSystem("http-provider"),
		metrics: cfg.Metrics,
		tracer:  otel.Tracer("pocket-go/provider"),
	}, nil
}

// SendTransaction implements Provider.
func (p *HTTPProvider) SendTransaction(ctx context.Context, raw *RawTransaction) (*TxResponse, error) {
	ctx, span := p.tracer.Start(ctx, "provider.SendTransaction",
		trace.WithAttributes(attribute.String("tx.address", raw.Address)))
	defer span.End()

	started := time.Now()
	if p.metrics != nil {
		p.metrics.BroadcastsTotal.Inc()
	}

	resp, err := p.post(ctx, raw)
	if p.metrics != nil {
		p.metrics.BroadcastDuration.Observe(time.Since(started).Seconds())
	}
	if err != nil {
		if p.metrics != nil {
			p.metrics.BroadcastsFail.WithLabelValues(failReason(err)).Inc()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "broadcast failed")
		return nil, err
	}

	if p.metrics != nil {
		p.metrics.BroadcastsSuccess.Inc()
	}
	span.SetAttributes(attribute.String("tx.hash", resp.TxHash))
	p.lg.Debug("transaction broadcast accepted", "txHash", resp.TxHash, "address", raw.Address)
	return resp, nil
}

func (p *HTTPProvider) post(ctx context.Context, raw *RawTransaction) (*TxResponse, error) {
	body, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "encoding broadcast request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+rawTxPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building broadcast request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	httpResp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "broadcast request")
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "reading broadcast response")
	}

	if httpResp.StatusCode != http.StatusOK {
		// The node's rejection reason travels in the body; surface it
		// verbatim so the caller sees what the validator saw.
		return nil, &NodeError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp TxResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding broadcast response")
	}
	return &resp, nil
}

// NodeError is a broadcast rejection from the node, carried to the caller
// unchanged.
type NodeError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return "node rejected transaction (status " + strconv.Itoa(e.StatusCode) + "): " + e.Body
}

func failReason(err error) string {
	var nodeErr *NodeError
	if errors.As(err, &nodeErr) {
		return "rejected"
	}
	return "transport"
}
