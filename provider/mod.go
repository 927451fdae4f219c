// Package provider implements a client of the JSON-RPC API of the chain over
// HTTP. Each request is traced and measured.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
	"go.dedis.ch/zilliqa/internal/tracing"
	"golang.org/x/net/context/ctxhttp"
	"golang.org/x/xerrors"
)

// Known endpoints of the public networks.
const (
	MainnetURL  = "https://api.zilliqa.com"
	TestnetURL  = "https://dev-api.zilliqa.com"
	IsolatedURL = "https://zilliqa-isolated-server.zilliqa.com"
	LocalURL    = "http://127.0.0.1:5555"
)

// TracerService is the name of the service used to trace the requests.
const TracerService = "zilliqa-provider"

const jsonrpcVersion = "2.0"

// getTracer can be replaced by the tests.
var getTracer = tracing.GetTracer

// RPCError is the error returned by the endpoint. The methods of the provider
// wrap it with %w so that callers can branch on the code with xerrors.As.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements error.
func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type request struct {
	ID      string        `json:"id"`
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type response struct {
	ID      string          `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// Provider is a client of a JSON-RPC endpoint.
type Provider struct {
	url    string
	client *http.Client
	tracer opentracing.Tracer
	logger zerolog.Logger
	nextID func() string
}

// Option is the type of option to configure a provider.
type Option func(*Provider)

// WithHTTPClient sets the HTTP client used to send the requests.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

// WithTracer sets the tracer of the requests.
func WithTracer(tracer opentracing.Tracer) Option {
	return func(p *Provider) {
		p.tracer = tracer
	}
}

// WithLogger sets the logger of the provider.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// New creates a provider for the endpoint. Unless an option sets one, the
// tracer is built from the Jaeger environment and a failure falls back to a
// tracer that does nothing.
func New(url string, opts ...Option) *Provider {
	p := &Provider{
		url:    url,
		client: http.DefaultClient,
		logger: zilliqa.Logger.With().Str("component", "provider").Logger(),
		nextID: func() string { return xid.New().String() },
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.tracer == nil {
		tracer, err := getTracer(TracerService)
		if err != nil {
			p.logger.Warn().Err(err).Msg("tracing disabled")
			tracer = opentracing.NoopTracer{}
		}

		p.tracer = tracer
	}

	return p
}

// URL returns the endpoint of the provider.
func (p *Provider) URL() string {
	return p.url
}

// Call sends a request for the method with the parameters and decodes the
// result into the given value, which can be nil to ignore it.
func (p *Provider) Call(ctx context.Context, method string, result interface{},
	params ...interface{}) error {

	start := time.Now()

	status, err := p.call(ctx, method, result, params)

	promRequests.WithLabelValues(method, status).Inc()
	promLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())

	return err
}

func (p *Provider) call(ctx context.Context, method string, result interface{},
	params []interface{}) (string, error) {

	if params == nil {
		params = []interface{}{}
	}

	req := request{
		ID:      p.nextID(),
		JSONRPC: jsonrpcVersion,
		Method:  method,
		Params:  params,
	}

	span := p.tracer.StartSpan("rpc." + method)
	span.SetTag(tracing.EndpointTag, p.url)
	defer span.Finish()

	body, err := json.Marshal(req)
	if err != nil {
		return statusInvalid, xerrors.Errorf("failed to encode request: %v", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return statusInvalid, xerrors.Errorf("failed to create request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	err = p.tracer.Inject(span.Context(), opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(httpReq.Header))
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to inject span")
	}

	start := time.Now()

	httpResp, err := ctxhttp.Do(ctx, p.client, httpReq)
	if err != nil {
		return statusTransport, xerrors.Errorf("failed to send request: %v", err)
	}

	defer httpResp.Body.Close()

	p.logger.Debug().
		Str("method", method).
		Str("id", req.ID).
		Int("status", httpResp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request sent")

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return statusTransport, xerrors.Errorf("failed to read response: %v", err)
	}

	var resp response

	err = json.Unmarshal(data, &resp)
	if err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return statusTransport, xerrors.Errorf("unexpected status %s", httpResp.Status)
		}

		return statusInvalid, xerrors.Errorf("failed to decode response: %v", err)
	}

	if resp.Error != nil {
		span.SetTag("error", true)
		return statusRPC, resp.Error
	}

	if result == nil {
		return statusOK, nil
	}

	err = json.Unmarshal(resp.Result, result)
	if err != nil {
		return statusInvalid, xerrors.Errorf("failed to decode result: %v", err)
	}

	return statusOK, nil
}
