package fluentrest

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/martinezcarlos/fluent-rest-template/service"
)

var (
	// ErrMethodNotSupported is returned when the configured transport reports
	// that it cannot issue the selected HTTP method.
	ErrMethodNotSupported = errors.New("http method not supported by transport")

	// ErrNilService is returned when a chain is pointed at a nil Service.
	ErrNilService = errors.New("service must not be nil")
)

// MethodSupport is an optional interface a transport can implement to
// advertise which HTTP methods it is able to issue. When the transport of a
// Template implements it, verb selection fails fast with
// ErrMethodNotSupported before any URI work happens.
type MethodSupport interface {
	SupportsMethod(method string) bool
}

// Template wraps an *http.Client, the transport collaborator, and starts
// fluent call chains with its verb methods.
//
//	rest := fluentrest.New(
//	    fluentrest.WithTimeout(10 * time.Second),
//	    fluentrest.WithDebug(),
//	)
//
// A Template is safe for concurrent use; every verb call starts an
// independent chain.
type Template struct {
	client         *http.Client
	defaultHeaders http.Header
	requestID      bool
	debug          bool
	logger         zerolog.Logger
}

// Option configures a Template created by New.
type Option func(*Template)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Template) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTransport replaces the transport of the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(t *Template) { t.client.Transport = rt }
}

// WithTimeout sets the overall per-call timeout on the underlying client.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Template) { t.client.Timeout = timeout }
}

// WithDefaultHeader adds header values applied to every request issued
// through this Template. Call-specific headers for the same name replace
// them.
func WithDefaultHeader(name string, values ...string) Option {
	return func(t *Template) {
		for _, v := range values {
			t.defaultHeaders.Add(name, v)
		}
	}
}

// WithRequestID stamps every request with a fresh UUID in the X-Request-Id
// header. A caller-supplied X-Request-Id is kept untouched.
func WithRequestID() Option {
	return func(t *Template) { t.requestID = true }
}

// WithDebug enables request/response logging.
func WithDebug() Option {
	return func(t *Template) { t.debug = true }
}

// WithLogger replaces the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Template) { t.logger = logger }
}

// New creates a Template. With no options it uses a plain *http.Client with
// a 30 second timeout.
func New(opts ...Option) *Template {
	t := &Template{
		client:         &http.Client{Timeout: 30 * time.Second},
		defaultHeaders: make(http.Header),
		logger:         debugLogger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Get starts a GET chain.
func (t *Template) Get() *Starter { return t.starter(http.MethodGet, nil) }

// Delete starts a DELETE chain.
func (t *Template) Delete() *Starter { return t.starter(http.MethodDelete, nil) }

// Post starts a POST chain carrying body. Pass nil for an empty body.
func (t *Template) Post(body any) *Starter { return t.starter(http.MethodPost, body) }

// Put starts a PUT chain carrying body. Pass nil for an empty body.
func (t *Template) Put(body any) *Starter { return t.starter(http.MethodPut, body) }

// Patch starts a PATCH chain carrying body. Pass nil for an empty body.
//
// If the configured transport implements MethodSupport and reports PATCH as
// unsupported, the chain fails immediately with ErrMethodNotSupported and no
// URI building or transport interaction takes place.
func (t *Template) Patch(body any) *Starter { return t.starter(http.MethodPatch, body) }

func (t *Template) starter(method string, body any) *Starter {
	s := &Starter{t: t, method: method, body: body}
	if ms, ok := t.client.Transport.(MethodSupport); ok && !ms.SupportsMethod(method) {
		s.err = fmt.Errorf("%w: %s", ErrMethodNotSupported, method)
	}
	return s
}

// Starter is the phase right after verb selection: it picks where the URI
// comes from.
type Starter struct {
	t      *Template
	method string
	body   any
	err    error
}

// From points the chain at a Service and moves to endpoint selection.
func (s *Starter) From(svc *service.Service) *EndpointSelector {
	es := &EndpointSelector{t: s.t, method: s.method, body: s.body, svc: svc, err: s.err}
	if es.err == nil && svc == nil {
		es.err = ErrNilService
	}
	return es
}

// FromURL derives a throwaway Service from the given URI and skips endpoint
// selection.
func (s *Starter) FromURL(u *url.URL) *RequestResolver {
	if s.err != nil {
		return &RequestResolver{t: s.t, method: s.method, body: s.body, err: s.err}
	}
	svc, err := service.From(u)
	if err != nil {
		return &RequestResolver{t: s.t, method: s.method, body: s.body, err: err}
	}
	return s.From(svc).NoEndpoint()
}

// FromString derives a throwaway Service from the given URI string and skips
// endpoint selection.
func (s *Starter) FromString(raw string) *RequestResolver {
	if s.err != nil {
		return &RequestResolver{t: s.t, method: s.method, body: s.body, err: s.err}
	}
	svc, err := service.FromString(raw)
	if err != nil {
		return &RequestResolver{t: s.t, method: s.method, body: s.body, err: err}
	}
	return s.From(svc).NoEndpoint()
}

// Into is From, phrased for the verbs that carry a body.
func (s *Starter) Into(svc *service.Service) *EndpointSelector { return s.From(svc) }

// IntoURL is FromURL, phrased for the verbs that carry a body.
func (s *Starter) IntoURL(u *url.URL) *RequestResolver { return s.FromURL(u) }

// IntoString is FromString, phrased for the verbs that carry a body.
func (s *Starter) IntoString(raw string) *RequestResolver { return s.FromString(raw) }

// EndpointSelector picks which of the Service's named endpoints, if any, the
// call targets.
type EndpointSelector struct {
	t      *Template
	method string
	body   any
	svc    *service.Service
	err    error
}

// Endpoint scopes the chain to the endpoint registered under key. An
// unregistered key is not an error; the URI is built without an endpoint
// piece.
func (e *EndpointSelector) Endpoint(key string) *RequestResolver {
	rr := &RequestResolver{t: e.t, method: e.method, body: e.body, err: e.err}
	if rr.err == nil {
		rr.resolver = e.svc.Resolver(key)
	}
	return rr
}

// NoEndpoint builds the URI from the Service's base parts alone.
func (e *EndpointSelector) NoEndpoint() *RequestResolver {
	return e.Endpoint("")
}

// RequestResolver accumulates call-specific URI parts. It mirrors
// service.Resolver and hands over to an Executor once the URI is complete.
type RequestResolver struct {
	t        *Template
	method   string
	body     any
	resolver *service.Resolver
	err      error
}

// QueryParam appends query parameter values under key, on top of the
// Service's common parameters.
func (r *RequestResolver) QueryParam(key string, values ...string) *RequestResolver {
	if r.err == nil {
		r.resolver.QueryParam(key, values...)
	}
	return r
}

// QueryParams replaces the entire query parameter set, common defaults
// included. See service.Resolver.QueryParams.
func (r *RequestResolver) QueryParams(params *service.Values) *RequestResolver {
	if r.err == nil {
		r.resolver.QueryParams(params)
	}
	return r
}

// Fragment overrides the fragment; an empty string clears it.
func (r *RequestResolver) Fragment(fragment string) *RequestResolver {
	if r.err == nil {
		r.resolver.Fragment(fragment)
	}
	return r
}

// URIVariable binds a template variable for this call.
func (r *RequestResolver) URIVariable(key string, value any) *RequestResolver {
	if r.err == nil {
		r.resolver.URIVariable(key, value)
	}
	return r
}

// URIVariables binds every entry of vars. A nil map is a no-op.
func (r *RequestResolver) URIVariables(vars map[string]any) *RequestResolver {
	if r.err == nil {
		r.resolver.URIVariables(vars)
	}
	return r
}

// Executor resolves the URI and moves to the request assembly phase. A URI
// that cannot be resolved (an unbound template variable, for instance) makes
// the returned Executor fail on execution.
func (r *RequestResolver) Executor() *Executor {
	ex := &Executor{t: r.t, method: r.method, body: r.body, headers: make(http.Header), err: r.err}
	if ex.err == nil {
		u, err := r.resolver.Build()
		if err != nil {
			ex.err = err
		} else {
			ex.url = u
		}
	}
	return ex
}
