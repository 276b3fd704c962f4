package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrNilURI is returned when a Service is derived from a nil URI.
	ErrNilURI = errors.New("uri must not be nil")

	// ErrEmptyURI is returned when a Service is derived from a blank URI string.
	ErrEmptyURI = errors.New("uri string must not be empty")
)

// Service is a reusable template for a family of endpoints sharing scheme,
// host, port, context path and API version.
//
// The version, when set, becomes a path piece placed after the context path.
// An endpoint path, when requested by key, becomes a path piece placed after
// the version. Registered common query parameters and the common fragment
// apply to every URI built from this Service unless a Resolver overrides
// them.
//
// A Service is safe for concurrent use once configuration has finished: every
// Resolver gets its own copy of the seeded state.
type Service struct {
	scheme            string
	host              string
	port              string
	contextPath       string
	version           string
	endpoints         map[string]string
	commonQueryParams *Values
	commonFragment    string
}

// Option configures a Service created by New.
type Option func(*Service)

// WithScheme sets the URI scheme, e.g. "https".
func WithScheme(scheme string) Option {
	return func(s *Service) { s.scheme = scheme }
}

// WithHost sets the host name.
func WithHost(host string) Option {
	return func(s *Service) { s.host = host }
}

// WithPort sets the port. Blank means no port segment in built URIs.
func WithPort(port string) Option {
	return func(s *Service) { s.port = port }
}

// WithContextPath sets the context path. It is kept verbatim as a single
// path piece; internal slashes are not decomposed.
func WithContextPath(contextPath string) Option {
	return func(s *Service) { s.contextPath = contextPath }
}

// WithVersion sets the API version path piece.
func WithVersion(version string) Option {
	return func(s *Service) { s.version = version }
}

// WithEndpoint registers one endpoint path template under key.
func WithEndpoint(key, path string) Option {
	return func(s *Service) { s.Endpoint(key, path) }
}

// WithEndpoints registers all endpoint path templates of the given map.
func WithEndpoints(endpoints map[string]string) Option {
	return func(s *Service) { s.Endpoints(endpoints) }
}

// WithQueryParam registers common query parameter values under key.
func WithQueryParam(key string, values ...string) Option {
	return func(s *Service) { s.CommonQueryParam(key, values...) }
}

// WithQueryParams merges the given parameters into the common query
// parameter set.
func WithQueryParams(params *Values) Option {
	return func(s *Service) { s.CommonQueryParams(params) }
}

// WithFragment sets the common fragment.
func WithFragment(fragment string) Option {
	return func(s *Service) { s.commonFragment = fragment }
}

// New creates a Service. With no options every field is empty and the caller
// configures the Service incrementally through its mutators.
func New(opts ...Option) *Service {
	s := &Service{
		endpoints:         make(map[string]string),
		commonQueryParams: NewValues(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// From derives a Service from a URI. Scheme, host and port are taken as-is;
// the whole path becomes the context path verbatim; the query string becomes
// the common query parameters, duplicate keys preserved in wire order; the
// fragment becomes the common fragment. Version and endpoints stay empty and
// can be set afterwards.
func From(u *url.URL) (*Service, error) {
	if u == nil {
		return nil, ErrNilURI
	}
	params, err := parseValues(u.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}
	s := New(
		WithScheme(u.Scheme),
		WithHost(u.Hostname()),
		WithPort(u.Port()),
		WithContextPath(u.Path),
		WithFragment(u.Fragment),
	)
	s.commonQueryParams = params
	return s, nil
}

// FromString derives a Service from a string representation of a URI.
//
// Everything between the authority and the query delimiter is considered
// path and becomes the context path:
//
//	https://foo.bar/this-is-path
//	https://foo.bar:80/this/is/path/too?baz=bam
func FromString(raw string) (*Service, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyURI
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse uri string: %w", err)
	}
	return From(u)
}

// Version sets (or overrides) the API version.
func (s *Service) Version(version string) *Service {
	s.version = version
	return s
}

// Endpoint registers an endpoint path template under key, replacing any
// previous value for that key. Blank keys or paths are ignored.
func (s *Service) Endpoint(key, path string) *Service {
	if strings.TrimSpace(key) == "" || strings.TrimSpace(path) == "" {
		return s
	}
	s.endpoints[key] = path
	return s
}

// Endpoints registers every endpoint of the given map. A nil map is a no-op.
func (s *Service) Endpoints(endpoints map[string]string) *Service {
	for k, v := range endpoints {
		s.Endpoint(k, v)
	}
	return s
}

// CommonQueryParam appends values to the common query parameters under key.
// Values already present under the same key are kept; the new ones extend
// the list.
func (s *Service) CommonQueryParam(key string, values ...string) *Service {
	s.commonQueryParams.Add(key, values...)
	return s
}

// CommonQueryParams merges the given parameters into the common set. A nil
// argument is a no-op.
func (s *Service) CommonQueryParams(params *Values) *Service {
	s.commonQueryParams.Merge(params)
	return s
}

// CommonFragment sets the fragment used by every URI built from this Service
// unless a Resolver overrides it. An empty string means no fragment.
func (s *Service) CommonFragment(fragment string) *Service {
	s.commonFragment = fragment
	return s
}

// Resolver starts the per-call URI building phase, seeded with this
// Service's defaults plus the endpoint path registered under endpointKey.
//
// A blank or unregistered key is not an error: the URI is built without an
// endpoint piece. Pass "" when no endpoint applies.
//
// Each call returns an independent Resolver with its own variable map and
// its own copy of the common query parameters, so concurrent calls sharing
// one Service never observe each other's additions.
func (s *Service) Resolver(endpointKey string) *Resolver {
	return &Resolver{
		scheme:   s.scheme,
		host:     s.host,
		port:     s.port,
		path:     joinPath(s.contextPath, s.version, s.endpoints[endpointKey]),
		query:    s.commonQueryParams.Clone(),
		fragment: s.commonFragment,
		vars:     make(map[string]any),
	}
}

// joinPath concatenates the non-blank pieces with single slashes. Each piece
// stays intact apart from trimming the slashes at its edges; a context path
// like "/a/b" is not decomposed.
func joinPath(pieces ...string) string {
	parts := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, strings.Trim(p, "/"))
	}
	if len(parts) == 0 {
		return ""
	}
	return "/" + strings.Join(parts, "/")
}
