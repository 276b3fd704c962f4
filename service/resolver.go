package service

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrUnboundVariable is returned by Resolver.Build when a {name} placeholder
// has no matching variable binding.
var ErrUnboundVariable = errors.New("unbound uri template variable")

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Resolver accumulates the call-specific parts of one URI (extra query
// parameters, a fragment override, template variable bindings) on top of
// the owning Service's defaults, and resolves them into a final URI.
//
// A Resolver is created by Service.Resolver, mutated through chained calls
// and consumed by Build. It is meant for a single call and is not safe for
// concurrent use.
type Resolver struct {
	scheme   string
	host     string
	port     string
	path     string
	query    *Values
	fragment string
	vars     map[string]any
}

// QueryParam appends values under key. Values seeded from the Service's
// common query parameters are kept; the new ones extend the list for that
// key. Passing zero values is a no-op.
func (r *Resolver) QueryParam(key string, values ...string) *Resolver {
	r.query.Add(key, values...)
	return r
}

// QueryParams replaces the entire accumulated query parameter set, common
// defaults included, with the given one. This is deliberately asymmetric
// with the additive QueryParam: it lets a call site discard the Service's
// defaults wholesale. A nil argument is a no-op.
func (r *Resolver) QueryParams(params *Values) *Resolver {
	if params != nil {
		r.query = params.Clone()
	}
	return r
}

// Fragment overrides the fragment, whether it came from the Service or from
// an earlier call. An empty string clears it: an explicit override always
// wins, there is no way to "unset" back to the common fragment.
func (r *Resolver) Fragment(fragment string) *Resolver {
	r.fragment = fragment
	return r
}

// URIVariable binds value to the template variable named key. Later calls
// for the same key overwrite earlier ones. The value is rendered with
// fmt.Sprint at build time.
func (r *Resolver) URIVariable(key string, value any) *Resolver {
	if key != "" {
		r.vars[key] = value
	}
	return r
}

// URIVariables binds every entry of vars. A nil map is a no-op.
func (r *Resolver) URIVariables(vars map[string]any) *Resolver {
	for k, v := range vars {
		r.URIVariable(k, v)
	}
	return r
}

// Build expands all {name} placeholders in every URI component (scheme,
// host, port, path, query parameters and fragment) using the accumulated
// variable bindings and returns the resolved URI. Variable values expanded into the path are percent-encoded; query
// keys and values are encoded once during assembly.
//
// A placeholder with no matching binding fails with ErrUnboundVariable.
// Build does not consume the Resolver's state: calling it again yields the
// same URI.
func (r *Resolver) Build() (*url.URL, error) {
	scheme, err := expand(r.scheme, r.vars, nil)
	if err != nil {
		return nil, err
	}
	host, err := expand(r.host, r.vars, nil)
	if err != nil {
		return nil, err
	}
	port, err := expand(r.port, r.vars, nil)
	if err != nil {
		return nil, err
	}
	u := &url.URL{Scheme: scheme, Host: hostPort(host, port)}

	path, err := expand(r.path, r.vars, nil)
	if err != nil {
		return nil, err
	}
	u.Path = path
	if escaped, err := expand(r.path, r.vars, url.PathEscape); err == nil && escaped != path {
		u.RawPath = escaped
	}

	if r.query.Len() > 0 {
		rawQuery, err := r.encodeQuery()
		if err != nil {
			return nil, err
		}
		u.RawQuery = rawQuery
	}

	if r.fragment != "" {
		fragment, err := expand(r.fragment, r.vars, nil)
		if err != nil {
			return nil, err
		}
		u.Fragment = fragment
	}
	return u, nil
}

func (r *Resolver) encodeQuery() (string, error) {
	var b strings.Builder
	for _, key := range r.query.Keys() {
		k, err := expand(key, r.vars, nil)
		if err != nil {
			return "", err
		}
		for _, value := range r.query.Get(key) {
			v, err := expand(value, r.vars, nil)
			if err != nil {
				return "", err
			}
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String(), nil
}

// expand substitutes every {name} placeholder in template with its binding,
// optionally escaping the substituted value. Literal text passes through
// untouched.
func expand(template string, vars map[string]any, escape func(string) string) (string, error) {
	var unbound string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := vars[name]
		if !ok {
			if unbound == "" {
				unbound = name
			}
			return match
		}
		s := fmt.Sprint(value)
		if escape != nil {
			s = escape(s)
		}
		return s
	})
	if unbound != "" {
		return "", fmt.Errorf("%w: {%s}", ErrUnboundVariable, unbound)
	}
	return out, nil
}

func hostPort(host, port string) string {
	if host == "" {
		return ""
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if strings.TrimSpace(port) == "" {
		return host
	}
	return host + ":" + port
}
