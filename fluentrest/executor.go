package fluentrest

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Executor is the final phase of a chain: it collects headers, assembles the
// request and hands it to the transport.
type Executor struct {
	t       *Template
	method  string
	url     *url.URL
	headers http.Header
	body    any
	err     error
}

// Header appends values under the given header name.
func (e *Executor) Header(name string, values ...string) *Executor {
	for _, v := range values {
		e.headers.Add(name, v)
	}
	return e
}

// Headers appends every value of the given header map. Note the contrast
// with RequestResolver.QueryParams: headers merge, query parameter bulk-set
// replaces.
func (e *Executor) Headers(headers http.Header) *Executor {
	for name, values := range headers {
		for _, v := range values {
			e.headers.Add(name, v)
		}
	}
	return e
}

// Accept sets the Accept header to the given media types. The last call
// wins. Passing zero media types is a no-op.
func (e *Executor) Accept(mediaTypes ...string) *Executor {
	if len(mediaTypes) > 0 {
		e.headers.Set("Accept", strings.Join(mediaTypes, ", "))
	}
	return e
}

// AcceptCharset sets the Accept-Charset header to the given charsets. The
// last call wins. Passing zero charsets is a no-op.
func (e *Executor) AcceptCharset(charsets ...string) *Executor {
	if len(charsets) > 0 {
		e.headers.Set("Accept-Charset", strings.Join(charsets, ", "))
	}
	return e
}

// ContentType sets the Content-Type header, overriding the media type
// detected from the body.
func (e *Executor) ContentType(mediaType string) *Executor {
	e.headers.Set("Content-Type", mediaType)
	return e
}

// Execute assembles the request, sends it through the transport and drains
// the response body so the connection can be reused. Use it when the
// response body is irrelevant; it remains available through Response.Body.
func (e *Executor) Execute(ctx context.Context) (*Response, error) {
	resp, err := e.exchange(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := resp.Body(); err != nil {
		return resp, err
	}
	return resp, nil
}

// ExecuteInto is Execute plus decoding the response body into out, honoring
// the response Content-Type (JSON by default, XML for application/xml and
// text/xml).
func (e *Executor) ExecuteInto(ctx context.Context, out any) (*Response, error) {
	resp, err := e.exchange(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.decodeInto(out); err != nil {
		return resp, err
	}
	return resp, nil
}

// ExecuteForObject is ExecuteInto keeping only the decoded body. An empty
// response body leaves out untouched and is not an error.
func (e *Executor) ExecuteForObject(ctx context.Context, out any) error {
	_, err := e.ExecuteInto(ctx, out)
	return err
}

// exchange finalizes the request descriptor and performs the blocking
// transport call. Transport errors are propagated verbatim.
func (e *Executor) exchange(ctx context.Context) (*Response, error) {
	if e.err != nil {
		return nil, e.err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	body, contentType, err := encodeBody(e.body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, e.method, e.url.String(), body)
	if err != nil {
		return nil, err
	}

	for name, values := range e.t.defaultHeaders {
		req.Header[name] = append([]string(nil), values...)
	}
	// Call-specific headers replace defaults of the same name.
	for name, values := range e.headers {
		req.Header[name] = append([]string(nil), values...)
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if e.t.requestID && req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	if e.t.debug {
		logRequest(e.t.logger, req)
	}
	start := time.Now()

	httpResp, err := e.t.client.Do(req)
	if err != nil {
		return nil, err
	}

	if e.t.debug {
		logResponse(e.t.logger, httpResp, time.Since(start))
	}

	return &Response{Response: httpResp}, nil
}
