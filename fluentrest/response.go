package fluentrest

import (
	"encoding/xml"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// Response wraps http.Response with cached body reading and status helpers.
// All http.Response fields remain accessible through the embedded value.
type Response struct {
	*http.Response

	body     []byte
	bodyRead bool
}

// Body returns the response body as bytes. The body is read and closed on
// first access; later calls return the cached value.
func (r *Response) Body() ([]byte, error) {
	if r.bodyRead {
		return r.body, nil
	}
	defer r.Response.Body.Close()
	body, err := io.ReadAll(r.Response.Body)
	if err != nil {
		return nil, err
	}
	r.body = body
	r.bodyRead = true
	return r.body, nil
}

// String returns the response body as a string.
func (r *Response) String() (string, error) {
	body, err := r.Body()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError reports whether the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// decodeInto reads the body and decodes it into out based on the response
// Content-Type. An empty body or a nil target is a no-op.
func (r *Response) decodeInto(out any) error {
	body, err := r.Body()
	if err != nil {
		return err
	}
	if len(body) == 0 || out == nil {
		return nil
	}

	contentType := r.Header.Get("Content-Type")
	isXML := strings.Contains(contentType, "application/xml") ||
		strings.Contains(contentType, "text/xml")
	if isXML {
		return xml.Unmarshal(body, out)
	}
	// Default to JSON.
	return json.Unmarshal(body, out)
}
