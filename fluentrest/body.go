package fluentrest

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/martinezcarlos/fluent-rest-template/service"
)

// encodeBody turns the body given at verb selection into a reader and a
// detected media type, which applies only when no explicit Content-Type was
// set on the chain.
//
// Encoding rules:
//   - nil: no body
//   - string: raw text (text/plain)
//   - []byte: raw bytes (application/octet-stream)
//   - io.Reader: passthrough, no media type detected
//   - url.Values / *service.Values: form encoded
//   - anything else: JSON
func encodeBody(v any) (io.Reader, string, error) {
	switch body := v.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(body), "text/plain; charset=utf-8", nil
	case []byte:
		return bytes.NewReader(body), "application/octet-stream", nil
	case io.Reader:
		return body, "", nil
	case url.Values:
		return strings.NewReader(body.Encode()), "application/x-www-form-urlencoded", nil
	case *service.Values:
		return strings.NewReader(body.Encode()), "application/x-www-form-urlencoded", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
