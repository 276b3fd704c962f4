package fluentrest

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinezcarlos/fluent-rest-template/service"
)

func TestTemplate_verbSelection(t *testing.T) {
	tests := []struct {
		name       string
		start      func(*Template) *Starter
		wantMethod string
	}{
		{
			name:       "given Get, then GET request issued",
			start:      func(tpl *Template) *Starter { return tpl.Get() },
			wantMethod: http.MethodGet,
		},
		{
			name:       "given Delete, then DELETE request issued",
			start:      func(tpl *Template) *Starter { return tpl.Delete() },
			wantMethod: http.MethodDelete,
		},
		{
			name:       "given Post, then POST request issued",
			start:      func(tpl *Template) *Starter { return tpl.Post(nil) },
			wantMethod: http.MethodPost,
		},
		{
			name:       "given Put, then PUT request issued",
			start:      func(tpl *Template) *Starter { return tpl.Put(nil) },
			wantMethod: http.MethodPut,
		},
		{
			name:       "given Patch, then PATCH request issued",
			start:      func(tpl *Template) *Starter { return tpl.Patch(nil) },
			wantMethod: http.MethodPatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport()
			tpl := New(WithTransport(mock))

			_, err := tt.start(tpl).
				FromString("https://api.example.com/things").
				Executor().
				Execute(context.Background())
			require.NoError(t, err)

			require.Equal(t, 1, mock.RequestCount())
			assert.Equal(t, tt.wantMethod, mock.LastRequest().Method)
		})
	}
}

func TestTemplate_unsupportedMethodFailsBeforeAnyWork(t *testing.T) {
	mock := NewMockTransport().DisableMethods(http.MethodPatch)
	tpl := New(WithTransport(mock))

	svc := service.New(
		service.WithScheme("https"),
		service.WithHost("h"),
		service.WithEndpoint("e", "things/{id}"),
	)

	// The endpoint has an unbound variable on purpose: the chain must fail
	// with the capability error from verb selection, not a resolution error.
	_, err := tpl.Patch(map[string]string{"k": "v"}).
		Into(svc).
		Endpoint("e").
		Executor().
		Execute(context.Background())

	require.ErrorIs(t, err, ErrMethodNotSupported)
	assert.Zero(t, mock.RequestCount())
}

func TestTemplate_supportedMethodsUnaffectedByDisabledOnes(t *testing.T) {
	mock := NewMockTransport().DisableMethods(http.MethodPatch)
	tpl := New(WithTransport(mock))

	_, err := tpl.Get().
		FromString("https://h/things").
		Executor().
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, mock.RequestCount())
}

func TestStarter_From_nilService(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock))

	_, err := tpl.Get().From(nil).NoEndpoint().Executor().Execute(context.Background())

	require.ErrorIs(t, err, ErrNilService)
	assert.Zero(t, mock.RequestCount())
}

func TestStarter_FromString_invalidURI(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock))

	_, err := tpl.Get().FromString("  ").Executor().Execute(context.Background())

	require.ErrorIs(t, err, service.ErrEmptyURI)
	assert.Zero(t, mock.RequestCount())
}

func TestStarter_FromURL(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock))

	u, err := url.Parse("https://h/p?a=1#f")
	require.NoError(t, err)

	_, err = tpl.Get().FromURL(u).Executor().Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://h/p?a=1#f", mock.LastRequest().URL.String())

	_, err = tpl.Get().FromURL(nil).Executor().Execute(context.Background())
	assert.ErrorIs(t, err, service.ErrNilURI)
}

func TestTemplate_fullChainThroughService(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock))

	svc := service.New(
		service.WithScheme("https"),
		service.WithHost("cool-service.com"),
		service.WithContextPath("context-path"),
		service.WithVersion("v1"),
		service.WithEndpoint("updateCoolStuff", "update/stuff/{stuffId}"),
		service.WithQueryParam("tenant", "acme"),
	)

	_, err := tpl.Put(map[string]string{"name": "new"}).
		Into(svc).
		Endpoint("updateCoolStuff").
		URIVariable("stuffId", "123").
		QueryParam("dryRun", "true").
		Executor().
		Header("Authorization", "Bearer token").
		Execute(context.Background())
	require.NoError(t, err)

	req := mock.LastRequest()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t,
		"https://cool-service.com/context-path/v1/update/stuff/123?tenant=acme&dryRun=true",
		req.URL.String())
	assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
	assert.JSONEq(t, `{"name":"new"}`, string(mock.LastBody()))
}

func TestTemplate_independentChains(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock))

	svc := service.New(service.WithScheme("https"), service.WithHost("h"))

	first := tpl.Get().From(svc).NoEndpoint().QueryParam("chain", "one")
	second := tpl.Get().From(svc).NoEndpoint().QueryParam("chain", "two")

	_, err := first.Executor().Execute(context.Background())
	require.NoError(t, err)
	firstURL := mock.LastRequest().URL.String()

	_, err = second.Executor().Execute(context.Background())
	require.NoError(t, err)
	secondURL := mock.LastRequest().URL.String()

	assert.Equal(t, "https://h?chain=one", firstURL)
	assert.Equal(t, "https://h?chain=two", secondURL)
}

func TestTemplate_defaultHeaders(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(
		WithTransport(mock),
		WithDefaultHeader("X-Tenant", "acme"),
		WithDefaultHeader("Accept", "application/xml"),
	)

	_, err := tpl.Get().
		FromString("https://h/p").
		Executor().
		Accept("application/json").
		Execute(context.Background())
	require.NoError(t, err)

	req := mock.LastRequest()
	assert.Equal(t, "acme", req.Header.Get("X-Tenant"))
	// Call-specific headers replace defaults of the same name.
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestTemplate_requestID(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock), WithRequestID())

	_, err := tpl.Get().FromString("https://h/p").Executor().Execute(context.Background())
	require.NoError(t, err)

	id := mock.LastRequest().Header.Get("X-Request-Id")
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestTemplate_requestIDKeepsCallerSuppliedID(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock), WithRequestID())

	_, err := tpl.Get().
		FromString("https://h/p").
		Executor().
		Header("X-Request-Id", "caller-chosen").
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "caller-chosen", mock.LastRequest().Header.Get("X-Request-Id"))
}

func TestRequestResolver_buildErrorSurfacesAtExecute(t *testing.T) {
	mock := NewMockTransport()
	tpl := New(WithTransport(mock))

	svc := service.New(
		service.WithScheme("https"),
		service.WithHost("h"),
		service.WithEndpoint("e", "things/{id}"),
	)

	_, err := tpl.Get().From(svc).Endpoint("e").Executor().Execute(context.Background())

	require.ErrorIs(t, err, service.ErrUnboundVariable)
	assert.Zero(t, mock.RequestCount())
}
