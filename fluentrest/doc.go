// Package fluentrest wraps an *http.Client with a fluent builder for
// constructing and issuing REST calls in a single chained expression.
//
// A call moves through four one-way phases: pick the HTTP verb, pick the URI
// source (a raw URI or a service.Service with an optional named endpoint),
// accumulate URI parts, then accumulate headers and execute. Every method
// call advances the chain; starting a new chain never mutates an in-flight
// one.
//
// # Quick start
//
//	rest := fluentrest.New()
//
//	var stuff CoolStuff
//	err := rest.Get().
//	    FromString("https://cool-service.com/get/stuff/123").
//	    Executor().
//	    ExecuteForObject(ctx, &stuff)
//
// With a reusable service descriptor:
//
//	svc := service.New(
//	    service.WithScheme("https"),
//	    service.WithHost("cool-service.com"),
//	    service.WithEndpoint("updateCoolStuff", "update/stuff/{stuffId}"),
//	)
//
//	resp, err := rest.Put(updated).
//	    Into(svc).
//	    Endpoint("updateCoolStuff").
//	    URIVariable("stuffId", "123").
//	    Executor().
//	    Header("Authorization", "Bearer "+token).
//	    Execute(ctx)
//
// # Errors
//
// Failures inside the chain (an unsupported verb, a bad URI string, an
// unbound template variable, a body that cannot be encoded) stick to the
// chain and surface from the terminal Execute methods; no network call is
// made for a failed chain. Transport errors are propagated verbatim: the
// package adds no retry, circuit breaking or caching.
package fluentrest
