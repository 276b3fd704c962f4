// Package service describes a remote REST service as a reusable URI template:
// scheme, host, port, context path, API version, a map of named endpoint path
// templates, plus query parameters and a fragment common to every URI built
// from it.
//
// A Service is configured once (at startup, typically) and then shared
// read-only. Each call site asks it for a Resolver, adds the call-specific
// parts, and builds the final URI:
//
//	svc := service.New(
//	    service.WithScheme("https"),
//	    service.WithHost("cool-service.com"),
//	    service.WithEndpoint("updateCoolStuff", "update/stuff/{stuffId}"),
//	)
//
//	u, err := svc.Resolver("updateCoolStuff").
//	    URIVariable("stuffId", "123").
//	    Build()
//	// u.String() == "https://cool-service.com/update/stuff/123"
//
// A Service can also be derived from an existing URI, keeping its path,
// query and fragment as defaults:
//
//	svc, err := service.FromString("https://foo.bar:80/context-path?baz=boom#frag")
//
// Endpoint path templates may contain {name} placeholders, bound at build
// time through Resolver.URIVariable. Requesting an endpoint key that is not
// registered is not an error: the URI is simply built without an endpoint
// segment.
package service
