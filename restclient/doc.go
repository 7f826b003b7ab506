// Package restclient provides a typed JSON REST client with configurable
// authentication, TLS, bounded retry with exponential backoff, and schema
// binding of responses.
//
// A Client is constructed once per upstream API and is safe for concurrent
// use. Calls are available blocking or asynchronous; both paths share one
// retry/bind loop and expose identical error semantics.
//
// # Basic Usage
//
//	client, err := restclient.New(restclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 10 * time.Second,
//	    Auth:    restclient.BearerAuth("my-token"),
//	})
//
//	item, err := restclient.Get[Item](ctx, client, "/items/7",
//	    restclient.WithShape(itemShape))
//
// # Asynchronous Calls
//
//	f := restclient.GetAsync[Item](ctx, client, "/items/7")
//	// ... other work ...
//	item, err := f.Wait()
//
// Errors are classified (encoding, network, timeout, http_status,
// validation, cancelled) and always carry the original cause; see Error.
package restclient
