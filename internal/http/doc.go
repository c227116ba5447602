// Package http builds, executes and classifies JSON API requests.
//
// A call is described by RequestOptions: a target (scheme and host), a path,
// headers, optional parameters and how to encode them. Client turns the
// options into a request, sends it and resolves exactly once, either with a
// Response (2xx only) or with an *Error carrying one ErrorKind:
//
//	client := http.NewClient(http.WithTimeout(10 * time.Second))
//
//	opts := http.NewRequestOptions(http.MethodGet, "https://jobs.example.com", "/positions.json",
//	    http.WithParameter("description", "ios developer"),
//	)
//
//	resp, err := client.Do(ctx, opts)
//	switch {
//	case errors.Is(err, http.ErrUnauthorized):
//	    // ask for credentials
//	case err != nil:
//	    return err
//	}
//
//	positions, err := http.Decoded[[]Position](resp)
//
// Execute runs the same call on a goroutine and delivers the Result on a
// channel.
//
// Client is safe for concurrent use. RequestOptions and Response values
// belong to a single call and are not shared.
package http
