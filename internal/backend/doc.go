// Package backend provides the HTTP client for the film-details API.
//
// # Request
//
// FetchMovie issues a single POST to the configured endpoint (default
// /api/movie) with a JSON body of the form:
//
//	{"film_url": "https://letterboxd.com/film/heat-1995/"}
//
// A nil locator is forwarded as an empty object; how the server treats a
// missing film_url is the server's business.
//
// # Response
//
// A 2xx response is decoded into film.Payload. Decoding is tolerant of missing
// fields but not of wrong shapes: an aspect that is not a [label, score,
// weight] triple fails the whole decode.
//
// # Error Handling
//
// Failures come back as one of three typed errors, each matched with
// errors.As:
//
//   - *TransportError: the request could not be completed (dial, TLS, timeout, cancelled context)
//   - *StatusError: the server answered outside 2xx; Code holds the status
//   - *MalformedPayloadError: the 2xx body did not decode
//
// # Timeouts
//
// Requests are unbounded unless WithTimeout is given. Callers that want a
// deadline pass one through the context.
package backend
