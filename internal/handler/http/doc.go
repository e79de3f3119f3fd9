// Package http implements the REST transport of the library API.
//
// It wires the chi router under the /api prefix, the request handlers for
// books, members and borrowings, the Swagger UI and the middleware chain:
// panic recovery, request tracing, security headers, CORS, access logging
// and compression. Every failure leaves the package as a
// [models.ErrorResponse] JSON envelope.
package http
