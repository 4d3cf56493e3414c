// Package httputil collects the small encoding helpers used around HTTP
// handling: URL quoting, HTTP and cookie date formatting, base-36 integers,
// ETag parsing and IPv6 literal normalisation.
//
// Every function is pure and safe for concurrent use.
package httputil
