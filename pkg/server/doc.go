// Package server exposes a form registry over HTTP with chi.
//
//	GET  /forms          names of the registered forms
//	GET  /forms/{name}   field description, with ETag and Last-Modified
//	POST /forms/{name}   clean a urlencoded, multipart or JSON submission
//	GET  /metrics        prometheus metrics, when a gatherer is configured
package server
