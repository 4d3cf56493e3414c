// Package openapi builds forms from the request bodies of OpenAPI 3
// operations. Documents are parsed with kin-openapi; every property of the
// request schema that maps onto a field kind becomes a field, in name
// order.
package openapi
