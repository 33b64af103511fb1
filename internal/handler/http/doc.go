// Package http exposes the dispatch gateway over HTTP.
//
// Each call is POST /api/dispatch/{db}/{rpc} with the operation arguments as
// the JSON body. A success answers 200 with the result document; a failure
// answers with a status derived from the error code and a HostError body.
// Request tracing, access logging and response compression are handled by
// middleware in this package.
package http
