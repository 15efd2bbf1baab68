// Package server exposes the lookup engine over HTTP for browser clients.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Message Bridge
//
// [BridgeHandler] implements the single-endpoint message contract used by
// the browser extension: POST /api/message with a JSON body whose "action"
// field selects the operation. Every response carries a "success" flag;
// failures put a human-readable message in "error" instead of an HTTP
// error status, so the client handles one response shape.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
