// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the TUI's lookup workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Input Form: Paste video links or IDs, one per line
//  2. Progress Monitor: SSE (Server-Sent Events) streaming lookup progress
//  3. Result List: Server-rendered table, one row per video
//  4. Candidate Detail: HTMX partial swap with ISRC/UPC and score breakdown
//  5. Fallback Prompt: hx-post retry with the description-based query
//
// Core Components
//
//   - HTTP Server: the server package's BasicRouter with html/template rendering
//   - Service Integration: Uses the same services.CatalogService and tasks.LookupEngine as TUI
//   - SSE Handler: Streams real-time progress during batch lookups
//
// Routes
//
//	GET  /                    → Input form
//	POST /lookup              → Start batch lookup, return SSE endpoint
//	GET  /lookup/{id}/stream  → SSE progress stream
//	GET  /lookup/{id}/result  → Result list view
//	GET  /candidates/{input}  → HTMX partial: ranked candidates
//	POST /fallback/{input}    → Run the fallback search, return refreshed partial
//
// Templates
//
//   - base.html: Layout with navigation and credential status
//   - input.html: Textarea form with hx-post
//   - progress.html: SSE consumer with progress bar
//   - results.html: Per-video outcome table
//   - candidates.html: Partial template for ranked candidates
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - The key-value store: credentials and cached tokens
//   - The search cache: provider responses shared with the CLI
//   - In-memory channels: SSE connections for active lookups
//
// # Progress Streaming
//
// Lookup progress uses Server-Sent Events:
//  1. POST /lookup stores the input set, returns a lookup ID
//  2. Client opens SSE connection to /lookup/{id}/stream
//  3. Handler launches goroutine running LookupEngine.LookupBatch
//  4. Progress channel updates stream as SSE events
//  5. On completion, send "done" event with redirect URL
//
// # Implementation Status
//
// Planned. The message bridge in the server package covers browser
// integration today; this package will add the standalone web UI on the
// same router and engine infrastructure.
package web
