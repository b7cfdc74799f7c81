// Package server implements the MCP (Model Context Protocol) server for
// license plate recognition.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - plate_recognize: Run the full recognition cascade on an image file
//   - plate_extract: Match plate grammars against OCR text fragments
//   - plate_detect_regions: Object-detection and contour candidates, annotated
//   - plate_enhance: The enhanced grayscale image fed to OCR
//   - plate_capabilities: Loaded capabilities and OCR engine details
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// An image that cannot be read or decoded is a tool error. A readable image
// with no recognizable plate is a normal result with success=false.
//
// # Usage
//
//	dc := cascade.NewDetectionContext(detector, recognizer)
//	srv := server.New(dc, server.Options{MaxImageBytes: cfg.MaxImageBytes})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
