// Package server implements the MCP (Model Context Protocol) server for image editing.
//
// This package provides a JSON-RPC 2.0 server that exposes one editing session
// through the MCP protocol: an MCP client loads or generates an image, applies
// filters, steps through undo/redo, inspects the result and saves it.
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
// Session:
//   - image_load: Load an image file, starting a fresh history
//   - image_save: Write the current image (.png, .jpg, .jpeg, .bmp)
//   - image_generate: Draw a flag, checkerboard or rainbow
//
// Editing:
//   - image_apply: grayscale, sepia, blur, sharpen, dither, or mosaic with seeds
//   - image_undo, image_redo: Walk the bounded history
//   - image_history: Undo/redo depth
//
// Inspection:
//   - image_info: Current size and source, available filters and patterns
//   - image_sample_color: Color at a pixel
//   - image_dominant_colors: Quantized color palette
//   - image_preview: Base64 PNG of the current image
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The coded error string, e.g. "EMPTY_HISTORY: no image loaded"
//
// A failed tool never changes the current image or its history.
//
// # Usage
//
//	ed, _ := session.New(imaging.NewFileStore())
//	srv := server.New(ed, server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
