// Package server implements the MCP (Model Context Protocol) server for sprite sheet tools.
//
// This package provides a JSON-RPC 2.0 server that exposes sprite sheet
// slicing capabilities through the MCP protocol. It's designed to work with
// Claude and other MCP-compatible clients, enabling AI systems to cut sprite
// sheets into named, grouped sprites with precision.
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
// The server provides 22 sprite sheet tools organized into categories:
//
// Sheet Management:
//   - sheet_load: Load a sheet and open its editing session
//   - sheet_info: Sheet metadata without a session
//   - sheet_unload: Evict the sheet and drop its session
//
// Grid Layout:
//   - grid_cells: Compute the cells of a uniform layout
//   - grid_apply: Commit grid cells as a sprite group
//
// Sprite Detection:
//   - sprite_detect: Find sprite bounding boxes by transparency
//   - sprite_detect_apply: Commit detected boxes as a sprite group
//   - sprite_aliases: Find repeated (byte-identical) frames
//
// Sprite Output:
//   - sprite_extract: Cut one sprite to base64 PNG or a file
//   - sprite_thumbnail: Small aspect-preserving preview
//   - sprite_palette: Dominant colors of a sprite or sheet
//   - sheet_preview: Sheet render with outlined cells/regions
//
// Sprite Tree:
//   - tree_list: Nested snapshot of the sprite hierarchy
//   - tree_add_group, tree_add_leaf: Grow the hierarchy
//   - tree_remove: Cascading removal, reports freed region ids
//   - tree_rename, tree_reparent, tree_reorder: Restructure
//   - tree_set_bounds: Re-cut one sprite's rectangle
//
// Export:
//   - export_frames: Numbered per-sprite image files
//   - export_gif: Animated GIF from a group's sprites
//
// # Sessions
//
// The server maintains an in-memory cache of loaded sheets plus one editing
// session per sheet path. A session owns the sheet's sprite tree and its
// region id sequence; ids grow monotonically and are never reused, even
// after removal. Sessions persist for the lifetime of the server process or
// until sheet_unload drops them.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// The process never exits on a tool error; every failure is a recoverable
// response.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
