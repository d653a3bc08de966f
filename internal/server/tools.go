package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Sheet Management
		{
			Name:        "sheet_load",
			Description: "Load a sprite sheet and open its editing session. Returns dimensions, format, and the session's current region count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sheet_info",
			Description: "Get sprite sheet metadata (dimensions, format, color depth, alpha) without opening an editing session.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sheet_unload",
			Description: "Drop a sheet from the cache and discard its editing session, including the sprite tree.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
				},
				"required": []string{"path"},
			},
		},

		// Grid Layout
		{
			Name:        "grid_cells",
			Description: "Compute the cells a uniform grid layout yields on a sheet. Cells that would extend past the sheet edge are omitted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"cell_width": map[string]interface{}{
						"type":        "integer",
						"description": "Cell width in pixels (default 32)",
						"default":     32,
					},
					"cell_height": map[string]interface{}{
						"type":        "integer",
						"description": "Cell height in pixels (default 32)",
						"default":     32,
					},
					"origin_x": map[string]interface{}{
						"type":        "integer",
						"description": "X offset of the whole grid (default 0)",
						"default":     0,
					},
					"origin_y": map[string]interface{}{
						"type":        "integer",
						"description": "Y offset of the whole grid (default 0)",
						"default":     0,
					},
					"spacing_x": map[string]interface{}{
						"type":        "integer",
						"description": "Horizontal gap between adjacent cells (default 0)",
						"default":     0,
					},
					"spacing_y": map[string]interface{}{
						"type":        "integer",
						"description": "Vertical gap between adjacent cells (default 0)",
						"default":     0,
					},
					"padding_x": map[string]interface{}{
						"type":        "integer",
						"description": "X inset of each cell within its slot (default 0)",
						"default":     0,
					},
					"padding_y": map[string]interface{}{
						"type":        "integer",
						"description": "Y inset of each cell within its slot (default 0)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "grid_apply",
			Description: "Cut a sheet along a grid layout and commit one sprite leaf per cell as a new group in the sprite tree. Cells already in the tree are reported as duplicates, not re-added.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name for the new group. If omitted, one is generated (Group 1, Group 2, ...)",
					},
					"cell_width":  map[string]interface{}{"type": "integer", "default": 32},
					"cell_height": map[string]interface{}{"type": "integer", "default": 32},
					"origin_x":    map[string]interface{}{"type": "integer", "default": 0},
					"origin_y":    map[string]interface{}{"type": "integer", "default": 0},
					"spacing_x":   map[string]interface{}{"type": "integer", "default": 0},
					"spacing_y":   map[string]interface{}{"type": "integer", "default": 0},
					"padding_x":   map[string]interface{}{"type": "integer", "default": 0},
					"padding_y":   map[string]interface{}{"type": "integer", "default": 0},
				},
				"required": []string{"path"},
			},
		},

		// Sprite Detection
		{
			Name:        "sprite_detect",
			Description: "Detect sprite bounding boxes by flood-filling connected non-transparent pixels. Fully opaque sheets fall back to luminance segmentation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"alpha_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels with alpha above this count as foreground (0-255, default 0)",
						"default":     0,
					},
					"min_width": map[string]interface{}{
						"type":        "integer",
						"description": "Discard boxes narrower than this (default 8)",
						"default":     8,
					},
					"min_height": map[string]interface{}{
						"type":        "integer",
						"description": "Discard boxes shorter than this (default 8)",
						"default":     8,
					},
					"merge_gap": map[string]interface{}{
						"type":        "integer",
						"description": "Merge boxes separated by at most this many pixels on both axes. 0 disables merging (default 0)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sprite_detect_apply",
			Description: "Run sprite detection and commit the detected boxes as a new group of leaves in the sprite tree.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Name for the new group. If omitted, one is generated",
					},
					"alpha_threshold": map[string]interface{}{"type": "integer", "default": 0},
					"min_width":       map[string]interface{}{"type": "integer", "default": 8},
					"min_height":      map[string]interface{}{"type": "integer", "default": 8},
					"merge_gap":       map[string]interface{}{"type": "integer", "default": 0},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sprite_aliases",
			Description: "Find groups of sprite regions with byte-identical pixel content (repeated frames), scanning the leaves under a tree node.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"group": map[string]interface{}{
						"type":        "integer",
						"description": "Tree node whose leaves to scan (default 0, the whole tree)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Sprite Output
		{
			Name:        "sprite_extract",
			Description: "Extract one sprite as base64-encoded PNG, addressed by tree node or explicit rectangle. Set 'out' to write the sprite to disk instead.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node": map[string]interface{}{
						"type":        "integer",
						"description": "Sprite leaf to extract. When given, x/y/width/height are ignored",
					},
					"x":      map[string]interface{}{"type": "integer", "description": "Left edge of the rectangle"},
					"y":      map[string]interface{}{"type": "integer", "description": "Top edge of the rectangle"},
					"width":  map[string]interface{}{"type": "integer", "description": "Rectangle width in pixels"},
					"height": map[string]interface{}{"type": "integer", "description": "Rectangle height in pixels"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
					"out": map[string]interface{}{
						"type":        "string",
						"description": "Optional output file path. When set, the sprite is saved and no base64 payload is returned",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sprite_thumbnail",
			Description: "Render a small preview of a sprite, downscaled to fit max_size while keeping aspect ratio. Sprites already smaller are not upscaled.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node": map[string]interface{}{
						"type":        "integer",
						"description": "Sprite leaf to preview. When given, x/y/width/height are ignored",
					},
					"x":      map[string]interface{}{"type": "integer"},
					"y":      map[string]interface{}{"type": "integer"},
					"width":  map[string]interface{}{"type": "integer"},
					"height": map[string]interface{}{"type": "integer"},
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest thumbnail edge in pixels (default 64)",
						"default":     64,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sprite_palette",
			Description: "Extract the dominant color palette of a sprite, rectangle, or the whole sheet. Transparent pixels are excluded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node": map[string]interface{}{
						"type":        "integer",
						"description": "Sprite leaf to analyze. When given, x/y/width/height are ignored",
					},
					"x":      map[string]interface{}{"type": "integer"},
					"y":      map[string]interface{}{"type": "integer"},
					"width":  map[string]interface{}{"type": "integer"},
					"height": map[string]interface{}{"type": "integer"},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of palette colors to return (default 5)",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sheet_preview",
			Description: "Render the sheet with grid cells and/or sprite regions outlined, as base64-encoded PNG. Labels show cell indices and region ids.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"show_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Outline the cells of the given grid layout",
						"default":     false,
					},
					"show_regions": map[string]interface{}{
						"type":        "boolean",
						"description": "Outline the session's sprite regions",
						"default":     false,
					},
					"show_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw cell index / region id labels inside each box",
						"default":     false,
					},
					"outline_color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (default #00FF00)",
						"default":     "#00FF00",
					},
					"cell_width":  map[string]interface{}{"type": "integer", "default": 32},
					"cell_height": map[string]interface{}{"type": "integer", "default": 32},
					"origin_x":    map[string]interface{}{"type": "integer", "default": 0},
					"origin_y":    map[string]interface{}{"type": "integer", "default": 0},
					"spacing_x":   map[string]interface{}{"type": "integer", "default": 0},
					"spacing_y":   map[string]interface{}{"type": "integer", "default": 0},
					"padding_x":   map[string]interface{}{"type": "integer", "default": 0},
					"padding_y":   map[string]interface{}{"type": "integer", "default": 0},
				},
				"required": []string{"path"},
			},
		},

		// Sprite Tree
		{
			Name:        "tree_list",
			Description: "Return the sprite tree as a nested snapshot, starting at the given node.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node": map[string]interface{}{
						"type":        "integer",
						"description": "Subtree root (default 0, the tree root)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "tree_add_group",
			Description: "Create a group node in the sprite tree. Omit name for an auto-generated one (Group 1, Group 2, ...).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"parent": map[string]interface{}{
						"type":        "integer",
						"description": "Parent group (default 0, the root)",
						"default":     0,
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Group name. If omitted, one is generated",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "tree_add_leaf",
			Description: "Add one sprite leaf with explicit bounds. Bounds matching an existing leaf return that leaf instead of creating a duplicate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"parent": map[string]interface{}{
						"type":        "integer",
						"description": "Parent group (default 0, the root)",
						"default":     0,
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Leaf name. If omitted, one is generated from the parent's name",
					},
					"x":      map[string]interface{}{"type": "integer", "description": "Left edge of the sprite"},
					"y":      map[string]interface{}{"type": "integer", "description": "Top edge of the sprite"},
					"width":  map[string]interface{}{"type": "integer", "description": "Sprite width in pixels"},
					"height": map[string]interface{}{"type": "integer", "description": "Sprite height in pixels"},
				},
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "tree_remove",
			Description: "Remove a node and its whole subtree. Returns the region ids freed by removed leaves; freed ids are never reused.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node": map[string]interface{}{
						"type":        "integer",
						"description": "Node to remove. The root (0) cannot be removed",
					},
				},
				"required": []string{"path", "node"},
			},
		},
		{
			Name:        "tree_rename",
			Description: "Rename a node. Auto-named siblings keep their numbering.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node": map[string]interface{}{"type": "integer", "description": "Node to rename"},
					"name": map[string]interface{}{"type": "string", "description": "New name, must be non-empty"},
				},
				"required": []string{"path", "node", "name"},
			},
		},
		{
			Name:        "tree_reparent",
			Description: "Move a node under a new parent group. Moving a node into its own subtree is refused.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node":   map[string]interface{}{"type": "integer", "description": "Node to move. The root (0) cannot be moved"},
					"parent": map[string]interface{}{"type": "integer", "description": "New parent group"},
				},
				"required": []string{"path", "node", "parent"},
			},
		},
		{
			Name:        "tree_reorder",
			Description: "Replace a group's child order. The new order must be a permutation of the current children.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node": map[string]interface{}{"type": "integer", "description": "Group whose children to reorder"},
					"order": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Child node ids in their new order",
					},
				},
				"required": []string{"path", "node", "order"},
			},
		},
		{
			Name:        "tree_set_bounds",
			Description: "Replace a sprite leaf's bounds, revalidated against the canvas and the other regions. The region keeps its id; its source becomes 'manual'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"node":   map[string]interface{}{"type": "integer", "description": "Sprite leaf to edit"},
					"x":      map[string]interface{}{"type": "integer"},
					"y":      map[string]interface{}{"type": "integer"},
					"width":  map[string]interface{}{"type": "integer"},
					"height": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"path", "node", "x", "y", "width", "height"},
			},
		},

		// Export
		{
			Name:        "export_frames",
			Description: "Write each leaf sprite under a group to numbered image files (prefix_000.png, prefix_001.png, ...), in tree order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"group": map[string]interface{}{
						"type":        "integer",
						"description": "Tree node whose leaves to export (default 0, the whole tree)",
						"default":     0,
					},
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Output directory, created if missing",
					},
					"prefix": map[string]interface{}{
						"type":        "string",
						"description": "File name prefix (default 'frame')",
						"default":     "frame",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpg"},
						"description": "Output format (default 'png')",
						"default":     "png",
					},
				},
				"required": []string{"path", "dir"},
			},
		},
		{
			Name:        "export_gif",
			Description: "Assemble the leaf sprites under a group into an animated GIF with transparency, in tree order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the sprite sheet",
					},
					"group": map[string]interface{}{
						"type":        "integer",
						"description": "Tree node whose leaves become frames (default 0, the whole tree)",
						"default":     0,
					},
					"out": map[string]interface{}{
						"type":        "string",
						"description": "Output GIF path, parent directories created if missing",
					},
					"fps": map[string]interface{}{
						"type":        "integer",
						"description": "Playback speed in frames per second, clamped to 1-30 (default 10)",
						"default":     10,
					},
				},
				"required": []string{"path", "out"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
