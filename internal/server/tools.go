package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "image_load",
			Description: "Load an image file as the image being edited. Starts a fresh undo history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_save",
			Description: "Save the current image. The format follows the extension: .png, .jpg, .jpeg or .bmp.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the file to write",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_generate",
			Description: "Replace the current image with a generated pattern: a flag (france, greece, switzerland), a checkerboard, or rainbow stripes. The previous image stays reachable through undo.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"pattern": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"france", "greece", "switzerland", "checkerboard", "rainbow"},
						"description": "Pattern to draw",
					},
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Flag height, or checkerboard square size, in pixels",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Rainbow width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Rainbow height in pixels",
					},
					"orientation": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Rainbow stripe direction. Default horizontal",
						"default":     "horizontal",
					},
				},
				"required": []string{"pattern"},
			},
		},

		// Editing
		{
			Name:        "image_apply",
			Description: "Apply a filter to the current image. A failed filter leaves the image and history unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"grayscale", "sepia", "blur", "sharpen", "dither", "mosaic"},
						"description": "Filter to apply",
					},
					"seeds": map[string]interface{}{
						"type":        "integer",
						"description": "Mosaic cell count, between 1 and the number of pixels. Required for mosaic",
					},
				},
				"required": []string{"filter"},
			},
		},
		{
			Name:        "image_undo",
			Description: "Step back to the previous image state. Does nothing when there is nothing to undo.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_redo",
			Description: "Re-apply the most recently undone state. Does nothing when there is nothing to redo.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_history",
			Description: "Report undo/redo depth and whether undo or redo is possible.",
			InputSchema: noArgs(),
		},

		// Inspection
		{
			Name:        "image_info",
			Description: "Describe the current image (size, source) and list the available filters and patterns.",
			InputSchema: noArgs(),
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color of the current image at a pixel in hex, RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Find the most common colors in the current image. Channels are quantized to multiples of 16.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
				},
			},
		},
		{
			Name:        "image_preview",
			Description: "Render the current image as a base64 PNG so the edit can be checked visually.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 0.5 to halve). Default 1.0",
						"default":     1.0,
					},
				},
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
