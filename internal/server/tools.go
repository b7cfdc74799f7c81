package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file (png, jpg, jpeg, gif, bmp or webp)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "plate_recognize",
			Description: "Read the license plate number from a vehicle image. Runs object detection, " +
				"contour geometry, enhanced full-image and raw full-image recognition in turn and " +
				"stops at the first stage that yields a valid plate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_extract",
			Description: "Find a canonical plate number in OCR text fragments, given in reading order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"texts": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Text fragments in reading order",
					},
				},
				"required": []string{"texts"},
			},
		},
		{
			Name: "plate_detect_regions",
			Description: "Locate candidate plate regions without reading them. Returns every object " +
				"detection, the selected plate-shaped detection, the contour candidate and an " +
				"annotated PNG with the boxes drawn.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Include an annotated image (default true)",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_enhance",
			Description: "Return the contrast-equalized, denoised grayscale image used for recognition, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "plate_capabilities",
			Description: "Report which recognition capabilities are loaded and the supported plate layouts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
