package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{
		"plate_recognize",
		"plate_extract",
		"plate_detect_regions",
		"plate_enhance",
		"plate_capabilities",
	}
	if len(tools) != len(want) {
		t.Fatalf("got %d tools, want %d", len(tools), len(want))
	}

	seen := make(map[string]bool)
	for i, tool := range tools {
		if tool.Name != want[i] {
			t.Errorf("tool %d: got %s, want %s", i, tool.Name, want[i])
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("%s: empty description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type should be object", tool.Name)
		}
		if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
			t.Errorf("%s: schema properties should be a map", tool.Name)
		}
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	needsPath := map[string]bool{
		"plate_recognize":      true,
		"plate_detect_regions": true,
		"plate_enhance":        true,
	}

	for _, tool := range GetToolDefinitions() {
		required, _ := tool.InputSchema["required"].([]string)
		hasPath := false
		for _, r := range required {
			if r == "path" {
				hasPath = true
			}
		}
		if hasPath != needsPath[tool.Name] {
			t.Errorf("%s: path required = %v, want %v", tool.Name, hasPath, needsPath[tool.Name])
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil, Options{})
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != 5 {
		t.Errorf("Expected 5 tools, got %d", len(tools))
	}
}
