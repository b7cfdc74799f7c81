package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/plate-ocr/internal/cascade"
	"github.com/ironsheep/plate-ocr/internal/detection"
	"github.com/ironsheep/plate-ocr/internal/imaging"
	"github.com/ironsheep/plate-ocr/internal/ocr"
	"github.com/ironsheep/plate-ocr/internal/plate"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plate_recognize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A recognition run that finds no plate is not an error: its result carries
// success=false.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "plate_recognize":
		return s.handlePlateRecognize(ctx, args)
	case "plate_extract":
		return s.handlePlateExtract(args)
	case "plate_detect_regions":
		return s.handlePlateDetectRegions(ctx, args)
	case "plate_enhance":
		return s.handlePlateEnhance(args)
	case "plate_capabilities":
		return s.handlePlateCapabilities()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imagePathArgs struct {
	Path string `json:"path"`
}

// loadImage decodes the image named in args. Failures here are request
// fatal: no stage can run without pixels.
func (s *Server) loadImage(args json.RawMessage) (*image.NRGBA, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.Load(a.Path, s.maxImageBytes)
}

// === Recognition ===

func (s *Server) handlePlateRecognize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	img, err := s.loadImage(args)
	if err != nil {
		return nil, err
	}
	return s.orchestrator.Recognize(ctx, img), nil
}

type plateExtractArgs struct {
	Texts []string `json:"texts"`
}

type plateExtractResult struct {
	Matched      bool    `json:"matched"`
	PlateNumber  *string `json:"plateNumber"`
	PatternIndex int     `json:"patternIndex"` // -1 when unmatched
	Grammar      string  `json:"grammar,omitempty"`
	Compact      bool    `json:"compact"`
}

func (s *Server) handlePlateExtract(args json.RawMessage) (interface{}, error) {
	var a plateExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, ok := plate.Extract(a.Texts)
	if !ok {
		return plateExtractResult{PatternIndex: -1}, nil
	}
	return plateExtractResult{
		Matched:      true,
		PlateNumber:  &m.Text,
		PatternIndex: m.PatternIndex,
		Grammar:      m.Grammar,
		Compact:      m.Compact,
	}, nil
}

// === Localization ===

type plateDetectRegionsArgs struct {
	Path     string `json:"path"`
	Annotate *bool  `json:"annotate"`
}

type plateDetectRegionsResult struct {
	Width          int                        `json:"width"`
	Height         int                        `json:"height"`
	Detections     []detection.DetectedRegion `json:"detections"`
	Selected       int                        `json:"selected"` // index into detections, -1 if none
	DetectorError  string                     `json:"detector_error,omitempty"`
	Contour        *detection.DetectedRegion  `json:"contour,omitempty"`
	ContourPolygon []detection.Point          `json:"contour_polygon,omitempty"`
	Annotated      *imaging.EncodedImage      `json:"annotated,omitempty"`
}

func (s *Server) handlePlateDetectRegions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a plateDetectRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(args)
	if err != nil {
		return nil, err
	}

	result := plateDetectRegionsResult{
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		Detections: []detection.DetectedRegion{},
		Selected:   -1,
	}

	if s.dc.Capabilities.Has(cascade.ObjectDetection) {
		res, err := detection.DetectByModel(ctx, s.dc.Detector, img)
		if err != nil {
			result.DetectorError = err.Error()
		}
		result.Detections = res.Regions
		result.Selected = res.Selected
	}

	if c := detection.DetectByGeometry(img); c != nil {
		region := c.Region
		result.Contour = &region
		result.ContourPolygon = c.Polygon
	}

	if a.Annotate == nil || *a.Annotate {
		annotated, err := imaging.EncodePNG(imaging.Annotate(img, regionAnnotations(result)))
		if err != nil {
			return nil, err
		}
		result.Annotated = annotated
	}
	return result, nil
}

// regionAnnotations draws every detection in the default colour, the
// selected one and the contour candidate highlighted.
func regionAnnotations(r plateDetectRegionsResult) []imaging.Annotation {
	annotations := make([]imaging.Annotation, 0, len(r.Detections)+1)
	for i, d := range r.Detections {
		a := imaging.Annotation{
			Rect:     d.Bounds.Rect(),
			Label:    fmt.Sprintf("%s %.2f", d.Label, d.Confidence),
			ColorHex: imaging.DefaultBoxColor,
		}
		if i == r.Selected {
			a.ColorHex = imaging.DefaultSelectedColor
		}
		annotations = append(annotations, a)
	}
	if r.Contour != nil {
		annotations = append(annotations, imaging.Annotation{
			Rect:     r.Contour.Bounds.Rect(),
			Label:    "contour",
			ColorHex: "#0080ff",
		})
	}
	return annotations
}

// === Enhancement ===

func (s *Server) handlePlateEnhance(args json.RawMessage) (interface{}, error) {
	img, err := s.loadImage(args)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(imaging.Enhance(img))
}

// === Capabilities ===

// ocrInfoer is implemented by recognizers that can describe themselves.
type ocrInfoer interface {
	Info() ocr.Info
}

type plateCapabilitiesResult struct {
	Capabilities cascade.CapabilitySet `json:"capabilities"`
	OCR          *ocr.Info             `json:"ocr,omitempty"`
	Stages       []cascade.Stage       `json:"stages"`
	Grammars     []string              `json:"grammars"`
}

func (s *Server) handlePlateCapabilities() (interface{}, error) {
	result := plateCapabilitiesResult{
		Capabilities: s.dc.Capabilities,
		Stages:       cascade.Stages,
	}
	for _, g := range plate.Grammars {
		result.Grammars = append(result.Grammars, g.Name)
	}
	if infoer, ok := s.dc.Recognizer.(ocrInfoer); ok {
		info := infoer.Info()
		result.OCR = &info
	}
	return result, nil
}
