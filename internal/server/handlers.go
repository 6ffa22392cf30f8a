package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/pattern"
	"github.com/ironsheep/image-edit-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_apply").
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
// Tool execution errors return a JSON-RPC error response with code -32000
// whose data is the coded error string, e.g. "INVALID_DIMENSION: ...".
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "code", editerr.GetCode(err), "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Info("tool", "name", params.Name, "elapsed", time.Since(start).Round(time.Millisecond))

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_generate":
		return s.handleImageGenerate(args)

	// Editing
	case "image_apply":
		return s.handleImageApply(args)
	case "image_undo":
		return s.handleImageUndo()
	case "image_redo":
		return s.handleImageRedo()
	case "image_history":
		return s.handleImageHistory()

	// Inspection
	case "image_info":
		return s.handleImageInfo()
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)
	case "image_preview":
		return s.handleImagePreview(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Absent arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return editerr.Wrap(editerr.ErrCodeInvalidInput, err, "invalid arguments")
	}
	return nil
}

// === Session Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a imagePathArgs) validate() error {
	if a.Path == "" {
		return editerr.New(editerr.ErrCodeInvalidInput, "path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if err := s.editor.Load(a.Path); err != nil {
		return nil, err
	}
	return s.editor.Status(), nil
}

type imageSaveResult struct {
	Path string `json:"path"`
	session.Status
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	if err := s.editor.Save(a.Path); err != nil {
		return nil, err
	}
	return imageSaveResult{Path: a.Path, Status: s.editor.Status()}, nil
}

type imageGenerateArgs struct {
	Pattern     string `json:"pattern"`
	Size        int    `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Orientation string `json:"orientation"`
}

func (s *Server) handleImageGenerate(args json.RawMessage) (interface{}, error) {
	var a imageGenerateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Orientation == "" {
		a.Orientation = "horizontal"
	}
	b, err := pattern.Generate(pattern.Request{
		Pattern:     a.Pattern,
		Size:        a.Size,
		Width:       a.Width,
		Height:      a.Height,
		Orientation: a.Orientation,
	})
	if err != nil {
		return nil, err
	}
	if err := s.editor.Replace(b, a.Pattern); err != nil {
		return nil, err
	}
	return s.editor.Status(), nil
}

// === Editing Handlers ===

type imageApplyArgs struct {
	Filter string `json:"filter"`
	Seeds  *int   `json:"seeds,omitempty"`
}

func (s *Server) handleImageApply(args json.RawMessage) (interface{}, error) {
	var a imageApplyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var err error
	if a.Filter == "mosaic" {
		if a.Seeds == nil {
			return nil, editerr.New(editerr.ErrCodeInvalidInput, "mosaic requires seeds")
		}
		err = s.editor.Mosaic(*a.Seeds)
	} else {
		err = s.editor.Apply(a.Filter)
	}
	if err != nil {
		return nil, err
	}
	return s.editor.Status(), nil
}

func (s *Server) handleImageUndo() (interface{}, error) {
	if err := s.editor.Undo(); err != nil {
		return nil, err
	}
	return s.editor.Status(), nil
}

func (s *Server) handleImageRedo() (interface{}, error) {
	if err := s.editor.Redo(); err != nil {
		return nil, err
	}
	return s.editor.Status(), nil
}

type imageHistoryResult struct {
	HistoryLen int  `json:"history_len"`
	RedoLen    int  `json:"redo_len"`
	Capacity   int  `json:"capacity"`
	CanUndo    bool `json:"can_undo"`
	CanRedo    bool `json:"can_redo"`
}

func (s *Server) handleImageHistory() (interface{}, error) {
	st := s.editor.Status()
	return imageHistoryResult{
		HistoryLen: st.HistoryLen,
		RedoLen:    st.RedoLen,
		Capacity:   st.Capacity,
		CanUndo:    st.CanUndo,
		CanRedo:    st.CanRedo,
	}, nil
}

// === Inspection Handlers ===

type imageInfoResult struct {
	session.Status
	Filters  []string `json:"filters"`
	Patterns []string `json:"patterns"`
}

func (s *Server) handleImageInfo() (interface{}, error) {
	return imageInfoResult{
		Status:   s.editor.Status(),
		Filters:  imaging.FilterNames(),
		Patterns: pattern.Names,
	}, nil
}

type imageSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	b, err := s.editor.Current()
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(b, a.X, a.Y)
}

type imageDominantColorsArgs struct {
	Count int `json:"count"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	b, err := s.editor.Current()
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(b, a.Count)
}

type imagePreviewArgs struct {
	Scale float64 `json:"scale"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	b, err := s.editor.Current()
	if err != nil {
		return nil, err
	}
	return imaging.EncodePreview(b, a.Scale, s.previewMax)
}
