package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPlayAudio adds the one tool that never touches the vendor API:
// local playback of a previously generated file.
func (s *Server) registerPlayAudio() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "play_audio",
		Description: "Play a local audio file through the system speakers",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"input_file_path": {
					Type:        "string",
					Description: "Absolute path of the audio file to play",
				},
			},
			Required:             []string{"input_file_path"},
			AdditionalProperties: nil,
		},
	}, s.handlePlayAudio)
}

func (s *Server) handlePlayAudio(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		InputFilePath string `json:"input_file_path"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
	}
	if !filepath.IsAbs(args.InputFilePath) {
		return errorResult(fmt.Errorf("input_file_path must be an absolute path")), nil
	}

	if err := s.player.Play(ctx, args.InputFilePath); err != nil {
		return errorResult(fmt.Errorf("playback failed: %w", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Played audio file: %s", args.InputFilePath)}},
	}, nil
}
