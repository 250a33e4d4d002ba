// Package mcpserver exposes the operation catalog as an MCP server: one
// tool per operation, plus local audio playback and an elevenlabs://
// resource template for inline output retrieval.
package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voxtool/mcp-elevenlabs/internal/adapter"
	"github.com/voxtool/mcp-elevenlabs/internal/config"
	"github.com/voxtool/mcp-elevenlabs/internal/registry"
	"github.com/voxtool/mcp-elevenlabs/internal/resolver"
)

// Version is stamped at build time.
var Version = "dev"

// Player plays a local audio file. Implemented by playback.Player.
type Player interface {
	Play(ctx context.Context, path string) error
}

// Server wires the invocation pipeline into the MCP protocol.
type Server struct {
	mcp      *mcp.Server
	adapter  *adapter.Adapter
	resolver *resolver.Resolver
	mode     config.OutputMode
	player   Player
}

// New builds the MCP server over the pipeline. player may be nil to disable
// the play_audio tool.
func New(ad *adapter.Adapter, res *resolver.Resolver, mode config.OutputMode, player Player) *Server {
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "ElevenLabs",
			Version: Version,
		}, nil),
		adapter:  ad,
		resolver: res,
		mode:     mode,
		player:   player,
	}

	s.registerTools()
	s.registerResources()
	if player != nil {
		s.registerPlayAudio()
	}
	return s
}

// MCPServer returns the underlying SDK server, for mounting on HTTP
// transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info("starting MCP server", "transport", "stdio", "outputMode", s.mode)
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	for _, d := range s.adapter.Registry().Descriptors() {
		d := d
		s.mcp.AddTool(&mcp.Tool{
			Name:        d.ID,
			Description: describe(d),
			InputSchema: registry.Schema(d),
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.handleTool(ctx, d, req)
		})
	}
}

// handleTool runs one operation end to end and renders the results. All
// failures surface as IsError tool results so MCP clients can show them to
// the model rather than aborting the session.
func (s *Server) handleTool(ctx context.Context, d *registry.Descriptor, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := map[string]any{}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &raw); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}
	}

	envs, err := s.adapter.Invoke(ctx, d.ID, raw)
	if err != nil {
		log.Error("operation failed", "operation", d.ID, "error", err)
		return errorResult(err), nil
	}

	destHint, _ := raw["output_directory"].(string)
	results, err := s.resolver.Resolve(ctx, envs, s.mode, destHint)
	if err != nil {
		log.Error("resolving output failed", "operation", d.ID, "error", err)
		return errorResult(err), nil
	}

	return s.render(d, results)
}

// render turns resolved results into MCP content blocks.
func (s *Server) render(d *registry.Descriptor, results []resolver.Result) (*mcp.CallToolResult, error) {
	out := &mcp.CallToolResult{}

	for _, res := range results {
		if res.Shape == registry.ShapeStructured {
			data, err := json.Marshal(res.Structured)
			if err != nil {
				return errorResult(fmt.Errorf("encoding result: %w", err)), nil
			}
			out.Content = append(out.Content, &mcp.TextContent{Text: string(data)})
			if len(results) == 1 {
				out.StructuredContent = res.Structured
			}
			continue
		}

		if res.Path != "" {
			out.Content = append(out.Content, &mcp.TextContent{
				Text: fmt.Sprintf("Success. File saved as: %s", res.Path),
			})
		}
		if res.URI != "" {
			out.Content = append(out.Content, &mcp.EmbeddedResource{
				Resource: resourceContents(res),
			})
		}
	}

	if len(out.Content) == 0 {
		out.Content = []mcp.Content{&mcp.TextContent{Text: "Success."}}
	}
	return out, nil
}

func resourceContents(res resolver.Result) *mcp.ResourceContents {
	rc := &mcp.ResourceContents{
		URI:      res.URI,
		MIMEType: res.Mime,
	}
	if res.Shape == registry.ShapeText {
		rc.Text = res.InlinePayload
	} else {
		// InlinePayload is already base64; the SDK encodes Blob itself.
		rc.Blob = decodeInline(res.InlinePayload)
	}
	return rc
}

func decodeInline(b64 string) []byte {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		log.Error("corrupt inline payload", "error", err)
		return nil
	}
	return data
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// describe renders a tool description with its billing class, so clients
// can warn before invoking operations that consume API credits.
func describe(d *registry.Descriptor) string {
	if d.CostClass == registry.CostMetered {
		return d.Description + ". COST WARNING: this tool makes an API call to ElevenLabs which may incur costs."
	}
	return d.Description
}

// registerResources serves previously generated output back to clients.
// Inline resources come from the in-memory registry; file-mode output is
// read back from the base path.
func (s *Server) registerResources() {
	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: resolver.Scheme + "{filename}",
		Name:        "elevenlabs_output",
		Description: "Audio and text generated by previous tool calls",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return s.readResource(req.Params.URI)
	})
}

func (s *Server) readResource(uri string) (*mcp.ReadResourceResult, error) {
	if entry, ok := s.resolver.Resources().Get(uri); ok {
		rc := &mcp.ResourceContents{URI: uri, MIMEType: entry.Mime}
		if entry.Text {
			rc.Text = string(entry.Data)
		} else {
			rc.Blob = entry.Data
		}
		return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{rc}}, nil
	}

	// Fall back to a file written in files mode.
	filename := strings.TrimPrefix(uri, resolver.Scheme)
	data, err := s.resolver.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("resource not found: %s", uri)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: mimeForFilename(filename), Blob: data}},
	}, nil
}

func mimeForFilename(name string) string {
	switch {
	case strings.HasSuffix(name, ".txt"):
		return "text/plain"
	case strings.HasSuffix(name, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(name, ".opus"):
		return "audio/ogg"
	default:
		return "audio/mpeg"
	}
}
