package cmd

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/voxtool/mcp-elevenlabs/internal/sse"
)

var sseCmd = &cobra.Command{
	Use:   "sse",
	Short: "Run the MCP server over HTTP (SSE and streamable transports)",
	Long: `Starts an HTTP server speaking the MCP protocol to remote clients.
The legacy SSE transport is mounted at /sse and the streamable HTTP
transport at /mcp.

Browser connections are validated against ALLOWED_ORIGINS; loopback hosts
are always accepted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		handler := sse.New(buildServer(cfg).MCPServer(), cfg.AllowedOrigins, cfg.APIKey != "")

		srv := &http.Server{
			Addr:    cfg.Addr(),
			Handler: handler.Router(),
		}
		printBanner("ElevenLabs MCP SSE Server", srv.Addr)
		log.Info("listening", "addr", srv.Addr, "origins", cfg.AllowedOrigins)
		return listenAndServe(cmd.Context(), srv)
	},
}

func init() {
	sseCmd.Flags().StringVar(&flagHost, "host", "", "listen host (default $HOST or 0.0.0.0)")
	sseCmd.Flags().StringVar(&flagPort, "port", "", "listen port (default $PORT or 8000)")
	rootCmd.AddCommand(sseCmd)
}
