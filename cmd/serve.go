package cmd

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/voxtool/mcp-elevenlabs/internal/adapter"
	"github.com/voxtool/mcp-elevenlabs/internal/api"
	"github.com/voxtool/mcp-elevenlabs/internal/catalog"
	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API for mobile and web clients",
	Long: `Starts an HTTP server exposing the voice operations as a JSON REST API:
text-to-speech, sound effects, transcription, voice management and agents.

Clients authenticate with the X-API-Key header when API_KEY is set in the
environment; leaving it unset disables authentication for local use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := elevenlabs.New(cfg.APIKey, cfg.BaseURL)
		ad := adapter.New(catalog.New(client, cfg.DefaultVoiceID))
		handler := api.New(ad, client, cfg)

		srv := &http.Server{
			Addr:    cfg.Addr(),
			Handler: handler.Router(),
		}
		printBanner("ElevenLabs REST API", srv.Addr)
		if cfg.ServerKey == "" {
			log.Warn("API_KEY not set, authentication disabled")
		}
		log.Info("listening", "addr", srv.Addr)
		return listenAndServe(cmd.Context(), srv)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "listen host (default $HOST or 0.0.0.0)")
	serveCmd.Flags().StringVar(&flagPort, "port", "", "listen port (default $PORT or 8000)")
	rootCmd.AddCommand(serveCmd)
}
