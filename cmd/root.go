/*
Copyright © 2025 voxtool

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/voxtool/mcp-elevenlabs/internal/adapter"
	"github.com/voxtool/mcp-elevenlabs/internal/catalog"
	"github.com/voxtool/mcp-elevenlabs/internal/config"
	"github.com/voxtool/mcp-elevenlabs/internal/elevenlabs"
	"github.com/voxtool/mcp-elevenlabs/internal/mcpserver"
	"github.com/voxtool/mcp-elevenlabs/internal/playback"
	"github.com/voxtool/mcp-elevenlabs/internal/resolver"
)

var (
	flagVerbose    bool
	flagOutputMode string
	flagBasePath   string
)

// rootCmd runs the MCP server over stdio when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mcp-elevenlabs",
	Short: "ElevenLabs voice AI MCP Server",
	Long: `mcp-elevenlabs is an MCP server for the ElevenLabs voice AI platform.

It exposes text-to-speech, speech-to-text, voice management, conversational
agents and audio utilities as MCP tools. Without a subcommand it speaks the
MCP protocol over stdio; see "serve" and "sse" for the HTTP transports.

Requires ELEVENLABS_API_KEY in the environment (a .env file is honored).`,
	Version:       mcpserver.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// stdout is reserved for the protocol on the stdio transport.
		log.SetOutput(os.Stderr)
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		srv := buildServer(cfg)
		log.Debug("starting stdio transport", "output_mode", cfg.OutputMode, "base_path", cfg.BasePath)
		return srv.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "V", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagOutputMode, "output-mode", "", "output handling: files, resources or both")
	rootCmd.PersistentFlags().StringVar(&flagBasePath, "base-path", "", "directory for generated files (default ~/Desktop)")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagOutputMode != "" {
		mode, err := config.ParseOutputMode(flagOutputMode)
		if err != nil {
			return nil, fmt.Errorf("--output-mode: %w", err)
		}
		cfg.OutputMode = mode
	}
	if flagBasePath != "" {
		cfg.BasePath = flagBasePath
	}
	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}
	return cfg, nil
}

// buildServer wires the vendor client, operation catalog, adapter and
// resolver into an MCP server.
func buildServer(cfg *config.Config) *mcpserver.Server {
	client := elevenlabs.New(cfg.APIKey, cfg.BaseURL)
	reg := catalog.New(client, cfg.DefaultVoiceID)
	ad := adapter.New(reg)
	res := resolver.New(cfg.BasePath, resolver.NewResourceRegistry(0))
	return mcpserver.New(ad, res, cfg.OutputMode, playback.NewPlayer())
}
