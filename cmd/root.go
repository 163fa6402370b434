// Package cmd provides the CLI commands for Quadra.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/quadra/translator/internal/audio"
	"github.com/quadra/translator/internal/config"
	"github.com/quadra/translator/internal/debug"
	"github.com/quadra/translator/internal/pipeline"
	"github.com/quadra/translator/internal/pubsub"
	"github.com/quadra/translator/internal/session"
	"github.com/quadra/translator/internal/speech"
	"github.com/quadra/translator/internal/translate"
	"github.com/quadra/translator/internal/tui"
)

// Version is set at build time.
var Version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quadra",
		Short: "Translation chat in your terminal",
		Long: `Quadra is a chat-style translation client. Type text, upload
documents and images, or record voice messages; every translation lands
in a searchable conversation history.

Workflows:
  - Text: translate typed messages into any of 15 languages
  - File: upload a TXT, PDF or DOCX document and download the translation
  - Image: extract and translate text from a JPEG, PNG or GIF
  - Voice: record a message, hear back what was detected and translated`,
		RunE: runTUI,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging under the data directory")
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("quadra " + Version)
		},
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if debugMode || cfg.Debug {
		logPath := filepath.Join(xdg.DataHome, "quadra", "debug.log")
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			defer debug.Disable()
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	dataDir := cfg.ResolvedDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	hub := pubsub.NewHub()
	defer hub.Shutdown()

	store := session.NewFileStore(filepath.Join(dataDir, "history.json"))
	svc, err := session.NewService(context.Background(), store, hub.Session)
	if err != nil {
		return fmt.Errorf("loading session history: %w", err)
	}

	// No client timeout; in-flight translations are never cancelled.
	client := translate.NewClient(cfg.ServerURL, &http.Client{})

	pl := pipeline.New(pipeline.Config{
		Translator: client,
		Sessions:   svc,
		Hub:        hub,
		DataDir:    dataDir,
	})

	speaker := speech.NewOutput(newSpeechEngine(), hub)
	defer speaker.Close()

	recorder := audio.NewBufferRecorder(audio.NewCommandDevice())

	return tui.Run(tui.Deps{
		Config:   cfg,
		Sessions: svc,
		Pipeline: pl,
		Speaker:  speaker,
		Recorder: recorder,
		Hub:      hub,
	})
}

// newSpeechEngine picks the host synthesizer, falling back to a silent
// engine so speech controls degrade instead of failing startup.
func newSpeechEngine() speech.Engine {
	engine, err := speech.NewCommandEngine()
	if err != nil {
		debug.Error("cmd", err, "speech synthesizer unavailable")
		return speech.SilentEngine{}
	}
	return engine
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
