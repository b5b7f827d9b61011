package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aura/internal/brain"
	"aura/internal/capability"
	"aura/internal/classify"
	"aura/internal/client"
	"aura/internal/config"
	"aura/internal/logging"
	"aura/internal/session"
	"aura/internal/skills"
	"aura/internal/snapshot"
	"aura/internal/ui"

	"github.com/spf13/cobra"
)

var (
	version  = "0.1.0"
	cfgFile  string
	model    string
	provider string
	once     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aura [utterance]",
		Short: "Voice-style desktop assistant",
		Long: `Aura turns plain-language commands into desktop actions: opening and
closing applications, finding files, searching the web, taking
screenshots, and adjusting volume. Commands it cannot resolve with
rules go to an AI classifier; when it is unsure, it asks before acting.`,
		Args: cobra.ArbitraryArgs,
		RunE: runApp,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/aura/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "classifier model to use")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "AI provider: gemini or ollama")
	rootCmd.PersistentFlags().BoolVar(&once, "once", false, "process the given utterance and exit")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aura version %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Version = version

	if model != "" {
		cfg.Model.Name = model
	}
	if provider != "" {
		cfg.API.ActiveProvider = provider
	}

	// A missing API key is not fatal: the assistant runs in limited
	// mode on rules and keywords alone.
	limited := false
	if err := cfg.Validate(); err != nil {
		if !errors.Is(err, config.ErrMissingAuth) {
			return err
		}
		limited = true
	}

	if cfg.Logging.Enabled {
		if err := os.MkdirAll(config.Dir(), 0755); err == nil {
			if err := logging.ToFile(config.Dir(), logging.ParseLevel(cfg.Logging.Level)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
			}
		}
		defer logging.Close()
	}

	memory := session.NewMemory(cfg.Session.HistorySize)
	if cfg.Session.PersistTranscript {
		path := cfg.Session.TranscriptPath
		if path == "" {
			path = filepath.Join(config.Dir(), "transcript.db")
		}
		transcript, err := session.OpenTranscript(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: transcript disabled: %v\n", err)
		} else {
			memory.SetTranscript(transcript)
			defer transcript.Close()
		}
	}

	manifest := capability.Detect(cfg)

	var classifier classify.Classifier
	var responder skills.Responder
	backend, err := client.New(cmd.Context(), cfg, manifest)
	if err != nil {
		logging.Warn("AI backend unavailable", "error", err)
		limited = true
	} else {
		classifier = backend
		responder = backend
	}

	registry := skills.BuildRegistry(cfg, memory, responder)

	b := brain.New(brain.Options{
		Memory:     memory,
		Snapshots:  snapshot.NewDesktop(),
		Registry:   registry,
		Classifier: classifier,
		Threshold:  cfg.Brain.ConfidenceThreshold,
	})

	if watcher, err := config.NewWatcher(configPath(), func(next *config.Config) {
		b.SetThreshold(next.Brain.ConfidenceThreshold)
	}); err == nil {
		if err := watcher.Start(); err == nil {
			defer watcher.Stop()
		}
	}

	if once {
		if len(args) == 0 {
			return fmt.Errorf("--once requires an utterance")
		}
		response := b.Process(context.Background(), strings.Join(args, " "))
		for i, step := range b.Trace() {
			logging.Debug("trace step", "step", i+1, "success", step.Success, "error", step.ErrKind)
		}
		fmt.Println(response)
		return nil
	}

	providerName := cfg.API.GetActiveProvider()
	if limited {
		providerName = "limited mode"
	}
	return ui.Run(b, version, providerName)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFrom(cfgFile)
	}
	return config.Load()
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}
