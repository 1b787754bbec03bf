/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/proofreader/internal/config"
)

var version = "0.1.0"

var (
	cfgFile string

	cfg    *config.Config
	logger *slog.Logger
)

// flagKeys maps command-line flags onto config keys so that a flag given on
// the command line overrides the config file and environment.
var flagKeys = map[string]string{
	"provider":     "provider",
	"workers":      "workers",
	"llm-backend":  "llm.backend",
	"model":        "llm.model",
	"llm-url":      "llm.base_url",
	"lang":         "llm.language",
	"guard-lang":   "llm.guard_language",
	"addr":         "server.addr",
	"db":           "dictionary.path",
	"dict-backend": "dictionary.backend",
	"log-level":    "log.level",
}

var rootCmd = &cobra.Command{
	Use:   "proofreader",
	Short: "CLI sentence-level proofreader",
	Long: `A CLI application that splits text into sentences, corrects each sentence
with a rule-based mock or an LLM, and reports word-level changes.

Supported providers: mock (offline), llm (OpenRouter, Ollama, Anthropic)

Use "proofreader proofread --help" for proofreading options.`,
	Version:       version,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func loadConfig(cmd *cobra.Command) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}
	bindFlags(cmd, v)

	cfg, err = config.Decode(v)
	if err != nil {
		return err
	}
	logger = cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	return nil
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./proofreader.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
