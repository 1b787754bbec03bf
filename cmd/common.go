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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/valpere/proofreader/internal/detector"
	"github.com/valpere/proofreader/internal/dictionary"
	"github.com/valpere/proofreader/internal/provider"
)

// openDictionary opens the configured protected-word store. With create set,
// a missing SQLite database and its directory are created; otherwise a
// missing database yields a nil Store. A nil Store means the dictionary is
// disabled.
func openDictionary(create bool) (dictionary.Store, error) {
	dc := cfg.Dictionary
	if strings.EqualFold(dc.Backend, "sqlite") && dc.Path != "" {
		if !create {
			if _, err := os.Stat(dc.Path); errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
		} else if err := os.MkdirAll(filepath.Dir(dc.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	store, err := dictionary.Open(dc)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	return store, nil
}

// loadProtectedWords reads the protected words without creating a database.
// A dictionary that cannot be read is logged and treated as empty.
func loadProtectedWords(ctx context.Context) []string {
	store, err := openDictionary(false)
	if err != nil {
		logger.Warn("protected words unavailable", "err", err)
		return nil
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	words, err := dictionary.Load(ctx, store)
	if err != nil {
		logger.Warn("protected words unavailable", "err", err)
		return nil
	}
	logger.Debug("protected words loaded", "count", len(words))
	return words
}

// buildProviders constructs every provider the configuration allows, keyed
// by name. The mock provider is always present.
func buildProviders(words []string) (map[string]provider.Provider, error) {
	providers := map[string]provider.Provider{
		provider.NameMock: provider.NewMock(words),
	}
	llm, err := provider.New(provider.NameLLM, cfg.LLM, words)
	if err != nil {
		if strings.EqualFold(cfg.Provider, provider.NameLLM) {
			return nil, err
		}
		logger.Warn("llm provider disabled", "err", err)
		return providers, nil
	}
	providers[provider.NameLLM] = llm
	return providers, nil
}

// resolveLanguage replaces llm.language "auto" with the language detected in
// text, or clears it when detection fails.
func resolveLanguage(text string) {
	if !strings.EqualFold(cfg.LLM.Language, "auto") {
		return
	}
	cfg.LLM.Language = ""
	if text == "" {
		return
	}
	if detected, ok := detector.New().DetectTag(text); ok {
		cfg.LLM.Language = detected
		fmt.Fprintf(os.Stderr, "Detected language: %s\n", cfg.LLM.Language)
	}
}
