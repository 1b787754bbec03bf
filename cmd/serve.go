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
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/proofreader/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the proofreading API over HTTP",
	Long: `Start an HTTP server exposing:

  POST /api/proofread     {"text": "...", "provider": "mock|llm"}
  POST /api/reconstruct   {"sentence_diffs": [...], "accepted": [...]}
  GET  /health`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		resolveLanguage("")
		providers, err := buildProviders(loadProtectedWords(ctx))
		if err != nil {
			return err
		}

		handler := server.New(providers, server.Config{
			DefaultProvider: cfg.Provider,
			Workers:         cfg.Workers,
			MaxBodyBytes:    cfg.Server.MaxBodyBytes,
			Logger:          logger,
		})

		mux := http.NewServeMux()
		handler.Register(mux)

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      mux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  120 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			logger.Info("shutting down")

			shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutCancel()

			if err := srv.Shutdown(shutCtx); err != nil {
				logger.Error("shutdown error", "err", err)
			}
		}()

		logger.Info("starting proofreader server",
			"addr", cfg.Server.Addr,
			"provider", cfg.Provider,
			"providers", len(providers),
			"workers", cfg.Workers,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringP("provider", "p", "mock", "Default correction provider: mock or llm")
	serveCmd.Flags().Int("workers", 4, "Concurrent provider calls per request")
	serveCmd.Flags().String("llm-backend", "openrouter", "LLM backend: openrouter, ollama or anthropic")
	serveCmd.Flags().String("model", "", "LLM model (backend default if empty)")
	serveCmd.Flags().String("llm-url", "", "LLM base URL (backend default if empty)")
	serveCmd.Flags().String("lang", "", "Language of the text as a BCP 47 tag")
	serveCmd.Flags().String("db", "./data/proofreader.db", "Protected-word database path")
}
