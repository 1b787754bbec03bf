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
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/proofreader/internal"
	"github.com/valpere/proofreader/internal/provider"
	"github.com/valpere/proofreader/internal/proofread"
	"github.com/valpere/proofreader/internal/report"
)

var (
	inputFile  string
	outputFile string
	formatName string
	rejected   []int
)

var proofreadCmd = &cobra.Command{
	Use:   "proofread",
	Short: "Proofread text sentence by sentence",
	Long: `Split the input into sentences, correct each sentence with the selected
provider and write the corrected text or a change report.

Providers:
  - mock   Rule-based corrector (offline, deterministic)
  - llm    LLM backend: openrouter (default), ollama or anthropic

Report formats: text (corrected text only), json, markdown, html

Keep the original of selected sentences: --reject 0,2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" && outputFile != "-" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		text, err := readInput(cmd.InOrStdin(), inputFile)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return proofread.ErrEmptyInput
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if strings.EqualFold(cfg.Provider, provider.NameLLM) {
			resolveLanguage(text)
		}
		words := loadProtectedWords(ctx)
		p, err := provider.New(cfg.Provider, cfg.LLM, words)
		if err != nil {
			return err
		}

		req := internal.NewProofreadRequest(text, p.Name())
		log := logger.With("request_id", req.ID)
		log.Debug("proofreading", "provider", req.Provider, "bytes", len(req.Text))

		a := proofread.New(p, proofread.WithWorkers(cfg.Workers), proofread.WithLogger(log))
		res, err := a.Assemble(ctx, req.Text)
		if err != nil {
			return fmt.Errorf("proofreading failed: %w", err)
		}

		if len(rejected) > 0 {
			accepted, err := acceptedFlags(len(res.SentenceDiffs), rejected)
			if err != nil {
				return err
			}
			res.FinalText = proofread.Reconstruct(res.SentenceDiffs, accepted)
		}

		if err := writeOutput(cmd.OutOrStdout(), outputFile, func(w io.Writer) error {
			return report.Write(w, res, format)
		}); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "%s\n", report.Summary(res))
		if res.Failed > 0 {
			fmt.Fprintf(os.Stderr, "Provider failed on %d sentence(s); they were left unchanged\n", res.Failed)
		}
		return nil
	},
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

func writeOutput(stdout io.Writer, path string, render func(io.Writer) error) error {
	if path == "" || path == "-" {
		return render(stdout)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}

// acceptedFlags turns a list of rejected sentence indices into accept flags
// for n sentences.
func acceptedFlags(n int, rejected []int) ([]bool, error) {
	accepted := make([]bool, n)
	for i := range accepted {
		accepted[i] = true
	}
	for _, i := range rejected {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("--reject: sentence %d out of range (0..%d)", i, n-1)
		}
		accepted[i] = false
	}
	return accepted, nil
}

func init() {
	rootCmd.AddCommand(proofreadCmd)

	proofreadCmd.Flags().StringVarP(&inputFile, "input", "i", "-", "Input file to proofread (- for stdin)")
	proofreadCmd.Flags().StringVarP(&outputFile, "output", "o", "-", "Output file (- for stdout)")
	proofreadCmd.Flags().StringVarP(&formatName, "format", "f", "text", "Output format: text, json, markdown, html")
	proofreadCmd.Flags().IntSliceVar(&rejected, "reject", nil, "Sentence indices whose correction is rejected (comma-separated)")

	proofreadCmd.Flags().StringP("provider", "p", "mock", "Correction provider: mock or llm")
	proofreadCmd.Flags().Int("workers", 4, "Concurrent provider calls")
	proofreadCmd.Flags().String("llm-backend", "openrouter", "LLM backend: openrouter, ollama or anthropic")
	proofreadCmd.Flags().String("model", "", "LLM model (backend default if empty)")
	proofreadCmd.Flags().String("llm-url", "", "LLM base URL (backend default if empty)")
	proofreadCmd.Flags().String("lang", "", "Language of the text as a BCP 47 tag (e.g. en, uk) or auto")
	proofreadCmd.Flags().Bool("guard-lang", false, "Reject corrections that switch language")
	proofreadCmd.Flags().String("db", "./data/proofreader.db", "Protected-word database path")
}
