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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/proofreader/internal/dictionary"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the protected-word dictionary",
	Long: `Add, list, and delete protected words.

Protected words (names, acronyms, jargon) are never changed by the mock
provider and are listed in the LLM prompt as words to leave alone.`,
}

// openStore is openDictionary for commands that need a dictionary; it creates
// a missing SQLite database.
func openStore() (dictionary.Store, error) {
	store, err := openDictionary(true)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("dictionary backend is %q; set dictionary.backend to sqlite or redis", cfg.Dictionary.Backend)
	}
	return store, nil
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all protected words",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		// SQLite keeps IDs and timestamps; other backends only words.
		if db, ok := store.(*dictionary.SQLite); ok {
			entries, err := db.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list dictionary: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("Dictionary is empty.")
				return nil
			}
			fmt.Fprintln(w, "ID\tWORD\tADDED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Word, e.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		}

		words, err := store.Words(ctx)
		if err != nil {
			return fmt.Errorf("failed to list dictionary: %w", err)
		}
		if len(words) == 0 {
			fmt.Println("Dictionary is empty.")
			return nil
		}
		fmt.Fprintln(w, "WORD")
		for _, word := range words {
			fmt.Fprintln(w, word)
		}
		return w.Flush()
	},
}

var dictAddCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Add protected words",
	Long: `Add one or more words that correction providers must leave untouched.

Example:
  proofreader dict add Kubernetes PostgreSQL "Kyiv"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, word := range args {
			if err := store.Add(context.Background(), word); err != nil {
				return fmt.Errorf("failed to add %q: %w", word, err)
			}
			fmt.Printf("Added: %q\n", word)
		}
		return nil
	},
}

var dictDeleteCmd = &cobra.Command{
	Use:   "delete <word-or-id>",
	Short: "Delete a protected word",
	Long: `Delete a protected word by the word itself or, for the SQLite backend, by
its ID (shown in "proofreader dict list").

Example:
  proofreader dict delete Kubernetes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Remove(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete %q: %w", args[0], err)
		}
		fmt.Printf("Deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)

	dictCmd.PersistentFlags().String("db", "./data/proofreader.db", "Database path (sqlite backend)")
	dictCmd.PersistentFlags().String("dict-backend", "sqlite", "Dictionary backend: sqlite or redis")

	dictCmd.AddCommand(dictListCmd)
	dictCmd.AddCommand(dictAddCmd)
	dictCmd.AddCommand(dictDeleteCmd)
}
