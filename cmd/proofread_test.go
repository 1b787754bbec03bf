package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcceptedFlags(t *testing.T) {
	got, err := acceptedFlags(4, []int{0, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, true, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flag %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := acceptedFlags(2, []int{2}); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("from stdin"), "-")
	if err != nil || got != "from stdin" {
		t.Errorf("stdin: got %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("from file"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = readInput(nil, path)
	if err != nil || got != "from file" {
		t.Errorf("file: got %q, %v", got, err)
	}

	if _, err := readInput(nil, filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteOutput(t *testing.T) {
	render := func(w io.Writer) error {
		_, err := io.WriteString(w, "report")
		return err
	}

	var stdout bytes.Buffer
	if err := writeOutput(&stdout, "-", render); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "report" {
		t.Errorf("stdout = %q", stdout.String())
	}

	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	if err := writeOutput(nil, path, render); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "report" {
		t.Errorf("file = %q, %v", data, err)
	}
}
