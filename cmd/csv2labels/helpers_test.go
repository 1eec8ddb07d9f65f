package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	csv2labels "github.com/alnah/go-csv2labels"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock generator and environment
// ---------------------------------------------------------------------------

// mockGenerator implements Generator without a browser.
type mockGenerator struct {
	result    *csv2labels.GenerateResult
	err       error
	layout    *csv2labels.Layout
	loadErr   error
	layouts   []string
	source    []byte
	closed    bool
	gotInput  csv2labels.Input
	gotLayout string
}

func (m *mockGenerator) Generate(_ context.Context, _ *csv2labels.RunState, in csv2labels.Input) (*csv2labels.GenerateResult, error) {
	m.gotInput = in
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockGenerator) LoadLayout(nameOrPath string) (*csv2labels.Layout, error) {
	m.gotLayout = nameOrPath
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.layout, nil
}

func (m *mockGenerator) LayoutSource(name string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.source, nil
}

func (m *mockGenerator) Layouts() ([]string, error) { return m.layouts, nil }
func (m *mockGenerator) Styles() ([]string, error)  { return []string{"default"}, nil }

func (m *mockGenerator) Close() error {
	m.closed = true
	return nil
}

// testLayout returns a minimal valid layout requiring LOTES.
func testLayout() *csv2labels.Layout {
	return &csv2labels.Layout{
		Name:     "lotes",
		Page:     csv2labels.PageSettings{Width: 100, Height: 70, Unit: csv2labels.UnitMM},
		Required: []string{"LOTES"},
		Elements: []csv2labels.Element{
			{Type: csv2labels.ElementBarcode, Field: "LOTES", X: 10, Y: 10, Width: 60, Height: 40},
		},
	}
}

// newMockEnv returns an environment whose generator factory returns gen.
func newMockEnv(gen *mockGenerator) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	env := &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: &stdout,
		Stderr: &stderr,
		NewGenerator: func(...csv2labels.Option) (Generator, error) {
			return gen, nil
		},
	}
	return env, &stdout, &stderr
}

// writeCSV writes content to name inside a fresh temp dir and returns the path.
func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	return path
}
