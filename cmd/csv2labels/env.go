package main

import (
	"context"
	"io"
	"os"
	"time"

	csv2labels "github.com/alnah/go-csv2labels"
)

// Generator is the part of csv2labels.Generator the CLI uses.
type Generator interface {
	Generate(ctx context.Context, run *csv2labels.RunState, in csv2labels.Input) (*csv2labels.GenerateResult, error)
	LoadLayout(nameOrPath string) (*csv2labels.Layout, error)
	LayoutSource(name string) ([]byte, error)
	Layouts() ([]string, error)
	Styles() ([]string, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Generator = (*csv2labels.Generator)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewGenerator func(opts ...csv2labels.Option) (Generator, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewGenerator: func(opts ...csv2labels.Option) (Generator, error) {
			g, err := csv2labels.NewGenerator(opts...)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
	}
}
