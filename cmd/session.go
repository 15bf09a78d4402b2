package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eykd/unitree-go/internal/config"
	"github.com/eykd/unitree-go/internal/document"
	"github.com/eykd/unitree-go/internal/editor"
	"github.com/eykd/unitree-go/internal/unit"
	"github.com/eykd/unitree-go/internal/unitdef"
)

// DocumentIO handles document I/O for every command.
type DocumentIO interface {
	ReadDocument(ctx context.Context, path string) ([]byte, error)
	WriteDocumentAtomic(ctx context.Context, path string, data []byte) error
}

// fileDocumentIO implements DocumentIO using OS file I/O.
type fileDocumentIO struct{}

func newDefaultDocumentIO() *fileDocumentIO {
	return &fileDocumentIO{}
}

// ReadDocument reads the document file at path.
func (w *fileDocumentIO) ReadDocument(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteDocumentAtomic writes data to path atomically via a temp file.
func (w *fileDocumentIO) WriteDocumentAtomic(_ context.Context, path string, data []byte) error {
	return document.WriteFileAtomic(path, data)
}

// session is one command invocation against one document.
type session struct {
	io     DocumentIO
	path   string
	format document.Format
	editor *editor.Editor
	logger *log.Logger
}

// openSession loads configuration, unit definitions and the document at
// path, and builds an editor over it.
func openSession(cmd *cobra.Command, io DocumentIO, path string) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, cfgFile, err := config.Load(config.LoadOptions{ConfigFilePath: configPath})
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "utk",
		Level:  cfg.LogLevel(),
	})
	if cfgFile != "" {
		logger.Debug("loaded config", "path", cfgFile)
	}

	registry := unitdef.Default()
	if cfg.Definitions != "" {
		if registry, err = unitdef.Load(cfg.Definitions); err != nil {
			return nil, err
		}
		logger.Debug("loaded unit definitions", "path", cfg.Definitions, "types", len(registry.Types()))
	}

	ids, err := editor.IDsForVersion(cfg.IDs.Version)
	if err != nil {
		return nil, err
	}

	format := cfg.DocumentFormat().Resolve(path)
	data, err := io.ReadDocument(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	st, err := document.Decode(data, format)
	if err != nil {
		return nil, err
	}

	return &session{
		io:     io,
		path:   path,
		format: format,
		logger: logger,
		editor: editor.New(st, editor.Options{
			Registry: registry,
			IDs:      ids,
			Logger:   logger,
		}),
	}, nil
}

// finish reports the outcome of a mutating command and rewrites the
// document when the state changed. okMsg is printed in human mode on
// success.
func (s *session) finish(cmd *cobra.Command, jsonMode bool, res editor.Result, opErr error, okMsg string) error {
	diags := eventDiagnostics(res.Events)
	if opErr != nil {
		diags = append(diags, errorDiagnostic(opErr))
	}
	changed := res.Changed && !hasDiagnosticError(diags)

	if err := writeResult(cmd, jsonMode, changed, diags); err != nil {
		return err
	}
	if hasDiagnosticError(diags) {
		return fmt.Errorf("%s has errors", cmd.Name())
	}

	if changed {
		data, err := document.Encode(s.editor.State(), s.format)
		if err != nil {
			return err
		}
		if err := s.io.WriteDocumentAtomic(cmd.Context(), s.path, data); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
	}

	if !jsonMode && okMsg != "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), sanitizeText(okMsg)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// state returns the editor's current state.
func (s *session) state() unit.State {
	return s.editor.State()
}

// requireUnits fails with unit.ErrUnitNotFound for the first id that is not
// in the document.
func (s *session) requireUnits(ids ...string) error {
	st := s.state()
	for _, id := range ids {
		if _, ok := unit.FindUnitByID(st, id); !ok {
			return fmt.Errorf("unit %q: %w", id, unit.ErrUnitNotFound)
		}
	}
	return nil
}
