package tui

import (
	"errors"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/studiowebux/printcat/internal/catalog"
	"github.com/studiowebux/printcat/internal/config"
	"github.com/studiowebux/printcat/internal/files"
	"github.com/studiowebux/printcat/internal/history"
	"github.com/studiowebux/printcat/internal/keybinds"
	"github.com/studiowebux/printcat/internal/logging"
)

// ErrNotInteractive is returned by Run when stdin or stdout is not a terminal.
var ErrNotInteractive = errors.New("not running in an interactive terminal")

// Options wires the model to its collaborators
type Options struct {
	Repos       catalog.Repositories
	Activity    ActivityLog
	Keybinds    *keybinds.Registry
	ProductRoot string
	Config      *config.Config
	// KeybindsErr is a rejected user keybinds file; defaults are in use
	KeybindsErr error
}

// New creates a model and loads the catalog once.
// A failed load is reported in the status bar, not returned.
func New(opts Options) *Model {
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	root := opts.ProductRoot
	if root == "" {
		root = cfg.ProductRoot
	}

	m := &Model{
		repos:          opts.Repos,
		activity:       opts.Activity,
		keybinds:       registry,
		productRoot:    root,
		apiURL:         cfg.APIBaseURL,
		messageTimeout: cfg.MessageTimeout,
		openFolder:     files.OpenFolder,
		writeClipboard: clipboard.WriteAll,
		readClipboard:  clipboard.ReadAll,
		createForm:     newCreateForm(),
		mode:           ModeNormal,
		tab:            TabSearch,
		pane:           PaneLeft,
		filePreview:    viewport.New(60, 12),
		viewer:         viewport.New(80, 20),
	}

	m.initCmd = m.refresh()
	m.ensureSelection()

	if opts.KeybindsErr != nil {
		msg := "Keybindings ignored: " + strings.Join(strings.Fields(opts.KeybindsErr.Error()), " ")
		if m.errorMsg != "" {
			msg = m.errorMsg + "; " + msg
		}
		m.initCmd = m.setErrorMessage(msg)
	}
	return m
}

// IsInteractive reports whether both stdin and stdout are terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI
func Run(cfg *config.Config) error {
	if !IsInteractive() {
		return ErrNotInteractive
	}

	registry, keybindsErr := keybinds.LoadOrDefault(cfg.KeybindsPath)
	if keybindsErr != nil {
		logging.Warn("keybinds config ignored", zap.String("path", cfg.KeybindsPath), zap.Error(keybindsErr))
	}

	var activity ActivityLog
	mgr, err := history.NewManager(cfg.HistoryPath)
	if err != nil {
		logging.Warn("activity log unavailable", zap.String("path", cfg.HistoryPath), zap.Error(err))
	} else {
		defer mgr.Close()
		activity = mgr
	}

	client := catalog.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	logging.Info("starting", zap.String("api", client.BaseURL), zap.String("products_dir", cfg.ProductRoot))

	m := New(Options{
		Repos:       client.Repositories(),
		Activity:    activity,
		Keybinds:    registry,
		KeybindsErr: keybindsErr,
		Config:      cfg,
	})

	// The program restores the terminal on every exit path, panics included
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
