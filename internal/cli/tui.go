package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abelbrown/factguard/internal/config"
	"github.com/abelbrown/factguard/internal/logging"
	"github.com/abelbrown/factguard/internal/otel"
	"github.com/abelbrown/factguard/internal/ui"
	"github.com/abelbrown/factguard/internal/ui/form"
	"github.com/abelbrown/factguard/internal/ui/results"
	tea "github.com/charmbracelet/bubbletea"
)

// openEvents starts the JSONL event log, or a null logger when disabled.
// The returned func closes the underlying file.
func openEvents(c *config.Config, dataDir string) (*otel.Logger, func(), error) {
	if !c.Log.Events {
		return otel.NewNullLogger(), func() {}, nil
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "events.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return otel.NewLogger(f), func() { f.Close() }, nil
}

func runTUI(c *config.Config) error {
	dataDir := config.DataDir()
	if err := logging.Init(dataDir, c.Log.Level); err != nil {
		return err
	}
	defer logging.Close()
	log := logging.WithPrefix("tui")

	events, closeEvents, err := openEvents(c, dataDir)
	if err != nil {
		return err
	}
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	defer closeEvents()
	defer events.Close()

	events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindStartup,
		Comp:  "main",
		Msg:   c.API.BaseURL,
		Extra: map[string]any{"version": logging.Version},
	})
	log.Info("connecting to service", "base_url", c.API.BaseURL, "timeout", c.API.Timeout)

	app := ui.NewApp(ui.AppConfig{
		Backend: newClient(c),
		Form: form.Options{
			PageSize: c.UI.ReviewPageSize,
			Interval: c.UI.ProgressInterval,
		},
		Results: results.Options{
			PageSize: c.UI.ResultsPageSize,
			Markdown: c.UI.Markdown,
			Theme:    c.UI.Theme,
		},
		Obs:     ui.ObsConfig{Events: events, Ring: ring},
		BaseURL: c.API.BaseURL,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := program.Run()
	if runErr != nil {
		log.Error("program exited with error", "err", runErr)
		events.Error(otel.KindError, "main", runErr)
	}

	events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindShutdown,
		Comp:  "main",
		Msg:   fmt.Sprintf("dropped=%d", events.Dropped()),
	})
	return runErr
}
