package main

import (
	"github.com/jmylchreest/dreamspinner/internal/config"
	"github.com/jmylchreest/dreamspinner/internal/dream"
	"github.com/jmylchreest/dreamspinner/internal/dreams"
	"github.com/jmylchreest/dreamspinner/internal/tui"
)

// runConfig opens the settings editor.
func runConfig(store *config.Store) error {
	registry := dream.NewRegistry(dreams.Catalog(), dream.Deps{Settings: store, Logger: logger})
	return tui.Run(tui.RunOptions{
		Store:    store,
		Registry: registry,
		Version:  version,
		Logger:   logger,
	})
}
