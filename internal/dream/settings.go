package dream

import (
	"fmt"
	"log/slog"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/dreamspinner/internal/config"
)

// DecodeSettings reads the dream's blob from the store on top of defaults.
// A missing blob yields defaults; an unparsable one is logged and yields
// defaults as well.
func DecodeSettings[T any](store *config.Store, id ID, defaults T, logger *slog.Logger) T {
	if logger == nil {
		logger = slog.Default()
	}

	var blob string
	if err := store.Read(func(s *config.Settings) {
		blob = s.DreamSettings[string(id)]
	}); err != nil {
		logger.Warn("failed to read dream settings, using defaults", "dream", id, "error", err)
		return defaults
	}
	if blob == "" {
		return defaults
	}

	out := defaults
	if err := toml.Unmarshal([]byte(blob), &out); err != nil {
		logger.Warn("invalid dream settings, using defaults", "dream", id, "error", err)
		return defaults
	}
	return out
}

// EncodeSettings writes v as the dream's blob in the store.
func EncodeSettings(store *config.Store, id ID, v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal settings for %s: %w", id, err)
	}
	return store.Write(func(s *config.Settings) {
		s.DreamSettings[string(id)] = string(data)
	})
}
