package processing

import (
	"fmt"
	"strings"
	"sync"

	"ats-checker/internal/llm"
	"ats-checker/internal/shared/config"
)

// Settings is a point-in-time snapshot of the runtime processing configuration.
type Settings struct {
	DefaultMode            string   `json:"defaultMode"`
	ProviderPriority       []string `json:"providerPriority"`
	EnableCostOptimization bool     `json:"enableCostOptimization"`
	EnableAutoFallback     bool     `json:"enableAutoFallback"`
}

// Update carries a partial settings change; nil fields are left untouched.
type Update struct {
	DefaultMode            *string  `json:"defaultMode"`
	ProviderPriority       []string `json:"providerPriority"`
	EnableCostOptimization *bool    `json:"enableCostOptimization"`
	EnableAutoFallback     *bool    `json:"enableAutoFallback"`
}

// Store holds mutable runtime settings, seeded from the environment and
// adjustable through the admin API without a restart.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore seeds a settings store from static configuration.
func NewStore(cfg config.Config) *Store {
	priority := normalizePriority(cfg.ProviderPriority)
	if len(priority) == 0 {
		priority = []string{llm.ProviderOpenAI, llm.ProviderGroq, llm.ProviderAnthropic}
	}
	return &Store{
		settings: Settings{
			DefaultMode:            cfg.DefaultProcessingMode,
			ProviderPriority:       priority,
			EnableCostOptimization: cfg.EnableCostOptimization,
			EnableAutoFallback:     cfg.EnableAutoFallback,
		},
	}
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.ProviderPriority = append([]string(nil), s.settings.ProviderPriority...)
	return out
}

// Apply validates and applies a partial update, returning the new snapshot.
func (s *Store) Apply(update Update) (Settings, error) {
	next, err := s.Preview(update)
	if err != nil {
		return Settings{}, err
	}

	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()

	out := next
	out.ProviderPriority = append([]string(nil), next.ProviderPriority...)
	return out, nil
}

// Preview validates an update and returns the settings it would produce
// without committing them.
func (s *Store) Preview(update Update) (Settings, error) {
	s.mu.RLock()
	next := s.settings
	next.ProviderPriority = append([]string(nil), s.settings.ProviderPriority...)
	s.mu.RUnlock()

	if update.DefaultMode != nil {
		mode, err := NormalizeMode(*update.DefaultMode)
		if err != nil {
			return Settings{}, err
		}
		next.DefaultMode = mode
	}
	if update.ProviderPriority != nil {
		priority, err := validPriority(update.ProviderPriority)
		if err != nil {
			return Settings{}, err
		}
		next.ProviderPriority = priority
	}
	if update.EnableCostOptimization != nil {
		next.EnableCostOptimization = *update.EnableCostOptimization
	}
	if update.EnableAutoFallback != nil {
		next.EnableAutoFallback = *update.EnableAutoFallback
	}
	return next, nil
}

// ApplyPreset switches settings to a named preset.
func (s *Store) ApplyPreset(name string) (Settings, error) {
	preset, ok := Presets()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Settings{}, fmt.Errorf("unknown preset: %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = preset
	out := preset
	out.ProviderPriority = append([]string(nil), preset.ProviderPriority...)
	return out, nil
}

// Presets returns the named settings bundles selectable via the admin API.
func Presets() map[string]Settings {
	return map[string]Settings{
		"speed": {
			DefaultMode:            ModeHybrid,
			ProviderPriority:       []string{llm.ProviderGroq, llm.ProviderOpenAI},
			EnableCostOptimization: true,
			EnableAutoFallback:     true,
		},
		"accuracy": {
			DefaultMode:            ModeCompleteLLM,
			ProviderPriority:       []string{llm.ProviderOpenAI, llm.ProviderAnthropic},
			EnableCostOptimization: false,
			EnableAutoFallback:     true,
		},
		"cost": {
			DefaultMode:            ModeHybrid,
			ProviderPriority:       []string{llm.ProviderGroq, llm.ProviderOpenAI, llm.ProviderAnthropic},
			EnableCostOptimization: true,
			EnableAutoFallback:     true,
		},
		"dev": {
			DefaultMode:            ModeHybrid,
			ProviderPriority:       []string{llm.ProviderGroq},
			EnableCostOptimization: true,
			EnableAutoFallback:     false,
		},
		"prod": {
			DefaultMode:            "",
			ProviderPriority:       []string{llm.ProviderOpenAI, llm.ProviderGroq, llm.ProviderAnthropic},
			EnableCostOptimization: true,
			EnableAutoFallback:     true,
		},
	}
}

// PresetNames lists selectable preset names.
func PresetNames() []string {
	return []string{"speed", "accuracy", "cost", "dev", "prod"}
}

func knownProviders() map[string]struct{} {
	return map[string]struct{}{
		llm.ProviderOpenAI:    {},
		llm.ProviderGroq:      {},
		llm.ProviderAnthropic: {},
	}
}

// normalizePriority filters a seed list down to known providers. Used for
// environment seeding only; admin updates go through validPriority.
func normalizePriority(raw []string) []string {
	known := knownProviders()
	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, p := range raw {
		name := strings.ToLower(strings.TrimSpace(p))
		if _, ok := known[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// validPriority rejects any name outside the known provider set instead
// of filtering it.
func validPriority(raw []string) ([]string, error) {
	known := knownProviders()
	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, p := range raw {
		name := strings.ToLower(strings.TrimSpace(p))
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown provider: %q", strings.TrimSpace(p))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("providerPriority must name at least one provider")
	}
	return out, nil
}
