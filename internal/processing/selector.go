package processing

import (
	"strings"

	"ats-checker/internal/llm"
)

// Strategy is the outcome of selection: how to process a file and which
// providers to try, in order.
type Strategy struct {
	Mode      string   `json:"mode"`
	Providers []string `json:"providers"`
	Reason    string   `json:"reason"`
}

// Select picks a processing strategy for the given file.
//
// Precedence: a session provider override pins the provider list; an
// explicit default mode in settings bypasses the rule table; otherwise the
// first matching rule decides. Cost optimization reorders hybrid provider
// lists so the free-tier provider goes first.
func Select(fileName string, sizeBytes int64, settings Settings, forceProvider string) Strategy {
	ext := strings.ToLower(fileExt(fileName))
	strategy := baseStrategy(ext, sizeBytes, settings)

	if force := strings.ToLower(strings.TrimSpace(forceProvider)); force != "" {
		strategy.Providers = []string{force}
		strategy.Reason = "session_override"
		return strategy
	}

	if settings.EnableCostOptimization && strategy.Mode == ModeHybrid {
		if reordered, moved := preferFreeTier(strategy.Providers); moved {
			strategy.Providers = reordered
			strategy.Reason = strategy.Reason + "+cost_optimized"
		}
	}
	return strategy
}

func baseStrategy(ext string, sizeBytes int64, settings Settings) Strategy {
	if settings.DefaultMode != "" {
		return Strategy{
			Mode:      settings.DefaultMode,
			Providers: append([]string(nil), settings.ProviderPriority...),
			Reason:    "default_mode_override",
		}
	}

	for _, rule := range DefaultRules() {
		if rule.Matches(ext, sizeBytes) {
			return Strategy{
				Mode:      rule.Mode,
				Providers: append([]string(nil), rule.Providers...),
				Reason:    rule.Name,
			}
		}
	}

	return Strategy{
		Mode:      ModeHybrid,
		Providers: append([]string(nil), settings.ProviderPriority...),
		Reason:    "fallback_default",
	}
}

// preferFreeTier moves groq to the front of the list if present.
func preferFreeTier(providers []string) ([]string, bool) {
	for i, p := range providers {
		if p != llm.ProviderGroq {
			continue
		}
		if i == 0 {
			return providers, false
		}
		out := make([]string, 0, len(providers))
		out = append(out, llm.ProviderGroq)
		out = append(out, providers[:i]...)
		out = append(out, providers[i+1:]...)
		return out, true
	}
	return providers, false
}

func fileExt(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx:]
}
