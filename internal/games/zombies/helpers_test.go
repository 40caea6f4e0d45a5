package zombies

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zombie-arena/internal/config"
	"github.com/vovakirdan/zombie-arena/internal/core"
)

const eps = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestMatch starts a normal-difficulty match at t=0.
func newTestMatch(t *testing.T, mutate func(*config.ZombiesConfig)) *MatchState {
	t.Helper()
	cfg := config.DefaultZombiesConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	m := NewMatch(cfg, 42, quietLogger())
	m.Start(0)
	return m
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func body(x, y, w, h float64) Body {
	return NewBody(core.V(x, y), core.V(w, h))
}
