package game

import (
	"log/slog"

	"github.com/pthm-cable/framestats/overlay"
)

// logStats logs the same breakdown the overlay shows.
func (g *Game) logStats() {
	report := overlay.Aggregate(g.timers, g.stats.World())
	slog.Info("frame stats",
		"frame", g.frame,
		"entities", g.world.NumEntities(),
		"report", report,
		"timers", g.timers,
	)
}
