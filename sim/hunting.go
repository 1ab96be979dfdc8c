package sim

import (
	"context"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ocean/components"
	"github.com/pthm-cable/ocean/config"
	"github.com/pthm-cable/ocean/logging"
	"github.com/pthm-cable/ocean/telemetry"
)

// updateHunting sends every living crab on one hunt.
func (s *Simulation) updateHunting() {
	ctx := context.Background()
	traceOn := slog.Default().Enabled(ctx, logging.LevelTrace)

	query := s.crabFilter.Query()
	for query.Next() {
		forager, _, appetite := query.Get()

		report := forager.Crab.HuntReport()
		success := report.Success()

		appetite.Record(success, report.Escapes, report.Rejected)
		s.collector.RecordHunt(success, report.Escapes, report.Rejected)

		s.totals.Hunts++
		s.totals.Escapes += report.Escapes
		s.totals.Rejected += report.Rejected
		if success {
			s.totals.Catches++
		}

		if traceOn {
			caught := ""
			if success {
				caught = report.Caught.Kind().String()
			}
			slog.Log(ctx, logging.LevelTrace, "hunt",
				"tick", s.tick,
				"crab", forager.Crab.Name(),
				"beach", forager.Beach.Name(),
				"caught", caught,
				"reef", report.Reef,
				"escapes", report.Escapes,
				"rejected", report.Rejected,
				"searches", report.Searches,
			)
		}
	}
}

// cleanupStarved removes crabs that failed too many hunts in a row.
func (s *Simulation) cleanupStarved() {
	limit := s.cfg.Hunting.StarveAfter
	if limit <= 0 {
		return
	}

	// First pass: collect starved entities (must complete before modifying)
	type starvedInfo struct {
		entity  ecs.Entity
		entry   telemetry.HallEntry
		forager components.Forager
	}
	var toRemove []starvedInfo

	query := s.crabFilter.Query()
	for query.Next() {
		forager, identity, appetite := query.Get()
		if appetite.Starving(limit) {
			toRemove = append(toRemove, starvedInfo{
				entity:  query.Entity(),
				entry:   hallEntry(forager, identity, appetite, s.tick),
				forager: *forager,
			})
		}
	}

	// Second pass: remove
	for _, dead := range toRemove {
		dead.forager.Beach.RemoveCrab(dead.forager.Crab)
		delete(s.entities, dead.forager.Crab)
		s.world.RemoveEntity(dead.entity)

		s.hallOfFame.Consider(dead.entry)
		s.collector.RecordStarvation()
		s.totals.Starved++

		slog.Debug("crab starved",
			"tick", s.tick,
			"crab", dead.entry.Name,
			"beach", dead.entry.Beach,
			"hunts", dead.entry.Hunts,
			"catches", dead.entry.Catches,
		)
	}
}

// hallEntry snapshots a crab for the hall of fame. deathTick is 0 for living crabs.
func hallEntry(f *components.Forager, id *components.Identity, a *components.Appetite, deathTick int32) telemetry.HallEntry {
	c := f.Crab
	return telemetry.HallEntry{
		ID:        id.ID.String(),
		Name:      c.Name(),
		Beach:     f.Beach.Name(),
		Diet:      c.Diet().String(),
		Speed:     c.Speed(),
		Color:     config.FormatColor(c.Color()),
		Founder:   id.Founder,
		BirthTick: id.BirthTick,
		DeathTick: deathTick,
		Hunts:     a.Hunts,
		Catches:   a.Catches,
		Children:  a.Children,
	}
}
