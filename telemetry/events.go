// Package telemetry provides population health tracking, bookmarking, and snapshots.
package telemetry

import "log/slog"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventDespawn
	EventFight
	EventReseed
)

func (t EventType) String() string {
	switch t {
	case EventBirth:
		return "birth"
	case EventDeath:
		return "death"
	case EventDespawn:
		return "despawn"
	case EventFight:
		return "fight"
	case EventReseed:
		return "reseed"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32

	// Optional fields depending on event type
	TargetID uint32  // parent for births, loser for fights
	Amount   float64 // damage dealt (fight) or energy at death
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(tick int32, childID, parentID uint32) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		TargetID: parentID, // first parent
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int32, entityID uint32, energy float64) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Amount:   energy,
	}
}

// NewDespawnEvent creates an event for a corpse leaving the world.
func NewDespawnEvent(tick int32, entityID uint32) Event {
	return Event{
		Type:     EventDespawn,
		Tick:     tick,
		EntityID: entityID,
	}
}

// NewFightEvent creates a fight event; EntityID is the winner.
func NewFightEvent(tick int32, winnerID, loserID uint32, damage float64) Event {
	return Event{
		Type:     EventFight,
		Tick:     tick,
		EntityID: winnerID,
		TargetID: loserID,
		Amount:   damage,
	}
}

// NewReseedEvent creates an event for a beast injected to rescue a
// collapsing population.
func NewReseedEvent(tick int32, entityID uint32) Event {
	return Event{
		Type:     EventReseed,
		Tick:     tick,
		EntityID: entityID,
	}
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("tick", int(e.Tick)),
		slog.Uint64("id", uint64(e.EntityID)),
	}
	if e.TargetID != 0 {
		attrs = append(attrs, slog.Uint64("target", uint64(e.TargetID)))
	}
	if e.Type == EventFight || e.Type == EventDeath {
		attrs = append(attrs, slog.Float64("amount", e.Amount))
	}
	return slog.GroupValue(attrs...)
}
