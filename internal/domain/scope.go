package domain

import "time"

// ScopeDateLayout is the calendar-day key format for daily mission rows.
const ScopeDateLayout = "2006-01-02"

type MissionScopeKind int

const (
	ScopeOneOff MissionScopeKind = iota
	ScopeDaily
)

// MissionScope identifies one progress instance: the (user, mission) pair is
// supplied by the caller; the scope picks the one-off row or the daily row
// for a given calendar day.
type MissionScope struct {
	Kind MissionScopeKind
	Date string
}

func OneOffScope() MissionScope {
	return MissionScope{Kind: ScopeOneOff}
}

func DailyScope(day time.Time) MissionScope {
	return MissionScope{Kind: ScopeDaily, Date: day.UTC().Format(ScopeDateLayout)}
}

func (s MissionScope) IsDaily() bool { return s.Kind == ScopeDaily }
