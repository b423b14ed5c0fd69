package onedrop

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/one-drop/internal/core"
)

// noZone is the last-zone marker at run start.
const noZone = "none"

// timeEpsilon lets an event fire on the tick that reaches its time despite
// accumulated float error in Elapsed.
const timeEpsilon = 1e-6

// stageEvent is a pending goal growth stage.
type stageEvent struct {
	fireAt     float64
	stage      int
	generation int
}

// schedule is an ordered queue of goal events keyed by elapsed time.
// Clearing bumps the generation so events handed out earlier are stale.
type schedule struct {
	events     []stageEvent
	generation int
}

func (s *schedule) add(fireAt float64, stage int) {
	s.events = append(s.events, stageEvent{fireAt: fireAt, stage: stage, generation: s.generation})
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].fireAt < s.events[j].fireAt
	})
}

// due pops every event whose time has come, in time order.
func (s *schedule) due(now float64) []stageEvent {
	n := 0
	for n < len(s.events) && s.events[n].fireAt <= now+timeEpsilon {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make([]stageEvent, n)
	copy(out, s.events[:n])
	s.events = s.events[n:]
	return out
}

func (s *schedule) clear() {
	s.events = nil
	s.generation++
}

func (s *schedule) current(ev stageEvent) bool {
	return ev.generation == s.generation
}

func (s *schedule) pending() int {
	return len(s.events)
}

// Session tracks run-level state: timer, status message, outcome and the
// goal growth queue.
type Session struct {
	Elapsed   float64
	Message   string
	Timer     string
	Ended     bool
	Outcome   core.Outcome
	Cause     string // Message that ended the run
	LastZone  string
	Planted   bool // Seed reached
	GoalStage int

	events schedule
}

// NewSession creates a session at run start.
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset returns the session to run start and invalidates pending events.
func (s *Session) Reset() {
	s.Elapsed = 0
	s.Message = ""
	s.Timer = formatTimer(0)
	s.Ended = false
	s.Outcome = core.OutcomeNone
	s.Cause = ""
	s.LastZone = noZone
	s.Planted = false
	s.GoalStage = 0
	s.events.clear()
}

// Tick advances the clock by dt seconds, reports a zone change and returns
// the goal events that became due. Nothing happens once the run has ended.
func (s *Session) Tick(dt float64, zone string) []stageEvent {
	if s.Ended {
		return nil
	}
	s.Elapsed += dt
	s.Timer = formatTimer(s.Elapsed)
	if zone != s.LastZone {
		s.LastZone = zone
		s.Message = "You are in: " + zone
	}
	return s.events.due(s.Elapsed)
}

// Say replaces the status message while the run is active.
func (s *Session) Say(msg string) {
	if s.Ended {
		return
	}
	s.Message = msg
}

// End finishes the run. Only the first call has any effect.
func (s *Session) End(outcome core.Outcome, msg string) {
	if s.Ended {
		return
	}
	s.Ended = true
	s.Outcome = outcome
	s.Message = msg
	s.Cause = msg
}

// Schedule queues a goal stage after delay seconds.
func (s *Session) Schedule(delay float64, stage int) {
	s.events.add(s.Elapsed+delay, stage)
}

// Pending returns the number of queued goal events.
func (s *Session) Pending() int {
	return s.events.pending()
}

func formatTimer(elapsed float64) string {
	return fmt.Sprintf("Time: %.1f", elapsed)
}
