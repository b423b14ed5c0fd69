package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic layouts
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeSuccess    Outcome = "success"
	OutcomeEvaporated Outcome = "evaporated"
	OutcomeCrushed    Outcome = "crushed"
	OutcomeCaught     Outcome = "caught"
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Elapsed  float64 // Seconds since run start
	Message  string  // Current status message
	Zone     string  // Zone the player is currently in
	Outcome  Outcome // Why the run ended (empty while running)
	GameOver bool    // Whether the run has ended
	Paused   bool    // Whether the game is paused
}

// Won reports whether the run ended by reaching the goal.
func (s GameState) Won() bool {
	return s.GameOver && s.Outcome == OutcomeSuccess
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Restarted is true when the tick performed a restart instead of a
	// simulation step.
	Restarted bool
}
