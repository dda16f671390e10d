package game

// Phase is the engine's top-level state.
type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MessageColor tags a HUD message so renderers can pick a colour.
type MessageColor int

const (
	MessageInfo MessageColor = iota
	MessageHealth
	MessageRapidFire
)

// SessionState holds every per-game counter. The engine owns exactly one
// and is the only writer.
type SessionState struct {
	Tick      int
	Phase     Phase
	Score     int
	HighScore int
	Health    int

	Combo      int
	ComboTimer int // ticks until the combo lapses

	RapidFire      bool
	RapidFireTicks int
	FireHeld       bool

	Message      string
	MessageColor MessageColor
	MessageTimer int

	Moving   Direction // held movement keys
	PointerX float64
	PointerY float64
}

// halted reports whether ticks, spawns and fire commands are suspended.
func (s *SessionState) halted() bool { return s.Phase != PhaseRunning }

func (s *SessionState) showMessage(text string, col MessageColor, ticks int) {
	s.Message = text
	s.MessageColor = col
	s.MessageTimer = ticks
}
