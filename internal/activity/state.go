package activity

// State is the classified attention state for one activity sample.
type State int

const (
	StateNormal State = iota
	StateFocusing
	StateDistracted
	StateSleeping
	StateAFK
	StateEmergency
	StateGaming
)

// String returns the canonical upper-case name used in persisted records and logs.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "NORMAL"
	case StateFocusing:
		return "FOCUSING"
	case StateDistracted:
		return "DISTRACTED"
	case StateSleeping:
		return "SLEEPING"
	case StateAFK:
		return "AFK"
	case StateEmergency:
		return "EMERGENCY"
	case StateGaming:
		return "GAMING"
	default:
		return "UNKNOWN"
	}
}

// Category maps a state to the activity category tag used for downstream
// tagging and time-series labels. It never drives control flow.
func (s State) Category() string {
	switch s {
	case StateFocusing:
		return "study"
	case StateGaming, StateDistracted:
		return "play"
	case StateSleeping:
		return "sleep"
	default:
		return "neutral"
	}
}

// Feedback returns the live-update feedback message shown to subscribers.
func (s State) Feedback() string {
	switch s {
	case StateFocusing:
		return "Great Focus!"
	case StateSleeping:
		return "Wake Up!"
	case StateDistracted:
		return "Stay Focused!"
	case StateEmergency:
		return "Emergency Detected!"
	case StateGaming:
		return "Back to Work!"
	default:
		return "Keep Going!"
	}
}

// CommandState maps a state onto the fixed downstream command vocabulary.
// GAMING is deliberately collapsed into DISTRACTED; the command consumer has
// no gaming-specific behavior.
func (s State) CommandState() string {
	switch s {
	case StateFocusing:
		return "THINKING"
	case StateSleeping:
		return "SLEEPING"
	case StateDistracted, StateGaming:
		return "DISTRACTED"
	case StateEmergency:
		return "EMERGENCY"
	default:
		return "AWAKE"
	}
}

// Priority returns the downstream command priority (1-10, higher is more urgent).
func (s State) Priority() int {
	switch s {
	case StateEmergency:
		return 10
	case StateGaming:
		return 9
	case StateSleeping:
		return 8
	case StateDistracted:
		return 6
	case StateFocusing:
		return 3
	default:
		return 5
	}
}
