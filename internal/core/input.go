package core

// Action represents a semantic game action, abstracted from physical key presses
// and sensor samples. The engine only ever sees actions.
type Action int

const (
	ActionNone          Action = iota
	ActionLeft                 // A, H, Left arrow - move one lane left
	ActionRight                // D, L, Right arrow - move one lane right
	ActionFast                 // F - toggle fast mode
	ActionSlow                 // S - toggle slow mode
	ActionNormal               // N - back to normal speed
	ActionConfirm              // Enter - confirm selection in menu
	ActionBack                 // B, Escape - go back
	ActionRestart              // R - restart after game over
	ActionQuit                 // Q, Ctrl+C - exit
	ActionPause                // P - pause/unpause
	ActionMenu                 // M - open the in-game menu
	ActionToggleControl        // C - switch between buttons and sensors
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFast:
		return "Fast"
	case ActionSlow:
		return "Slow"
	case ActionNormal:
		return "Normal"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionMenu:
		return "Menu"
	case ActionToggleControl:
		return "ToggleControl"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two ticks.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
