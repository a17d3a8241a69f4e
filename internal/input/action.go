package input

// Action is a named simulation command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionUnknown
	ActionQuit
	ActionAddPoint
	ActionRemovePoint
	ActionFadeFaster
	ActionFadeSlower
	ActionSkipMore
	ActionSkipFewer
	ActionSpeedUp
	ActionSlowDown
	ActionMoreSpeedChange
	ActionLessSpeedChange
	ActionRaiseMinSpeed
	ActionLowerMinSpeed
	ActionRaiseMaxSpeed
	ActionLowerMaxSpeed
	ActionSave
	ActionLoad
	ActionDefaults
	ActionTogglePlay
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionUnknown:         "unknown",
	ActionQuit:            "quit",
	ActionAddPoint:        "add-point",
	ActionRemovePoint:     "remove-point",
	ActionFadeFaster:      "fade-faster",
	ActionFadeSlower:      "fade-slower",
	ActionSkipMore:        "skip-more",
	ActionSkipFewer:       "skip-fewer",
	ActionSpeedUp:         "speed-up",
	ActionSlowDown:        "slow-down",
	ActionMoreSpeedChange: "more-speed-change",
	ActionLessSpeedChange: "less-speed-change",
	ActionRaiseMinSpeed:   "raise-min-speed",
	ActionLowerMinSpeed:   "lower-min-speed",
	ActionRaiseMaxSpeed:   "raise-max-speed",
	ActionLowerMaxSpeed:   "lower-max-speed",
	ActionSave:            "save",
	ActionLoad:            "load",
	ActionDefaults:        "defaults",
	ActionTogglePlay:      "toggle-play",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

var runeActions = map[rune]Action{
	'q': ActionQuit,
	'Q': ActionQuit,
	'+': ActionAddPoint,
	'=': ActionAddPoint,
	'-': ActionRemovePoint,
	'*': ActionFadeFaster,
	'/': ActionFadeSlower,
	'.': ActionRaiseMinSpeed,
	',': ActionLowerMinSpeed,
	'>': ActionRaiseMaxSpeed,
	'<': ActionLowerMaxSpeed,
	's': ActionSave,
	'l': ActionLoad,
	'd': ActionDefaults,
	' ': ActionTogglePlay,
}

var keyActions = map[Key]Action{
	KeyCtrlC:    ActionQuit,
	KeyUp:       ActionSpeedUp,
	KeyDown:     ActionSlowDown,
	KeyRight:    ActionMoreSpeedChange,
	KeyLeft:     ActionLessSpeedChange,
	KeyPageUp:   ActionSkipMore,
	KeyPageDown: ActionSkipFewer,
}

// ActionFor maps a key event to its action. Unbound keys yield ActionUnknown.
func ActionFor(ev Event) Action {
	if ev.Key == KeyRune {
		if a, ok := runeActions[ev.Rune]; ok {
			return a
		}
		return ActionUnknown
	}
	if a, ok := keyActions[ev.Key]; ok {
		return a
	}
	return ActionUnknown
}
