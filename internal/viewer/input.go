package viewer

import (
	"mazepath/internal/grid"

	"github.com/gdamore/tcell/v2"
)

// Action is a viewer command decoded from a key press.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveUp
	ActionMoveRight
	ActionMoveDown
	ActionMoveLeft
	ActionSetStart
	ActionSetEnd
	ActionSolve
	ActionRegenerate
	ActionQuit
)

// keyToAction maps a tcell key event to an Action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveUp
	case tcell.KeyDown:
		return ActionMoveDown
	case tcell.KeyRight:
		return ActionMoveRight
	case tcell.KeyLeft:
		return ActionMoveLeft
	case tcell.KeyEnter:
		return ActionSolve
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k', 'K':
		return ActionMoveUp
	case 'j', 'J':
		return ActionMoveDown
	case 'l', 'L':
		return ActionMoveRight
	case 'h', 'H':
		return ActionMoveLeft
	case 's', 'S':
		return ActionSetStart
	case 'e', 'E':
		return ActionSetEnd
	case 'r', 'R':
		return ActionRegenerate
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDirection converts a movement action to a grid direction.
func actionToDirection(a Action) (grid.Direction, bool) {
	switch a {
	case ActionMoveUp:
		return grid.Up, true
	case ActionMoveRight:
		return grid.Right, true
	case ActionMoveDown:
		return grid.Down, true
	case ActionMoveLeft:
		return grid.Left, true
	}
	return 0, false
}
