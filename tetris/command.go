package tetris

import (
	"fmt"
	"strings"
)

// Command is a player input. The set is closed; Engine.Command panics on
// any other value.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	RotateCW
	RotateCCW
	SoftDrop
	HardDrop
	Hold
	TogglePause
	Restart

	commandCount
)

var commandNames = [commandCount]string{
	MoveLeft:    "MoveLeft",
	MoveRight:   "MoveRight",
	RotateCW:    "RotateCW",
	RotateCCW:   "RotateCCW",
	SoftDrop:    "SoftDrop",
	HardDrop:    "HardDrop",
	Hold:        "Hold",
	TogglePause: "TogglePause",
	Restart:     "Restart",
}

func (c Command) String() string {
	if c < commandCount {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	return c < commandCount
}

// Gameplay reports whether c only applies while the game is running.
func (c Command) Gameplay() bool {
	return c < TogglePause
}

// ParseCommand looks a command up by name, ignoring case.
func ParseCommand(s string) (Command, error) {
	for c, name := range commandNames {
		if strings.EqualFold(name, s) {
			return Command(c), nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}
