package scene

import "fmt"

// Command is a discrete viewer action, usually bound to a key.
type Command int

const (
	CommandNone Command = iota
	CommandQuit

	// Speed
	CommandSpeedUp
	CommandSpeedDown

	// Object rotation
	CommandCycleRotation
	CommandToggleRotation

	// Object translation
	CommandObjectRight
	CommandObjectLeft
	CommandObjectUp
	CommandObjectDown
	CommandObjectForward
	CommandObjectBackward

	// Camera translation
	CommandCameraRight
	CommandCameraLeft
	CommandCameraUp
	CommandCameraDown
	CommandCameraForward
	CommandCameraBackward

	// Render flags
	CommandToggleTexture
	CommandToggleLight
	CommandCycleRed
	CommandCycleGreen
	CommandCycleBlue
	CommandTogglePrimitive

	CommandRecenter

	commandCount
)

var commandNames = [commandCount]string{
	CommandNone:            "none",
	CommandQuit:            "quit",
	CommandSpeedUp:         "speed_up",
	CommandSpeedDown:       "speed_down",
	CommandCycleRotation:   "cycle_rotation",
	CommandToggleRotation:  "toggle_rotation",
	CommandObjectRight:     "object_right",
	CommandObjectLeft:      "object_left",
	CommandObjectUp:        "object_up",
	CommandObjectDown:      "object_down",
	CommandObjectForward:   "object_forward",
	CommandObjectBackward:  "object_backward",
	CommandCameraRight:     "camera_right",
	CommandCameraLeft:      "camera_left",
	CommandCameraUp:        "camera_up",
	CommandCameraDown:      "camera_down",
	CommandCameraForward:   "camera_forward",
	CommandCameraBackward:  "camera_backward",
	CommandToggleTexture:   "toggle_texture",
	CommandToggleLight:     "toggle_light",
	CommandCycleRed:        "cycle_red",
	CommandCycleGreen:      "cycle_green",
	CommandCycleBlue:       "cycle_blue",
	CommandTogglePrimitive: "toggle_primitive",
	CommandRecenter:        "recenter",
}

// String returns the config name of the command, e.g. "speed_up".
func (c Command) String() string {
	if c < 0 || c >= commandCount {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// ParseCommand looks up a command by its config name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name && Command(c) != CommandNone {
			return Command(c), true
		}
	}
	return CommandNone, false
}

// Commands returns every bindable command.
func Commands() []Command {
	cmds := make([]Command, 0, commandCount-1)
	for c := CommandNone + 1; c < commandCount; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}

// Signal tells the caller of Apply about effects that live outside State.
type Signal int

const (
	SignalNone Signal = iota
	// SignalQuit asks the event loop to stop.
	SignalQuit
	// SignalTogglePrimitive asks the frame composer to switch between
	// filled triangles and wireframe lines.
	SignalTogglePrimitive
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalQuit:
		return "quit"
	case SignalTogglePrimitive:
		return "toggle_primitive"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}
