package input

import (
	"fmt"
	"sort"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/engine/scene"
)

// KeyMap binds keycodes to scene commands.
type KeyMap map[sdl.Keycode]scene.Command

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		sdl.K_ESCAPE: scene.CommandQuit,

		sdl.K_EQUALS:   scene.CommandSpeedUp,
		sdl.K_KP_PLUS:  scene.CommandSpeedUp,
		sdl.K_MINUS:    scene.CommandSpeedDown,
		sdl.K_KP_MINUS: scene.CommandSpeedDown,
		sdl.K_r:        scene.CommandCycleRotation,
		sdl.K_SPACE:    scene.CommandToggleRotation,

		// Object
		sdl.K_RIGHT:    scene.CommandObjectRight,
		sdl.K_LEFT:     scene.CommandObjectLeft,
		sdl.K_PAGEUP:   scene.CommandObjectUp,
		sdl.K_PAGEDOWN: scene.CommandObjectDown,
		sdl.K_UP:       scene.CommandObjectForward,
		sdl.K_DOWN:     scene.CommandObjectBackward,

		// Camera
		sdl.K_d:    scene.CommandCameraRight,
		sdl.K_a:    scene.CommandCameraLeft,
		sdl.K_HOME: scene.CommandCameraUp,
		sdl.K_END:  scene.CommandCameraDown,
		sdl.K_w:    scene.CommandCameraForward,
		sdl.K_s:    scene.CommandCameraBackward,

		sdl.K_t: scene.CommandToggleTexture,
		sdl.K_l: scene.CommandToggleLight,
		sdl.K_1: scene.CommandCycleRed,
		sdl.K_2: scene.CommandCycleGreen,
		sdl.K_3: scene.CommandCycleBlue,
		sdl.K_p: scene.CommandTogglePrimitive,
		sdl.K_c: scene.CommandRecenter,
	}
}

// Bind applies overrides given as command name -> SDL key name, e.g.
// {"quit": "Q"}. An override replaces every default key of that command.
func (m KeyMap) Bind(overrides map[string]string) error {
	// Sorted so errors are reported deterministically
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd, ok := scene.ParseCommand(name)
		if !ok {
			return fmt.Errorf("unknown command %q", name)
		}
		key := overrides[name]
		code := sdl.GetKeyFromName(key)
		if code == sdl.K_UNKNOWN {
			return fmt.Errorf("command %s: unknown key %q", name, key)
		}

		for k, bound := range m {
			if bound == cmd {
				delete(m, k)
			}
		}
		m[code] = cmd
	}
	return nil
}

// Lookup returns the command bound to a keycode.
func (m KeyMap) Lookup(key sdl.Keycode) (scene.Command, bool) {
	cmd, ok := m[key]
	return cmd, ok
}
