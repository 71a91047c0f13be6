//go:build !raylib

package viewer

import (
	"errors"

	"github.com/pthm-cable/habitat/config"
	"github.com/pthm-cable/habitat/world"
)

// Available reports whether this build can open a window.
const Available = false

// ErrUnavailable is returned by New in builds without the raylib tag.
var ErrUnavailable = errors.New("viewer: built without the raylib tag")

// Viewer is a placeholder in headless builds.
type Viewer struct{}

// New always fails in headless builds.
func New(config.ViewerConfig, int, int) (*Viewer, error) {
	return nil, ErrUnavailable
}

func (v *Viewer) IsViable(*world.Field) bool { return false }
func (v *Viewer) ShowStatus(step int, f *world.Field) {}
func (v *Viewer) Close() {}
