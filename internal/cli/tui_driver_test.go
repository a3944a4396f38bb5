package cli

import (
	"testing"

	"github.com/mapwise/capmap/internal/teatest"
)

// TestDriver wraps teatest.Driver with board-specific inspection methods.
type TestDriver struct {
	*teatest.Driver
}

// NewBoardDriver constructs the appModel for a map, sets terminal size,
// and drains Init() (which loads board data synchronously via in-memory
// SQLite).
func NewBoardDriver(t *testing.T, app *App, mapID string) *TestDriver {
	t.Helper()

	m := newAppModel(app, mapID)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// Board returns the root board view for direct state inspection.
func (d *TestDriver) Board() *boardView {
	return d.appModel().viewStack[0].(*boardView)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// Status returns the transient status line.
func (d *TestDriver) Status() string {
	return d.appModel().status
}

// IsQuitting reports whether the model is shutting down.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}
