package browser

import (
	"github.com/rivo/tview"
)

// App is the part of *tview.Application the browser drives. Tests substitute it.
type App interface {
	Run() error
	QueueUpdateDraw(f func())
	SetFocus(p tview.Primitive)
	SetRoot(root tview.Primitive, fullscreen bool)
	Stop()
	EnableMouse(bool)
}

type AppOption func(a *appProxy)

// NewApp wraps app. Options replace individual methods; with a nil app every
// method not replaced is a no-op.
func NewApp(app *tview.Application, o ...AppOption) App {
	a := &appProxy{
		queueUpdateDraw: func(f func()) { f() },
		setFocus:        func(tview.Primitive) {},
		setRoot:         func(tview.Primitive, bool) {},
		enableMouse:     func(bool) {},
		run:             func() error { return nil },
		stop:            func() {},
	}
	if app != nil {
		a.queueUpdateDraw = func(f func()) { app.QueueUpdateDraw(f) }
		a.setFocus = func(p tview.Primitive) { app.SetFocus(p) }
		a.setRoot = func(root tview.Primitive, fullscreen bool) { app.SetRoot(root, fullscreen) }
		a.enableMouse = func(enable bool) { app.EnableMouse(enable) }
		a.run = app.Run
		a.stop = app.Stop
	}
	for _, opt := range o {
		opt(a)
	}
	return a
}

func WithQueueUpdateDraw(queueUpdateDraw func(f func())) AppOption {
	return func(a *appProxy) {
		a.queueUpdateDraw = queueUpdateDraw
	}
}

func WithSetFocus(setFocus func(p tview.Primitive)) AppOption {
	return func(a *appProxy) {
		a.setFocus = setFocus
	}
}

func WithRun(run func() error) AppOption {
	return func(a *appProxy) {
		a.run = run
	}
}

func WithStop(stop func()) AppOption {
	return func(a *appProxy) {
		a.stop = stop
	}
}

var _ App = (*appProxy)(nil)

type appProxy struct {
	queueUpdateDraw func(func())
	setFocus        func(tview.Primitive)
	setRoot         func(tview.Primitive, bool)
	enableMouse     func(bool)
	run             func() error
	stop            func()
}

func (a *appProxy) Run() error                                    { return a.run() }
func (a *appProxy) QueueUpdateDraw(f func())                      { a.queueUpdateDraw(f) }
func (a *appProxy) SetFocus(p tview.Primitive)                    { a.setFocus(p) }
func (a *appProxy) SetRoot(root tview.Primitive, fullscreen bool) { a.setRoot(root, fullscreen) }
func (a *appProxy) Stop()                                         { a.stop() }
func (a *appProxy) EnableMouse(enable bool)                       { a.enableMouse(enable) }
