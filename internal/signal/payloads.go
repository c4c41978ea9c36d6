package signal

import "github.com/pinnacle-wm/pinnacle/internal/ids"

// The Kind values and payload shapes below make up the signal catalogue.
// core publishes window-rule, window-focused, tag-active,
// output-connect/disconnect, process-spawned and diagnostic signals; the
// other kinds are defined for subscribers, but nothing in this module
// publishes them.
const (
	KindWindowPointerEnter Kind = "window_pointer_enter"
	KindWindowPointerLeave Kind = "window_pointer_leave"
	KindOutputPointerEnter Kind = "output_pointer_enter"
	KindOutputPointerLeave Kind = "output_pointer_leave"

	KindWindowRule      Kind = "window_rule" // gate: new unmapped window needs rules
	KindWindowFocused   Kind = "window_focused"
	KindWindowUnfocused Kind = "window_unfocused"
	KindWindowTitle     Kind = "window_title_changed"

	KindOutputConnect    Kind = "output_connect"
	KindOutputDisconnect Kind = "output_disconnect"
	KindOutputResize     Kind = "output_resize"
	KindOutputFocused    Kind = "output_focused"

	KindTagActive Kind = "tag_active_changed"

	KindLayout Kind = "layout" // layout requester: area/windows changed, response expected

	KindInputDeviceAdded Kind = "input_device_added"

	KindProcessSpawned Kind = "process_spawned" // supplemented from process.v1
	KindProcessExited  Kind = "process_exited"

	KindDiagnostic Kind = "diagnostic" // mirrors logger output for remote status views
)

// WindowPointerPayload carries a window ID for window-pointer-enter/leave.
type WindowPointerPayload struct {
	Window ids.WindowID
}

// OutputPointerPayload carries an output name for output-pointer-enter/leave.
type OutputPointerPayload struct {
	Output string
}

// WindowRulePayload is delivered to window-rule stream subscribers when a
// window becomes gated; RequestID must be echoed back in
// the client's Finished reply.
type WindowRulePayload struct {
	Window    ids.WindowID
	RequestID ids.RequestID
}

// WindowFocusPayload accompanies window-focused/unfocused.
type WindowFocusPayload struct {
	Window ids.WindowID
	Output string
}

// WindowTitlePayload accompanies window-title-changed.
type WindowTitlePayload struct {
	Window ids.WindowID
	Title  string
}

// OutputConnectPayload accompanies output-connect/disconnect.
type OutputConnectPayload struct {
	Output string
}

// OutputResizePayload accompanies output-resize.
type OutputResizePayload struct {
	Output        string
	Width, Height int32
}

// OutputFocusPayload accompanies output-focused.
type OutputFocusPayload struct {
	Output string
}

// TagActivePayload accompanies tag-active-changed.
type TagActivePayload struct {
	Tag    ids.TagID
	Active bool
}

// LayoutPayload is delivered to the external layout requester when an
// output's window set or area changes; RequestID correlates the eventual
// response.
type LayoutPayload struct {
	RequestID ids.RequestID
	Output    string
	WindowIDs []ids.WindowID
}

// InputDeviceAddedPayload accompanies input-device-added.
type InputDeviceAddedPayload struct {
	Name     string
	IsKeyboard bool
	IsPointer  bool
}

// ProcessSpawnedPayload and ProcessExitedPayload supplement the core spec
// with the process.v1 lifecycle signal from
// original_source/tests/integration/api/process.rs.
type ProcessSpawnedPayload struct {
	PID     int
	Command []string
}

// ProcessExitedPayload carries the same shape libc/exec reports: an exit
// code when the process ran to completion, or a signal number when it was
// killed by one.
type ProcessExitedPayload struct {
	PID      int
	ExitCode *int32
	Signal   *int32
}

// DiagnosticPayload mirrors one logged line onto the signal bus, for a
// dashboard or other diagnostics subscriber.
type DiagnosticPayload struct {
	Level   string
	Message string
}
