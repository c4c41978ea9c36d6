package cmd

import (
	"encoding/json"
	"sync"
	"time"

	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/pinnacle-wm/pinnacle/internal/api"
	"github.com/pinnacle-wm/pinnacle/internal/core"
	"github.com/pinnacle-wm/pinnacle/internal/ids"
	"github.com/pinnacle-wm/pinnacle/internal/output"
	"github.com/pinnacle-wm/pinnacle/internal/window"
)

// newHandler adapts core.State's command surface to the
// rpcserver wire protocol. Every request is decoded into a small local
// struct, dispatched to the matching State method, and the result (or
// error) is re-encoded for the response envelope. frameInterval is the
// configured backend frame cadence, reported back via
// pinnacle.backend_info. The rpcserver calls the handler from one
// goroutine per connection, so the handler holds a lock for the whole of
// each request and State only ever sees one request at a time.
func newHandler(s *core.State, frameInterval time.Duration) func(api.Kind, json.RawMessage) (any, error) {
	var mu sync.Mutex
	return func(kind api.Kind, payload json.RawMessage) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		switch kind {
		case "state.snapshot":
			return snapshotOf(s), nil

		case "pinnacle.backend_info":
			return api.BackendInfo{
				Name:          s.PinnacleBackendName(),
				FrameInterval: durationpb.New(frameInterval),
			}, nil

		case "window.set_tags":
			var req struct {
				Window ids.WindowID
				Tags   []ids.TagID
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.WindowSetTags(req.Window, req.Tags)

		case "window.set_floating":
			var req struct {
				Window ids.WindowID
				Op     window.SetOrToggle
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.WindowSetFloating(req.Window, req.Op)

		case "window.set_maximized":
			var req struct {
				Window ids.WindowID
				Op     window.SetOrToggle
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.WindowSetMaximized(req.Window, req.Op)

		case "window.set_fullscreen":
			var req struct {
				Window ids.WindowID
				Op     window.SetOrToggle
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.WindowSetFullscreen(req.Window, req.Op)

		case "window.focus":
			var req struct{ Window ids.WindowID }
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.WindowFocus(req.Window)

		case "window.close":
			var req struct{ Window ids.WindowID }
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.WindowClose(req.Window)

		case "tag.add":
			var req struct {
				Output string
				Names  []string
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return s.TagAdd(req.Output, req.Names)

		case "tag.remove":
			var req struct{ Tag ids.TagID }
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.TagRemove(req.Tag)

		case "tag.set_active":
			var req struct {
				Tag    ids.TagID
				Active bool
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.TagSetActive(req.Tag, req.Active)

		case "tag.switch_to":
			var req struct{ Tag ids.TagID }
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.TagSwitchTo(req.Tag)

		case "output.set_scale":
			var req struct {
				Output string
				Scale  float64
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.OutputSetScale(req.Output, req.Scale)

		case "output.set_transform":
			var req struct {
				Output    string
				Transform output.Transform
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.OutputSetTransform(req.Output, req.Transform)

		case "output.set_enabled":
			var req struct {
				Output  string
				Enabled bool
			}
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.OutputSetEnabled(req.Output, req.Enabled)

		case "input.set_repeat_rate":
			var req struct{ RateMs, DelayMs int32 }
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.InputSetRepeatRate(req.RateMs, req.DelayMs)

		case "process.spawn":
			var req struct{ Command string }
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return s.ProcessSpawn(req.Command)

		case "process.shutdown":
			var req struct{ PID int }
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			return nil, s.ProcessShutdown(req.PID)

		case "pinnacle.quit":
			s.PinnacleQuit()
			return nil, nil

		default:
			return nil, nil
		}
	}
}

type snapshot struct {
	Outputs []outputSnapshot
	Windows []windowSnapshot
}

type outputSnapshot struct {
	Name           string
	ActiveTags     []string
	FocusedWindows int
}

type windowSnapshot struct {
	ID     ids.WindowID
	AppID  string
	Mode   string
	Tags   []ids.TagID
	Output string
}

func snapshotOf(s *core.State) snapshot {
	var snap snapshot
	for _, o := range s.AllOutputs() {
		names := make([]string, 0, len(o.Tags))
		for _, t := range s.Tags().ActiveTags(o) {
			names = append(names, t.Name)
		}
		snap.Outputs = append(snap.Outputs, outputSnapshot{
			Name:           o.Name,
			ActiveTags:     names,
			FocusedWindows: len(o.FocusStack),
		})
	}
	for _, id := range s.AllWindows() {
		w := s.Window(id)
		if w == nil {
			continue
		}
		appID := ""
		if w.AppID != nil {
			appID = *w.AppID
		}
		snap.Windows = append(snap.Windows, windowSnapshot{
			ID:     w.ID,
			AppID:  appID,
			Mode:   w.Mode().String(),
			Tags:   w.Tags,
			Output: w.OutputName,
		})
	}
	return snap
}
