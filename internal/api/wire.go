// Package api holds the Go-native shapes that stand in for
// protobuf-generated wire messages (a real .proto-defined RPC schema is
// treated as an external collaborator here). These are plain structs, not
// proto.Message implementations — hand-writing a ProtoReflect() without
// protoc would be unreliable, so only the well-known timestamp/duration
// types are used where the shape genuinely calls for them.
package api

import (
	"google.golang.org/protobuf/types/known/durationpb"
)

// Point is a logical-space coordinate, mirroring the wire Point message.
type Point struct {
	X, Y int32
}

// Size is a logical-space dimension, mirroring the wire Size message.
type Size struct {
	Width, Height int32
}

// SetOrToggle mirrors the wire enum of the same name used throughout the
// Window command group.
type SetOrToggle int32

const (
	SetOrToggleUnspecified SetOrToggle = iota
	SetOrToggleSet
	SetOrToggleUnset
	SetOrToggleToggle
)

// BackendInfo answers Pinnacle.BackendInfo: which backend is running and
// at what frame cadence, using the well-known Duration type since this is
// exactly the field shape the real wire schema would use.
type BackendInfo struct {
	Name          string
	FrameInterval *durationpb.Duration
}

// Kind tags which concrete payload a Message wraps — the Go-native
// stand-in for the oneof a real generated wire message would use.
type Kind string

// Message is the envelope every request/response on the local RPC
// transport is wrapped in (internal/rpcserver), following a plain
// message-kind-plus-payload pattern.
type Message struct {
	Kind    Kind
	ReqID   uint64 // correlates a response to its request over one connection
	Payload any
	Err     *ErrorPayload
}

// ErrorPayload is the wire shape for a failed command, carrying the same
// kind taxonomy as internal/command.Error so clients can branch on it
// without depending on this module's internal packages.
type ErrorPayload struct {
	Kind    string
	Message string
}
