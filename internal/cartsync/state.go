package cartsync

import (
	"fmt"

	"github.com/mobishop/mobishop-backend/internal/cart"
)

// State tracks whether a session's cart is mirrored to the shopper's
// server-side cart.
type State int

const (
	Anonymous State = iota
	Syncing
	Synced
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Syncing:
		return "syncing"
	case Synced:
		return "synced"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "anonymous":
		*s = Anonymous
	case "syncing":
		*s = Syncing
	case "synced":
		*s = Synced
	default:
		return fmt.Errorf("unknown cart sync state %q", text)
	}
	return nil
}

// Sync operation names, also used as metric labels.
const (
	OpFetch  = "fetch"
	OpSave   = "save"
	OpMarker = "marker"
)

// SyncError describes a failed call to the server cart or marker store.
type SyncError struct {
	Op    string
	Email string
	Err   error
}

func (e *SyncError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("cart sync %s for %s: %v", e.Op, e.Email, e.Err)
}

func (e *SyncError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SyncResult is returned by every session operation. Cart is always the
// local cart after the operation, whether or not the remote write worked.
// LocalErr reports a failed write of the shopper-side copy; it does not
// affect OK.
type SyncResult struct {
	Cart     cart.Cart
	Err      *SyncError
	LocalErr error
}

func (r SyncResult) OK() bool {
	return r.Err == nil
}
