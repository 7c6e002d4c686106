package port

import "errors"

// Status is the externally visible presence status of a session.
type Status string

const (
	StatusOnline       Status = "online"
	StatusDoNotDisturb Status = "dnd"
)

// Sentinel errors the usecase layer branches on for logging. Adapters wrap
// platform-specific failures with these.
var (
	ErrGuildNotFound    = errors.New("guild not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// PresenceSession is one long-lived connection to the presence platform.
// Ready flips false->true exactly once, on the session's ready signal, and
// never reverts even if the underlying connection drops.
type PresenceSession interface {
	Name() string
	Open() error
	Close() error
	Ready() bool

	// UpdatePresence sets the session's status and activity text.
	UpdatePresence(status Status, activity string) error

	// Nickname resolves the session's own current display name within a guild.
	// Wraps ErrGuildNotFound when the guild cannot be resolved.
	Nickname(guildID string) (string, error)

	// SetNickname renames the session within a guild. Wraps ErrPermissionDenied
	// when the platform refuses for lack of permission.
	SetNickname(guildID, nick string) error
}
