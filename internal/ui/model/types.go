// Package model contains the bubbletea model of the table screen.
package model

import (
	"context"

	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
	"github.com/palemoky/go-fish/internal/game/layout"
	"github.com/palemoky/go-fish/internal/protocol"
	"github.com/palemoky/go-fish/internal/sound"
)

// --- Collaborators ---

// Feed is the upstream event connection.
type Feed interface {
	Connect(ctx context.Context) error
	Send(msg *protocol.Message) error
	Close()
}

// CuePlayer plays sound cues.
type CuePlayer interface {
	Play(cue sound.Cue)
}

// SnapshotSaver persists table snapshots.
type SnapshotSaver interface {
	Save(ctx context.Context, tableID string, snap *protocol.TableSnapshot) error
	Delete(ctx context.Context, tableID string) error
}

// BookRecorder counts completed books per player.
type BookRecorder interface {
	Record(ctx context.Context, tableID, playerID string) (int, error)
	Reset(ctx context.Context, tableID string) error
}

// --- Tea Messages ---

// TickMsg drives the orchestrator poll and the animation step.
type TickMsg struct{}

// FeedMsg wraps an event received from the feed.
type FeedMsg struct {
	Msg *protocol.Message
}

// BookMsg reports a completed book.
type BookMsg struct {
	Owner string
	Rank  card.Rank
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates a connection error.
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectingMsg indicates reconnection in progress.
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg indicates successful reconnection.
type ReconnectSuccessMsg struct{}

// FeedClosedMsg indicates the feed gave up reconnecting.
type FeedClosedMsg struct{}

// SavedMsg reports the result of a snapshot save.
type SavedMsg struct {
	Err error
}

// ClearedMsg reports that the stored state of a finished round was dropped.
type ClearedMsg struct {
	Err error
}

// TalliedMsg reports a player's new book total.
type TalliedMsg struct {
	PlayerID string
	Books    int
	Err      error
}

// eventMsg carries a message forwarded from a background goroutine.
type eventMsg struct {
	inner any
}

// --- View access ---

// View is what the renderer reads from the model.
type View interface {
	Width() int
	Height() int
	Snapshot() protocol.TableSnapshot
	Cards() []card.Card
	Position(id card.ID) (geometry.Vec2, bool)
	Mode() layout.Mode
	Status() string
	Error() string
	HelpView() string
}
