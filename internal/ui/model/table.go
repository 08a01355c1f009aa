package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/anim"
	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/card"
	"github.com/palemoky/go-fish/internal/game/geometry"
	"github.com/palemoky/go-fish/internal/game/hand"
	"github.com/palemoky/go-fish/internal/game/layout"
	"github.com/palemoky/go-fish/internal/game/table"
	"github.com/palemoky/go-fish/internal/protocol"
	"github.com/palemoky/go-fish/internal/sound"
)

const (
	dealSize       = 5
	defaultTick    = 50 * time.Millisecond
	ioTimeout      = 2 * time.Second
	connectTimeout = 10 * time.Second
	eventBuffer    = 64
)

// Deps are the collaborators of the table screen. Feed, Sound, Store and
// Tally are optional; leave them nil (not a typed nil pointer) to disable.
type Deps struct {
	Table   *table.Table
	Board   *anim.Board
	Display *TermDisplay
	Feed    Feed
	Sound   CuePlayer
	Store   SnapshotSaver
	Tally   BookRecorder
	Tick    time.Duration
	Log     logrus.FieldLogger
}

// TableModel is the bubbletea model of the table screen.
type TableModel struct {
	table   *table.Table
	board   *anim.Board
	display *TermDisplay
	feed    Feed
	sounds  CuePlayer
	store   SnapshotSaver
	tally   BookRecorder
	log     logrus.FieldLogger

	keys KeyMap
	help help.Model

	events   chan eventMsg
	interval time.Duration

	// demo dealing
	deck         card.Deck
	remoteValues []card.Value

	width  int
	height int
	status string
	err    string

	// View renderer (injected to break circular import)
	viewRenderer func(View) string
}

// NewTableModel creates the model and subscribes to book events.
func NewTableModel(deps Deps) *TableModel {
	log := deps.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if deps.Board == nil {
		deps.Board = anim.NewBoard(geometry.Vec2{}, 0)
	}
	if deps.Display == nil {
		deps.Display = &TermDisplay{}
	}
	interval := deps.Tick
	if interval <= 0 {
		interval = defaultTick
	}

	deck := card.NewDeck()
	deck.Shuffle()

	m := &TableModel{
		table:    deps.Table,
		board:    deps.Board,
		display:  deps.Display,
		feed:     deps.Feed,
		sounds:   deps.Sound,
		store:    deps.Store,
		tally:    deps.Tally,
		log:      log.WithField("component", "ui"),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		events:   make(chan eventMsg, eventBuffer),
		interval: interval,
		deck:     deck,
	}

	m.table.OnBook(func(owner string, b *hand.Book) {
		m.Forward(BookMsg{Owner: owner, Rank: b.Rank})
	})
	// card ids restart after Reset and Restore
	m.table.OnReset(m.board.Clear)
	return m
}

// SetViewRenderer injects the renderer.
func (m *TableModel) SetViewRenderer(fn func(View) string) {
	m.viewRenderer = fn
}

// Forward hands a message from another goroutine to the update loop. It
// never blocks; when the buffer is full the message is dropped.
func (m *TableModel) Forward(msg tea.Msg) {
	select {
	case m.events <- eventMsg{inner: msg}:
	default:
		m.log.WithField("msg", fmt.Sprintf("%T", msg)).Warn("Dropped UI event, buffer full")
	}
}

func (m *TableModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick(), m.listen()}
	if m.feed != nil {
		cmds = append(cmds, m.connect())
	}
	return tea.Batch(cmds...)
}

func (m *TableModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return TickMsg{} })
}

func (m *TableModel) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *TableModel) connect() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := m.feed.Connect(ctx); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// Update handles tea messages.
func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		_, cmd := m.Update(msg.inner)
		return m, tea.Batch(cmd, m.listen())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.display.SetSize(msg.Width, max(msg.Height-ChromeLines, 1))

	case TickMsg:
		if mode, changed := m.table.Tick(); changed {
			m.status = "layout: " + mode.String()
		}
		m.board.Step(m.interval)
		return m, m.tick()

	case FeedMsg:
		m.applyEvent(msg.Msg)

	case BookMsg:
		return m, m.onBook(msg)

	case ConnectedMsg:
		m.status = "feed connected"

	case ConnectionErrorMsg:
		m.err = fmt.Sprintf("无法连接到事件流: %v", msg.Err)

	case ReconnectingMsg:
		m.status = fmt.Sprintf("🔄 正在重连 (%d/%d)...", msg.Attempt, msg.MaxTries)

	case ReconnectSuccessMsg:
		m.status = "✅ 重连成功！"

	case FeedClosedMsg:
		m.err = "事件流已断开"

	case SavedMsg:
		if msg.Err != nil {
			m.err = fmt.Sprintf("保存失败: %v", msg.Err)
		}

	case ClearedMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("Failed to clear stored round")
		}

	case TalliedMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("Failed to record book")
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

// applyEvent runs one feed event; failures are shown and reported upstream.
func (m *TableModel) applyEvent(msg *protocol.Message) {
	if err := m.table.Apply(msg); err != nil {
		m.err = err.Error()
		if m.feed != nil {
			if sendErr := m.feed.Send(protocol.NewErrorMessageWithText(apperrors.Code(err), err.Error())); sendErr != nil {
				m.log.WithError(sendErr).Warn("Failed to report event error")
			}
		}
		return
	}

	m.err = ""
	switch msg.Type {
	case protocol.MsgDeal, protocol.MsgDealHidden:
		m.play(sound.CueDeal)
	case protocol.MsgTransfer:
		m.play(sound.CueTransfer)
	}
}

func (m *TableModel) onBook(msg BookMsg) tea.Cmd {
	m.play(sound.CueBook)
	m.status = fmt.Sprintf("%s completed a book of %s", m.playerName(msg.Owner), msg.Rank)

	var cmds []tea.Cmd
	if m.tally != nil {
		tableID, owner := m.table.ID(), msg.Owner
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
			defer cancel()
			n, err := m.tally.Record(ctx, tableID, owner)
			return TalliedMsg{PlayerID: owner, Books: n, Err: err}
		})
	}
	if cmd := m.save(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// save snapshots the table now and stores it in the background.
func (m *TableModel) save() tea.Cmd {
	if m.store == nil {
		return nil
	}
	snap := m.table.Snapshot()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		return SavedMsg{Err: m.store.Save(ctx, snap.TableID, &snap)}
	}
}

func (m *TableModel) play(cue sound.Cue) {
	if m.sounds != nil {
		m.sounds.Play(cue)
	}
}

func (m *TableModel) playerName(id string) string {
	for _, h := range m.table.Snapshot().Hands {
		if h.PlayerID == id {
			return h.Name
		}
	}
	return id
}

func (m *TableModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if cmd := m.save(); cmd != nil {
			return tea.Sequence(cmd, tea.Quit)
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Deal):
		m.deal()
	case key.Matches(msg, m.keys.Fish):
		m.fish()
	case key.Matches(msg, m.keys.Books):
		m.claimBooks()
	case key.Matches(msg, m.keys.Reveal):
		m.reveal()
	case key.Matches(msg, m.keys.Hide):
		m.report(m.table.Hide(protocol.SeatRemote))
	case key.Matches(msg, m.keys.Reset):
		return m.reset()
	case key.Matches(msg, m.keys.Save):
		if cmd := m.save(); cmd != nil {
			m.status = "snapshot saved"
			return cmd
		}
	}
	return nil
}

// deal gives each side dealSize cards from the demo deck; the remote side
// gets them face down and their values are kept for reveal.
func (m *TableModel) deal() {
	if len(m.deck) == 0 {
		m.status = "deck is empty"
		return
	}
	local := m.deck.Draw(dealSize)
	remote := m.deck.Draw(dealSize)

	if err := m.table.Deal(protocol.SeatLocal, local); err != nil {
		m.report(err)
		return
	}
	if len(remote) > 0 {
		if err := m.table.DealHidden(protocol.SeatRemote, len(remote)); err != nil {
			m.report(err)
			return
		}
		m.remoteValues = append(m.remoteValues, remote...)
	}
	m.play(sound.CueDeal)
	m.status = fmt.Sprintf("dealt %d cards, %d left", len(local)+len(remote), len(m.deck))
}

func (m *TableModel) fish() {
	drawn := m.deck.Draw(1)
	if len(drawn) == 0 {
		m.status = "deck is empty"
		return
	}
	if err := m.table.Deal(protocol.SeatLocal, drawn); err != nil {
		m.report(err)
		return
	}
	m.play(sound.CueDeal)
	m.status = "drew " + drawn[0].String()
}

func (m *TableModel) claimBooks() {
	ranks, err := m.table.CompleteRanks(protocol.SeatLocal)
	if err != nil {
		m.report(err)
		return
	}
	if len(ranks) == 0 {
		m.status = "no complete books"
		return
	}
	for _, r := range ranks {
		if _, err := m.table.ExtractBook(protocol.SeatLocal, r); err != nil {
			m.report(err)
			return
		}
	}
}

// reset clears the table and starts over with a fresh deck. The stored
// snapshot and book tally of the finished round are dropped in the background.
func (m *TableModel) reset() tea.Cmd {
	m.table.Reset()
	m.deck = card.NewDeck()
	m.deck.Shuffle()
	m.remoteValues = nil
	m.err = ""
	m.status = "new round"

	if m.store == nil && m.tally == nil {
		return nil
	}
	tableID := m.table.ID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		var errs []error
		if m.tally != nil {
			errs = append(errs, m.tally.Reset(ctx, tableID))
		}
		if m.store != nil {
			errs = append(errs, m.store.Delete(ctx, tableID))
		}
		return ClearedMsg{Err: errors.Join(errs...)}
	}
}

// reveal writes the known demo values onto the remote hand and turns it up.
func (m *TableModel) reveal() {
	if len(m.remoteValues) > 0 {
		if err := m.table.Assign(protocol.SeatRemote, m.remoteValues); err != nil {
			m.report(err)
			return
		}
	}
	m.report(m.table.Reveal(protocol.SeatRemote))
}

func (m *TableModel) report(err error) {
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
}

// View renders the model through the injected renderer.
func (m *TableModel) View() string {
	if m.viewRenderer == nil {
		return ""
	}
	return m.viewRenderer(m)
}

// --- View interface implementation ---

func (m *TableModel) Width() int                       { return m.width }
func (m *TableModel) Height() int                      { return m.height }
func (m *TableModel) Snapshot() protocol.TableSnapshot { return m.table.Snapshot() }
func (m *TableModel) Cards() []card.Card               { return m.table.Cards() }
func (m *TableModel) Mode() layout.Mode                { return m.table.Mode() }
func (m *TableModel) Status() string                   { return m.status }
func (m *TableModel) Error() string                    { return m.err }
func (m *TableModel) HelpView() string                 { return m.help.View(m.keys) }

func (m *TableModel) Position(id card.ID) (geometry.Vec2, bool) {
	return m.board.Position(id)
}
