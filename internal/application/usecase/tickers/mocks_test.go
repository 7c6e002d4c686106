package tickers

import (
	"context"
	"sync"

	"github.com/ducksquaddd/discord-price-tickers/internal/application/port"
	"github.com/ducksquaddd/discord-price-tickers/internal/domain"
)

type mockSession struct {
	mu sync.Mutex

	name  string
	ready bool

	openErr     error
	presenceErr error
	nickErr     error
	setNickErr  error

	nick     string
	status   port.Status
	activity string

	opens    int
	closes   int
	renames  int
	presence int
}

func (m *mockSession) Name() string { return m.name }

func (m *mockSession) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opens++
	if m.openErr != nil {
		return m.openErr
	}
	m.ready = true
	return nil
}

func (m *mockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

func (m *mockSession) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

func (m *mockSession) setReady(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = v
}

func (m *mockSession) UpdatePresence(status port.Status, activity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presence++
	if m.presenceErr != nil {
		return m.presenceErr
	}
	m.status = status
	m.activity = activity
	return nil
}

func (m *mockSession) Nickname(guildID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nickErr != nil {
		return "", m.nickErr
	}
	return m.nick, nil
}

func (m *mockSession) SetNickname(guildID, nick string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setNickErr != nil {
		return m.setNickErr
	}
	m.renames++
	m.nick = nick
	return nil
}

// sessionView is a lock-free copy of a mockSession's observable state.
type sessionView struct {
	name     string
	ready    bool
	nick     string
	status   port.Status
	activity string
	opens    int
	closes   int
	renames  int
	presence int
}

func (m *mockSession) snapshot() sessionView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sessionView{
		name:     m.name,
		ready:    m.ready,
		nick:     m.nick,
		status:   m.status,
		activity: m.activity,
		opens:    m.opens,
		closes:   m.closes,
		renames:  m.renames,
		presence: m.presence,
	}
}

type mockSource struct {
	mu      sync.Mutex
	snap    domain.Snapshot
	err     error
	fetches int
}

func (m *mockSource) Fetch(ctx context.Context) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockSource) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockSource) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		domain.AssetCosmos:   {ID: domain.AssetCosmos, Label: "Atom", Price: 9.50, Change24h: 1.2},
		domain.AssetBitcoin:  {ID: domain.AssetBitcoin, Label: "Bitcoin", Price: 65000, Change24h: -0.5},
		domain.AssetEthereum: {ID: domain.AssetEthereum, Label: "Ethereum", Price: 3200, Change24h: 0.3},
	}
}

func testEntries(guildID string, ready bool) ([]Entry, []*mockSession) {
	sessions := []*mockSession{
		{name: "Atom", ready: ready},
		{name: "Bitcoin", ready: ready},
		{name: "Ethereum", ready: ready},
	}
	entries := make([]Entry, 0, len(sessions))
	for i, t := range domain.Tracked {
		entries = append(entries, Entry{
			Session: sessions[i],
			AssetID: t.ID,
			Label:   t.Label,
			GuildID: guildID,
		})
	}
	return entries, sessions
}
