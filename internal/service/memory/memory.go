// Package memory keeps a bounded per-session conversation log. Sessions are
// created lazily and evicted least-recently-updated first once the global
// cap is exceeded.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/pkg/log"
)

const (
	noConversation  = "No previous conversation"
	summaryMaxChars = 240
)

type session struct {
	entries     []core.MemoryEntry
	lastUpdated time.Time
}

type Stats struct {
	TotalSessions int `json:"totalSessions"`
	TotalMessages int `json:"totalMessages"`
}

type Memory struct {
	cfg *config.MemoryConfig

	mu       sync.Mutex
	sessions map[string]*session
}

func NewMemory(cfg *config.MemoryConfig) *Memory {
	return &Memory{
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
}

// GetSession returns a copy of the last MaxMessagesPerSession entries for
// sessionID. Unknown sessions yield an empty slice, never an error.
func (m *Memory) GetSession(sessionID string) []core.MemoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}

	entries := s.entries
	if max := m.cfg.MaxMessagesPerSession; len(entries) > max {
		entries = entries[len(entries)-max:]
	}

	out := make([]core.MemoryEntry, len(entries))
	copy(out, entries)
	return out
}

// AddMessage appends a turn to the named session, creating it if absent.
// The per-session cap truncates oldest entries; the global cap then evicts
// whole sessions in ascending last-updated order.
func (m *Memory) AddMessage(ctx context.Context, sessionID, role, content string) {
	entry := core.MemoryEntry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{}
		m.sessions[sessionID] = s
	}
	s.entries = append(s.entries, entry)
	s.lastUpdated = time.Now()

	if max := m.cfg.MaxMessagesPerSession; len(s.entries) > max {
		s.entries = s.entries[len(s.entries)-max:]
	}

	m.evictOldSessions(ctx)
}

// evictOldSessions must be called with the lock held.
func (m *Memory) evictOldSessions(ctx context.Context) {
	max := m.cfg.MaxSessions
	if len(m.sessions) <= max {
		return
	}

	type aged struct {
		id          string
		lastUpdated time.Time
	}
	all := make([]aged, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, aged{id: id, lastUpdated: s.lastUpdated})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].lastUpdated.Before(all[j].lastUpdated)
	})

	evicted := 0
	for _, a := range all[:len(m.sessions)-max] {
		delete(m.sessions, a.id)
		evicted++
	}
	log.FromCtx(ctx).Info().Msgf("evicted %d old sessions", evicted)
}

// Summary renders the last two entries of a session as a single compact
// line, or a fixed sentinel when the session is empty.
func (m *Memory) Summary(sessionID string) string {
	entries := m.GetSession(sessionID)
	if len(entries) == 0 {
		return noConversation
	}

	if len(entries) > 2 {
		entries = entries[len(entries)-2:]
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Role+": "+compact(e.Content))
	}
	return strings.Join(parts, " | ")
}

// compact collapses whitespace runs and truncates long content.
func compact(content string) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	if len(collapsed) > summaryMaxChars {
		return collapsed[:summaryMaxChars-3] + "..."
	}
	return collapsed
}

func (m *Memory) ClearSession(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

func (m *Memory) ClearAllSessions() {
	m.mu.Lock()
	m.sessions = make(map[string]*session)
	m.mu.Unlock()
}

func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, s := range m.sessions {
		total += len(s.entries)
	}
	return Stats{TotalSessions: len(m.sessions), TotalMessages: total}
}
