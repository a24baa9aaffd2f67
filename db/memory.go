package db

import (
	"context"
	"sync"
	"time"

	model "github.com/stenstromen/bioportal/model"
)

// Memory is a process-local token store used when no MYSQL_DSN is configured.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Token
}

func NewMemory() *Memory {
	return &Memory{rows: make(map[int64]model.Token)}
}

func (m *Memory) InsertToken(_ context.Context, label, sealed string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.rows[m.nextID] = model.Token{
		ID:        m.nextID,
		Label:     label,
		Sealed:    sealed,
		CreatedAt: time.Now().UTC(),
	}
	return m.nextID, nil
}

func (m *Memory) GetToken(_ context.Context, id int64) (model.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return model.Token{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) DeleteToken(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}
