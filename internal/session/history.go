package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one successful prediction. Records are values and never
// change after they are appended.
type Record struct {
	ID        string    `json:"id"`
	Case      string    `json:"case"`
	Reply     string    `json:"reply"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord stamps a record with a fresh ID and the current time
func NewRecord(caseText, reply string) Record {
	return Record{
		ID:        uuid.NewString(),
		Case:      caseText,
		Reply:     reply,
		CreatedAt: time.Now(),
	}
}

// History is the in-memory prediction log for one running process.
// It grows until cleared and is never persisted.
type History struct {
	mu      sync.RWMutex
	records []Record
}

func NewHistory() *History {
	return &History{}
}

// Append adds a record at the end
func (h *History) Append(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
}

// Clear drops every record
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
}

// List returns a copy of the records in insertion order
func (h *History) List() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Newest returns a copy of the records, most recent first
func (h *History) Newest() []Record {
	list := h.List()
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list
}

func (h *History) IsEmpty() bool {
	return h.Len() == 0
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Get looks a record up by ID
func (h *History) Get(id string) (Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, r := range h.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Latest returns the most recently appended record
func (h *History) Latest() (Record, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}
