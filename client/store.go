package client

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"clockedin.io/application/controller/dto"
)

const (
	EventStatusPending           = "pending"
	EventStatusFailedPermanently = "failed_permanently"
)

// QueuedEvent is one deferred submission. The payload is stored verbatim so a
// later flush sends exactly what the user proved at capture time.
type QueuedEvent struct {
	ID          string                  `json:"id"`
	Payload     dto.VerifyAttendanceDTO `json:"payload"`
	Status      string                  `json:"status"`
	Attempts    int                     `json:"attempts"`
	EnqueuedAt  time.Time               `json:"enqueued_at"`
	LastTriedAt *time.Time              `json:"last_tried_at,omitempty"`
}

// QueueStore persists queued events across app restarts.
type QueueStore interface {
	Append(event QueuedEvent) error
	List() ([]QueuedEvent, error)
	Update(event QueuedEvent) error
	Remove(id string) error
}

// FileQueueStore keeps the queue in a single JSON file. Devices queue at most
// a handful of submissions per outage, so rewriting the file per mutation is
// fine.
type FileQueueStore struct {
	Path  string
	mutex sync.Mutex
}

func NewFileQueueStore(path string) *FileQueueStore {
	return &FileQueueStore{Path: path}
}

func (store *FileQueueStore) Append(event QueuedEvent) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	events, err := store.read()
	if err != nil {
		return err
	}
	events = append(events, event)
	return store.write(events)
}

func (store *FileQueueStore) List() ([]QueuedEvent, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.read()
}

func (store *FileQueueStore) Update(event QueuedEvent) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	events, err := store.read()
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
		}
	}
	return store.write(events)
}

func (store *FileQueueStore) Remove(id string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	events, err := store.read()
	if err != nil {
		return err
	}
	kept := events[:0]
	for _, event := range events {
		if event.ID != id {
			kept = append(kept, event)
		}
	}
	return store.write(kept)
}

func (store *FileQueueStore) read() ([]QueuedEvent, error) {
	raw, err := os.ReadFile(store.Path)
	if os.IsNotExist(err) {
		return []QueuedEvent{}, nil
	}
	if err != nil {
		return nil, err
	}
	var events []QueuedEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (store *FileQueueStore) write(events []QueuedEvent) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	// Write-then-rename keeps the queue readable if the device dies mid-write.
	tmp := store.Path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, store.Path)
}
