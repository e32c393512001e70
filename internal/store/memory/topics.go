package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alfredjeanlab/alerts/internal/model"
	"github.com/alfredjeanlab/alerts/internal/store"
)

var _ store.TopicStore = (*Topics)(nil)

// Topics is an in-memory store.TopicStore.
type Topics struct {
	mu      sync.RWMutex
	history map[string][]int64
}

// NewTopics creates an empty topic registry.
func NewTopics() *Topics {
	return &Topics{history: make(map[string][]int64)}
}

func (r *Topics) Register(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.history[name]; ok {
		return fmt.Errorf("topic %q: %w", name, store.ErrAlreadyExists)
	}
	r.history[name] = []int64{}
	return nil
}

func (r *Topics) Find(name string) (model.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.history[name]
	if !ok {
		return model.Topic{}, fmt.Errorf("topic %q: %w", name, store.ErrNotFound)
	}
	return snapshotTopic(name, h), nil
}

// List returns every topic sorted by name.
func (r *Topics) List() []model.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Topic, 0, len(r.history))
	for name, h := range r.history {
		out = append(out, snapshotTopic(name, h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Topics) RecordAlert(name string, alertID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.history[name]
	if !ok {
		return fmt.Errorf("topic %q: %w", name, store.ErrNotFound)
	}
	r.history[name] = append(h, alertID)
	return nil
}

func snapshotTopic(name string, h []int64) model.Topic {
	t := model.Topic{Name: name}
	if len(h) > 0 {
		t.History = append([]int64(nil), h...)
	}
	return t
}
