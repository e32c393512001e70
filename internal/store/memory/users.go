// Package memory implements the registries in store with plain maps guarded
// by a read/write mutex. Nothing is persisted.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alfredjeanlab/alerts/internal/model"
	"github.com/alfredjeanlab/alerts/internal/store"
)

var _ store.UserStore = (*Users)(nil)

type userState struct {
	topics map[string]struct{}
	unread []int64
}

// Users is an in-memory store.UserStore.
type Users struct {
	mu    sync.RWMutex
	users map[string]*userState
}

// NewUsers creates an empty user registry.
func NewUsers() *Users {
	return &Users{users: make(map[string]*userState)}
}

// Register adds a user. The existence check and the insert happen under the
// same lock so two registrations of one name cannot both succeed.
func (r *Users) Register(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[name]; ok {
		return fmt.Errorf("user %q: %w", name, store.ErrAlreadyExists)
	}
	r.users[name] = &userState{topics: make(map[string]struct{})}
	return nil
}

func (r *Users) Find(name string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.users[name]
	if !ok {
		return model.User{}, fmt.Errorf("user %q: %w", name, store.ErrNotFound)
	}
	return snapshotUser(name, st), nil
}

// List returns every user sorted by name.
func (r *Users) List() []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, 0, len(r.users))
	for name, st := range r.users {
		out = append(out, snapshotUser(name, st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Users) Subscribe(name, topic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.users[name]
	if !ok {
		return fmt.Errorf("user %q: %w", name, store.ErrNotFound)
	}
	st.topics[topic] = struct{}{}
	return nil
}

func (r *Users) IsSubscribed(name, topic string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.users[name]
	if !ok {
		return false
	}
	_, ok = st.topics[topic]
	return ok
}

// SubscribersOf returns the names of all users subscribed to topic, sorted.
func (r *Users) SubscribersOf(topic string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, st := range r.users {
		if _, ok := st.topics[topic]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Users) Deliver(name string, alertID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.users[name]
	if !ok {
		return fmt.Errorf("user %q: %w", name, store.ErrNotFound)
	}
	st.unread = append(st.unread, alertID)
	return nil
}

// Acknowledge removes the first occurrence of alertID from the unread list.
func (r *Users) Acknowledge(name string, alertID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.users[name]
	if !ok {
		return false, fmt.Errorf("user %q: %w", name, store.ErrNotFound)
	}
	for i, id := range st.unread {
		if id == alertID {
			st.unread = append(st.unread[:i], st.unread[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func snapshotUser(name string, st *userState) model.User {
	u := model.User{Name: name}
	if len(st.topics) > 0 {
		u.Topics = make([]string, 0, len(st.topics))
		for t := range st.topics {
			u.Topics = append(u.Topics, t)
		}
		sort.Strings(u.Topics)
	}
	if len(st.unread) > 0 {
		u.Unread = append([]int64(nil), st.unread...)
	}
	return u
}
