package services

import (
	"sync"
	"time"

	"blogfront/app/models"
	"blogfront/app/repositories"
)

// sweepInterval is the least time between two scans for abandoned browsers.
const sweepInterval = time.Minute

// Board tracks what each browser currently has rendered and which load was
// issued last, so an older response can never overwrite a newer render.
// A browser unused for longer than the snapshot TTL is forgotten.
type Board struct {
	mu        sync.Mutex
	clients   map[string]*clientView
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type clientView struct {
	issued   uint64
	applied  uint64
	posts    []*models.Post
	loaded   bool
	lastUsed time.Time
}

// NewBoard creates an empty Board
func NewBoard() *Board {
	return &Board{
		clients: make(map[string]*clientView),
		ttl:     repositories.SnapshotTTL,
		now:     time.Now,
	}
}

func (b *Board) expired(v *clientView, now time.Time) bool {
	return now.Sub(v.lastUsed) > b.ttl
}

// lookup returns the live view of a browser, dropping it if it expired.
func (b *Board) lookup(clientID string, now time.Time) (*clientView, bool) {
	v, ok := b.clients[clientID]
	if !ok {
		return nil, false
	}
	if b.expired(v, now) {
		delete(b.clients, clientID)
		return nil, false
	}
	v.lastUsed = now
	return v, true
}

func (b *Board) view(clientID string, now time.Time) *clientView {
	v, ok := b.lookup(clientID, now)
	if !ok {
		v = &clientView{lastUsed: now}
		b.clients[clientID] = v
	}
	return v
}

// sweep drops every expired browser. Caller holds the lock.
func (b *Board) sweep(now time.Time) {
	if now.Sub(b.lastSweep) < sweepInterval {
		return
	}
	b.lastSweep = now
	for id, v := range b.clients {
		if b.expired(v, now) {
			delete(b.clients, id)
		}
	}
}

// Begin registers a new load for the browser and returns its sequence number.
func (b *Board) Begin(clientID string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.sweep(now)
	v := b.view(clientID, now)
	v.issued++
	return v.issued
}

// Apply installs posts as the browser's render if seq is still the latest
// issued load. commit, if set, runs under the board lock once the response
// is known to be current. Apply reports whether the response was applied.
func (b *Board) Apply(clientID string, seq uint64, posts []*models.Post, commit func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := b.view(clientID, b.now())
	if seq != v.issued || seq <= v.applied {
		return false
	}
	if commit != nil {
		commit()
	}
	v.applied = seq
	v.posts = posts
	v.loaded = true
	return true
}

// Patch edits one post of the browser's current render in place. The render
// slice is copied so pages already holding the old slice are unaffected.
// commit, if set, receives the patched render under the board lock.
func (b *Board) Patch(clientID string, postID int, edit func(p *models.Post), commit func(posts []*models.Post)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.lookup(clientID, b.now())
	if !ok || !v.loaded {
		return false
	}
	for i, p := range v.posts {
		if p.ID.Int() != postID {
			continue
		}
		posts := make([]*models.Post, len(v.posts))
		copy(posts, v.posts)
		patched := *p
		edit(&patched)
		posts[i] = &patched
		if commit != nil {
			commit(posts)
		}
		v.posts = posts
		return true
	}
	return false
}

// Current returns the browser's latest applied render and whether any load
// has been applied yet.
func (b *Board) Current(clientID string) ([]*models.Post, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.lookup(clientID, b.now())
	if !ok {
		return nil, false
	}
	return v.posts, v.loaded
}

