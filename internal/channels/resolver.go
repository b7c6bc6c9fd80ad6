package channels

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Channel is a live destination for log entries.
type Channel struct {
	ID      int64
	GuildID int64
	Name    string
}

var ErrNotFound = errors.New("channels: not found")

// Lookup answers from state the process already holds (the gateway's channel cache).
type Lookup interface {
	LookupChannel(id int64) (Channel, bool)
}

// Fetcher performs the remote lookup. Channels that no longer exist or cannot be
// seen must be reported with an error wrapping ErrNotFound.
type Fetcher interface {
	FetchChannel(ctx context.Context, id int64) (Channel, error)
}

// MissCache remembers channels known to be gone so repeated events skip the remote fetch.
type MissCache interface {
	IsMissing(ctx context.Context, id int64) (bool, error)
	MarkMissing(ctx context.Context, id int64) error
	Forget(ctx context.Context, id int64) error
}

// Resolver maps stored channel ids to live channels.
//
// Order: own cache, gateway state, negative cache, one remote fetch.
// Resolve never returns an error; every failure is logged and reported as absent.
type Resolver struct {
	local  Lookup
	remote Fetcher
	misses MissCache
	log    *slog.Logger

	mu    sync.RWMutex
	cache map[int64]Channel
}

// NewResolver builds a Resolver. local and misses may be nil.
func NewResolver(local Lookup, remote Fetcher, misses MissCache, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		local:  local,
		remote: remote,
		misses: misses,
		log:    log,
		cache:  map[int64]Channel{},
	}
}

func (r *Resolver) Resolve(ctx context.Context, id int64) (Channel, bool) {
	if id == 0 {
		return Channel{}, false
	}

	r.mu.RLock()
	ch, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		return ch, true
	}

	if r.local != nil {
		if ch, ok := r.local.LookupChannel(id); ok {
			r.store(ch)
			return ch, true
		}
	}

	if r.misses != nil {
		missing, err := r.misses.IsMissing(ctx, id)
		if err != nil {
			r.log.Warn("channel miss cache read failed", "channel_id", id, "err", err)
		} else if missing {
			return Channel{}, false
		}
	}

	if r.remote == nil {
		return Channel{}, false
	}
	ch, err := r.remote.FetchChannel(ctx, id)
	if err != nil {
		r.log.Warn("channel fetch failed", "channel_id", id, "err", err)
		if errors.Is(err, ErrNotFound) && r.misses != nil {
			if err := r.misses.MarkMissing(ctx, id); err != nil {
				r.log.Warn("channel miss cache write failed", "channel_id", id, "err", err)
			}
		}
		return Channel{}, false
	}
	r.store(ch)
	return ch, true
}

// Remember records a channel the gateway reported as created or updated.
func (r *Resolver) Remember(ctx context.Context, ch Channel) {
	if ch.ID == 0 {
		return
	}
	r.store(ch)
	if r.misses != nil {
		if err := r.misses.Forget(ctx, ch.ID); err != nil {
			r.log.Warn("channel miss cache forget failed", "channel_id", ch.ID, "err", err)
		}
	}
}

// Invalidate drops a deleted channel and marks it missing.
func (r *Resolver) Invalidate(ctx context.Context, id int64) {
	if id == 0 {
		return
	}
	r.mu.Lock()
	delete(r.cache, id)
	r.mu.Unlock()
	if r.misses != nil {
		if err := r.misses.MarkMissing(ctx, id); err != nil {
			r.log.Warn("channel miss cache write failed", "channel_id", id, "err", err)
		}
	}
}

func (r *Resolver) store(ch Channel) {
	r.mu.Lock()
	r.cache[ch.ID] = ch
	r.mu.Unlock()
}
