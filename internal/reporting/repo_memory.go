package reporting

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryRepo keeps per-guild counters in process. Counters reset on restart.
type MemoryRepo struct {
	mu     sync.Mutex
	since  time.Time
	guilds map[int64]*DeliveryStats
}

func NewMemoryRepo(since time.Time) *MemoryRepo {
	return &MemoryRepo{since: since.UTC(), guilds: map[int64]*DeliveryStats{}}
}

func (r *MemoryRepo) Add(ctx context.Context, o Outcome) error {
	if o.GuildID == 0 {
		return errors.New("guild_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.guilds[o.GuildID]
	if !ok {
		s = &DeliveryStats{GuildID: o.GuildID, Dropped: map[string]int64{}, Since: r.since}
		r.guilds[o.GuildID] = s
	}
	s.Routed++
	if o.Delivered {
		s.Delivered++
		at := o.At.UTC()
		s.LastDeliveredAt = &at
		return nil
	}
	if o.Reason == ReasonSendFailed {
		s.SendFailures++
	}
	s.Dropped[o.Reason]++
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, guildID int64) (DeliveryStats, error) {
	if guildID == 0 {
		return DeliveryStats{}, errors.New("guild_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.guilds[guildID]
	if !ok {
		return DeliveryStats{GuildID: guildID, Dropped: map[string]int64{}, Since: r.since}, nil
	}
	out := *s
	out.Dropped = make(map[string]int64, len(s.Dropped))
	for k, v := range s.Dropped {
		out.Dropped[k] = v
	}
	if s.LastDeliveredAt != nil {
		at := *s.LastDeliveredAt
		out.LastDeliveredAt = &at
	}
	return out, nil
}
