package settings

import (
	"context"
	"sort"
	"sync"

	"guild-logger/internal/i18n"
)

// MemoryRepo mirrors PostgresRepo's upsert semantics in memory. Useful for tests.
type MemoryRepo struct {
	mu   sync.Mutex
	rows map[int64]Record

	// Err, when set, is returned from every call.
	Err error
	// Writes counts successful mutations.
	Writes int
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{rows: map[int64]Record{}} }

func (r *MemoryRepo) Get(ctx context.Context, guildID int64) (Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return Record{}, false, r.Err
	}
	rec, ok := r.rows[guildID]
	return rec, ok, nil
}

func (r *MemoryRepo) UpsertChannel(ctx context.Context, guildID, channelID int64) error {
	return r.upsert(guildID, func(rec *Record) { rec.LogChannelID = channelID })
}

func (r *MemoryRepo) EnableLogging(ctx context.Context, guildID int64, logTypes string) error {
	return r.upsert(guildID, func(rec *Record) {
		rec.LoggingEnabled = true
		rec.LogTypes = logTypes
	})
}

func (r *MemoryRepo) DisableLogging(ctx context.Context, guildID int64) error {
	return r.upsert(guildID, func(rec *Record) { rec.LoggingEnabled = false })
}

func (r *MemoryRepo) UpsertLogTypes(ctx context.Context, guildID int64, logTypes string) error {
	return r.upsert(guildID, func(rec *Record) { rec.LogTypes = logTypes })
}

func (r *MemoryRepo) UpsertLanguage(ctx context.Context, guildID int64, language string) error {
	return r.upsert(guildID, func(rec *Record) { rec.Language = language })
}

func (r *MemoryRepo) GuildsForChannel(ctx context.Context, channelID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []int64
	for id, rec := range r.rows {
		if rec.LogChannelID == channelID {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *MemoryRepo) ListEnabled(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []Record
	for _, rec := range r.rows {
		if rec.LoggingEnabled && rec.LogChannelID != 0 {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GuildID < out[j].GuildID })
	return out, nil
}

// Put stores rec as-is, bypassing upsert semantics.
func (r *MemoryRepo) Put(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[rec.GuildID] = rec
}

// Len reports the number of stored rows.
func (r *MemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *MemoryRepo) upsert(guildID int64, apply func(*Record)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	rec, ok := r.rows[guildID]
	if !ok {
		rec = Record{GuildID: guildID, LogTypes: DefaultLogTypes, Language: string(i18n.Default)}
	}
	apply(&rec)
	r.rows[guildID] = rec
	r.Writes++
	return nil
}
