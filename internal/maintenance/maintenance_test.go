package maintenance

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"guild-logger/internal/channels"
	"guild-logger/internal/settings"
)

type stubResolver map[int64]bool

func (s stubResolver) Resolve(ctx context.Context, id int64) (channels.Channel, bool) {
	return channels.Channel{ID: id}, s[id]
}

func newService() (*settings.Service, *settings.MemoryRepo) {
	repo := settings.NewMemoryRepo()
	return settings.NewService(repo, nil, nil), repo
}

func TestSweep_ReportsUnreachableChannels(t *testing.T) {
	svc, repo := newService()
	repo.Put(settings.Record{GuildID: 1, LogChannelID: 10, LoggingEnabled: true, Language: "en"})
	repo.Put(settings.Record{GuildID: 2, LogChannelID: 20, LoggingEnabled: true, Language: "en"})
	repo.Put(settings.Record{GuildID: 3, LogChannelID: 30, LoggingEnabled: false, Language: "en"})

	s := NewSweeper(svc, stubResolver{10: true}, nil)
	rep, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rep.Checked != 2 {
		t.Fatalf("expected 2 enabled configs checked, got %d", rep.Checked)
	}
	if len(rep.Broken) != 1 || rep.Broken[0] != 2 {
		t.Fatalf("unexpected broken list %v", rep.Broken)
	}
	if repo.Len() != 3 {
		t.Fatalf("sweep must not modify configs")
	}
}

func TestSweep_StoreError(t *testing.T) {
	svc, repo := newService()
	repo.Err = context.DeadlineExceeded

	if _, err := NewSweeper(svc, stubResolver{}, nil).Sweep(context.Background()); err == nil {
		t.Fatalf("expected store error")
	}
}

func TestOnChannelDelete_LogsAffectedGuilds(t *testing.T) {
	svc, repo := newService()
	repo.Put(settings.Record{GuildID: 1, LogChannelID: 10, LoggingEnabled: true, Language: "en"})
	repo.Put(settings.Record{GuildID: 2, LogChannelID: 10, Language: "en"})
	repo.Put(settings.Record{GuildID: 3, LogChannelID: 99, Language: "en"})

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	NewSweeper(svc, stubResolver{}, log).OnChannelDelete(context.Background(), 10)

	out := buf.String()
	if strings.Count(out, "log channel deleted") != 2 {
		t.Fatalf("expected two warnings, got %s", out)
	}
	if strings.Contains(out, `"guild_id":3`) {
		t.Fatalf("unrelated guild must not be reported")
	}
}

func TestAttach_RegistersEntry(t *testing.T) {
	svc, _ := newService()
	c := NewCron(slog.Default())
	if _, err := NewSweeper(svc, stubResolver{}, nil).Attach(context.Background(), c, "@every 1h"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("expected one entry")
	}
	if _, err := NewSweeper(svc, stubResolver{}, nil).Attach(context.Background(), c, "not a spec"); err == nil {
		t.Fatalf("expected spec error")
	}
}
