package settings

import (
	"context"
	"errors"
	"testing"

	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
)

type recordingAudit struct {
	changes []Change
	err     error
}

func (a *recordingAudit) LogSettingChange(ctx context.Context, c Change) error {
	a.changes = append(a.changes, c)
	return a.err
}

func TestService_GetNeverFabricatesRow(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, nil)

	_, ok, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("expected absent config")
	}
	cfg, err := svc.Effective(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.LoggingEnabled || cfg.LogChannelID != 0 || cfg.Language != i18n.English {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if repo.Len() != 0 {
		t.Fatalf("reads must not persist defaults")
	}
}

func TestService_SetLogChannelPreservesOtherFields(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(Record{GuildID: 1, LogChannelID: 5, LoggingEnabled: true, LogTypes: "voice:0", Language: "ru"})
	svc := NewService(repo, nil, nil)

	if err := svc.SetLogChannel(context.Background(), 1, 777); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rec, _, _ := repo.Get(context.Background(), 1)
	if rec != (Record{GuildID: 1, LogChannelID: 777, LoggingEnabled: true, LogTypes: "voice:0", Language: "ru"}) {
		t.Fatalf("unexpected row: %+v", rec)
	}
}

func TestService_EnableResetsAllCategories(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(Record{GuildID: 1, LogTypes: "message:0,voice:0,custom:0", Language: "en"})
	svc := NewService(repo, nil, nil)

	if err := svc.SetLoggingEnabled(context.Background(), 1, true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cfg, ok, err := svc.Get(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("expected row, err=%v", err)
	}
	if !cfg.LoggingEnabled {
		t.Fatalf("expected logging enabled")
	}
	if !cfg.LogTypes.Equal(flagset.AllEnabled()) {
		t.Fatalf("expected all categories enabled, got %q", flagset.Encode(cfg.LogTypes))
	}
}

func TestService_DisableLeavesLogTypesUntouched(t *testing.T) {
	repo := NewMemoryRepo()
	const raw = " voice:0 ,bogus,message:1,"
	repo.Put(Record{GuildID: 1, LoggingEnabled: true, LogChannelID: 9, LogTypes: raw, Language: "en"})
	svc := NewService(repo, nil, nil)

	if err := svc.SetLoggingEnabled(context.Background(), 1, false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rec, _, _ := repo.Get(context.Background(), 1)
	if rec.LogTypes != raw {
		t.Fatalf("log_types changed: %q", rec.LogTypes)
	}
	if rec.LoggingEnabled {
		t.Fatalf("expected logging disabled")
	}
}

func TestService_DisableOnMissingRowUsesDefaults(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, nil)

	if err := svc.SetLoggingEnabled(context.Background(), 3, false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rec, ok, _ := repo.Get(context.Background(), 3)
	if !ok || rec.LogTypes != DefaultLogTypes || rec.LogChannelID != 0 {
		t.Fatalf("unexpected row: %+v", rec)
	}
}

func TestService_UpdateLogTypeSequentialNonInterference(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	if err := svc.SetLoggingEnabled(ctx, 1, true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.UpdateLogType(ctx, 1, flagset.CategoryVoice, false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.UpdateLogType(ctx, 1, flagset.CategoryMessage, false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	cfg, _, _ := svc.Get(ctx, 1)
	for _, c := range flagset.Categories() {
		want := c != flagset.CategoryVoice && c != flagset.CategoryMessage
		if got := flagset.IsEnabled(cfg.LogTypes, c); got != want {
			t.Fatalf("category %s: got %v want %v", c, got, want)
		}
	}
}

func TestService_UpdateLogTypeOnMissingRowStartsFromDefault(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, nil)

	flags, err := svc.UpdateLogType(context.Background(), 1, flagset.CategoryUser, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := flagset.Encode(flags); got != "message:0,invite:0,server:0,voice:0,automod:0,user:1" {
		t.Fatalf("unexpected flags %q", got)
	}
}

func TestService_UpdateLogTypeRejectsUnknownCategory(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, nil)
	_, err := svc.UpdateLogType(context.Background(), 1, flagset.Category("sticker"), true)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestService_ToggleTreatsMissingAsEnabled(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(Record{GuildID: 1, LoggingEnabled: true, LogTypes: "message:1", Language: "en"})
	svc := NewService(repo, nil, nil)

	got, err := svc.ToggleLogType(context.Background(), 1, flagset.CategoryVoice)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got {
		t.Fatalf("expected voice to be toggled off")
	}
	rec, _, _ := repo.Get(context.Background(), 1)
	if rec.LogTypes != "message:1,voice:0" {
		t.Fatalf("unexpected log_types %q", rec.LogTypes)
	}
}

func TestService_LanguageNeverFails(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	if got := svc.Language(ctx, 1); got != i18n.English {
		t.Fatalf("expected default language, got %q", got)
	}
	if err := svc.SetLanguage(ctx, 1, i18n.Russian); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := svc.Language(ctx, 1); got != i18n.Russian {
		t.Fatalf("expected ru, got %q", got)
	}

	repo.Err = errors.New("connection reset")
	if got := svc.Language(ctx, 1); got != i18n.English {
		t.Fatalf("expected fallback on store error, got %q", got)
	}
}

func TestService_SetLanguageRejectsUnsupported(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil, nil)
	err := svc.SetLanguage(context.Background(), 1, i18n.Language("de"))
	if !errors.Is(err, ErrInvalidArgument) || !errors.Is(err, i18n.ErrUnsupported) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("rejected language must not create a row")
	}
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	repo := NewMemoryRepo()
	boom := errors.New("boom")
	repo.Err = boom
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	if _, _, err := svc.Get(ctx, 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if err := svc.SetLogChannel(ctx, 1, 2); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if err := svc.SetLoggingEnabled(ctx, 1, true); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if _, err := svc.UpdateLogType(ctx, 1, flagset.CategoryVoice, true); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestService_RejectsInvalidGuild(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil, nil)
	if err := svc.SetLogChannel(context.Background(), 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := svc.SetLogChannel(context.Background(), 1, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestService_AuditIsBestEffort(t *testing.T) {
	a := &recordingAudit{err: errors.New("audit down")}
	svc := NewService(NewMemoryRepo(), a, nil)

	if err := svc.SetLogChannel(context.Background(), 1, 777); err != nil {
		t.Fatalf("audit failure must not fail the mutation: %v", err)
	}
	if err := svc.SetLoggingEnabled(context.Background(), 1, true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(a.changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(a.changes))
	}
	if a.changes[0] != (Change{GuildID: 1, Field: FieldLogChannel, Value: "777"}) {
		t.Fatalf("unexpected change %+v", a.changes[0])
	}
}

func TestService_ListEnabledAndGuildsForChannel(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(Record{GuildID: 2, LogChannelID: 50, LoggingEnabled: true, LogTypes: DefaultLogTypes, Language: "en"})
	repo.Put(Record{GuildID: 1, LogChannelID: 50, LoggingEnabled: false, LogTypes: DefaultLogTypes, Language: "en"})
	repo.Put(Record{GuildID: 3, LogChannelID: 0, LoggingEnabled: true, LogTypes: DefaultLogTypes, Language: "en"})
	svc := NewService(repo, nil, nil)

	enabled, err := svc.ListEnabled(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(enabled) != 1 || enabled[0].GuildID != 2 {
		t.Fatalf("unexpected enabled list: %+v", enabled)
	}

	ids, err := svc.GuildsForChannel(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected guilds: %v", ids)
	}
}
