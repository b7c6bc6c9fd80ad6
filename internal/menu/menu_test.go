package menu

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/audit"
	"guild-logger/internal/channels"
	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
	"guild-logger/internal/settings"
)

type fakeResponder struct {
	responses []*discordgo.InteractionResponse
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeResponder) last(t *testing.T) *discordgo.InteractionResponse {
	t.Helper()
	if len(f.responses) == 0 {
		t.Fatalf("expected a response")
	}
	return f.responses[len(f.responses)-1]
}

type stubResolver map[int64]bool

func (s stubResolver) Resolve(ctx context.Context, id int64) (channels.Channel, bool) {
	if s[id] {
		return channels.Channel{ID: id, GuildID: 1}, true
	}
	return channels.Channel{}, false
}

type fixture struct {
	repo    *settings.MemoryRepo
	audit   *audit.MemoryRepo
	svc     *settings.Service
	handler *Handler
	resp    *fakeResponder
}

func newFixture() *fixture {
	f := &fixture{repo: settings.NewMemoryRepo(), audit: audit.NewMemoryRepo(), resp: &fakeResponder{}}
	f.svc = settings.NewService(f.repo, settings.AuditAdapter{Audit: audit.NewService(f.audit)}, nil)
	f.handler = NewHandler(context.Background(), f.svc, stubResolver{777: true}, "1.0.0", nil)
	return f
}

func (f *fixture) click(id string, perms int64, values ...string) {
	i := &discordgo.Interaction{
		ID:      "i1",
		Type:    discordgo.InteractionMessageComponent,
		GuildID: "1",
		Locale:  discordgo.EnglishUS,
		Member:  &discordgo.Member{User: &discordgo.User{ID: "42"}, Permissions: perms},
		Data:    discordgo.MessageComponentInteractionData{CustomID: id, Values: values},
	}
	f.handler.serve(context.Background(), request{responder: f.resp}, i)
}

func buttons(components []discordgo.MessageComponent) map[string]discordgo.Button {
	out := map[string]discordgo.Button{}
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if b, ok := inner.(discordgo.Button); ok {
				out[b.CustomID] = b
			}
		}
	}
	return out
}

func TestParseCustomID(t *testing.T) {
	action, arg, ok := parseCustomID(customID(actionCategory, "voice"))
	if !ok || action != actionCategory || arg != "voice" {
		t.Fatalf("unexpected parse: %q %q %v", action, arg, ok)
	}
	if _, _, ok := parseCustomID("other:thing"); ok {
		t.Fatalf("foreign ids must not parse")
	}
	if _, _, ok := parseCustomID("gl"); ok {
		t.Fatalf("id without action must not parse")
	}
}

func TestRender_MainPageSourceLink(t *testing.T) {
	_, comps := Render(PageMain, View{Config: settings.Defaults(1)})
	if _, ok := buttons(comps)[""]; ok {
		t.Fatalf("no link button expected without a source url")
	}

	_, comps = Render(PageMain, View{Config: settings.Defaults(1), SourceURL: "https://example.org/guild-logger"})
	link, ok := buttons(comps)[""]
	if !ok || link.Style != discordgo.LinkButton || link.URL != "https://example.org/guild-logger" {
		t.Fatalf("unexpected link button %+v ok=%v", link, ok)
	}
	if _, ok := buttons(comps)[customID(actionSettings)]; !ok {
		t.Fatalf("settings button must stay on the main page")
	}
}

func TestRender_LoggingPage(t *testing.T) {
	cfg := settings.Defaults(1)
	cfg.LogChannelID = 777
	embed, components := Render(PageLogging, View{Config: cfg, Channel: ChannelMissing})

	if embed.Fields[1].Value != "Channel not found" {
		t.Fatalf("unexpected channel field %q", embed.Fields[1].Value)
	}
	if len(components) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(components))
	}
	b := buttons(components)
	if _, ok := b[customID(actionDetails)]; ok {
		t.Fatalf("details must be hidden while logging is off")
	}
	if b[customID(actionToggle)].Style != discordgo.SuccessButton {
		t.Fatalf("expected enable button")
	}

	cfg.LoggingEnabled = true
	embed, components = Render(PageLogging, View{Config: cfg, Channel: ChannelFound})
	if embed.Fields[1].Value != "<#777>" {
		t.Fatalf("unexpected channel field %q", embed.Fields[1].Value)
	}
	if _, ok := buttons(components)[customID(actionDetails)]; !ok {
		t.Fatalf("details must be shown while logging is on")
	}
}

func TestRender_DetailsPage(t *testing.T) {
	cfg := settings.Defaults(1)
	cfg.Language = i18n.Russian
	cfg.LogTypes = flagset.AllEnabled()
	cfg.LogTypes.Set(flagset.CategoryVoice, false)

	embed, components := Render(PageDetails, View{Config: cfg})
	if len(embed.Fields) != len(flagset.Categories()) {
		t.Fatalf("expected one field per category, got %d", len(embed.Fields))
	}
	if embed.Title != "Детальные настройки логирования" {
		t.Fatalf("expected russian title, got %q", embed.Title)
	}
	// two rows of three plus back.
	if len(components) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(components))
	}
	b := buttons(components)
	if b[customID(actionCategory, "voice")].Style != discordgo.DangerButton {
		t.Fatalf("disabled category must be red")
	}
	if b[customID(actionCategory, "message")].Style != discordgo.SuccessButton {
		t.Fatalf("enabled category must be green")
	}
}

func TestHandler_MutationNeedsManageGuild(t *testing.T) {
	f := newFixture()
	f.click(customID(actionToggle), discordgo.PermissionSendMessages)

	resp := f.resp.last(t)
	if resp.Data.Content != i18n.Lookup(i18n.English, "menu.forbidden") {
		t.Fatalf("expected forbidden reply, got %q", resp.Data.Content)
	}
	if resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatalf("forbidden reply must be ephemeral")
	}
	if f.repo.Len() != 0 {
		t.Fatalf("forbidden click must not write")
	}
}

func TestHandler_NavigationNeedsNoPermission(t *testing.T) {
	f := newFixture()
	f.click(customID(actionSettings), 0)

	resp := f.resp.last(t)
	if resp.Type != discordgo.InteractionResponseUpdateMessage {
		t.Fatalf("expected message update, got %v", resp.Type)
	}
	if resp.Data.Embeds[0].Title != "Logging settings" {
		t.Fatalf("unexpected title %q", resp.Data.Embeds[0].Title)
	}
}

func TestHandler_ToggleFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.click(customID(actionChannel), discordgo.PermissionManageGuild, "777")
	f.click(customID(actionToggle), discordgo.PermissionManageGuild)
	f.click(customID(actionCategory, "voice"), discordgo.PermissionAdministrator)

	cfg, err := f.svc.Effective(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.LogChannelID != 777 || !cfg.LoggingEnabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if flagset.IsEnabled(cfg.LogTypes, flagset.CategoryVoice) {
		t.Fatalf("voice must be off after one toggle")
	}
	if !flagset.IsEnabled(cfg.LogTypes, flagset.CategoryMessage) {
		t.Fatalf("message must stay on")
	}

	resp := f.resp.last(t)
	if resp.Type != discordgo.InteractionResponseUpdateMessage || resp.Data.Embeds[0].Title != "Detailed logging settings" {
		t.Fatalf("expected details page re-render, got %+v", resp)
	}

	events := f.audit.Events()
	if len(events) == 0 {
		t.Fatalf("expected audit records")
	}
	for _, e := range events {
		if e.Source != audit.SourceMenu || e.ActorUserID != "42" {
			t.Fatalf("unexpected audit actor: %+v", e)
		}
	}
}

func TestHandler_LanguageSelect(t *testing.T) {
	f := newFixture()
	f.click(customID(actionLanguage), discordgo.PermissionManageGuild, "ru")

	resp := f.resp.last(t)
	if !strings.HasPrefix(resp.Data.Embeds[0].Title, "Настройки логирования") {
		t.Fatalf("menu must re-render in the new language, got %q", resp.Data.Embeds[0].Title)
	}
}

func TestHandler_BadChannelSelectionFails(t *testing.T) {
	f := newFixture()
	f.click(customID(actionChannel), discordgo.PermissionManageGuild)

	if got := f.resp.last(t).Data.Content; got != i18n.Lookup(i18n.English, "menu.failed") {
		t.Fatalf("expected failure reply, got %q", got)
	}

	// 999 does not resolve inside guild 1.
	f.click(customID(actionChannel), discordgo.PermissionManageGuild, "999")
	if got := f.resp.last(t).Data.Content; got != i18n.Lookup(i18n.English, "menu.failed") {
		t.Fatalf("expected failure reply, got %q", got)
	}
	if f.repo.Len() != 0 {
		t.Fatalf("unresolved channel must not be stored")
	}
}

func TestHandler_PingAndSettingsCommands(t *testing.T) {
	f := newFixture()
	cmd := func(name string) *discordgo.Interaction {
		return &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "1",
			Locale:  discordgo.Russian,
			Data:    discordgo.ApplicationCommandInteractionData{Name: name},
		}
	}

	f.handler.serve(context.Background(), request{responder: f.resp, latency: 42_000_000}, cmd(CommandPing))
	if got := f.resp.last(t).Data.Content; got != "Pong! Задержка: 42мс" {
		t.Fatalf("unexpected ping reply %q", got)
	}

	f.handler.serve(context.Background(), request{responder: f.resp}, cmd(CommandSettings))
	resp := f.resp.last(t)
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource || resp.Data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Fatalf("settings must open as an ephemeral message")
	}
}

func TestCommands(t *testing.T) {
	cmds := Commands()
	if len(cmds) != 2 || cmds[0].Name != "setting" || cmds[1].Name != CommandPing {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
	if cmds[0].DefaultMemberPermissions == nil || *cmds[0].DefaultMemberPermissions != discordgo.PermissionManageGuild {
		t.Fatalf("settings must default to manage-guild")
	}
}
