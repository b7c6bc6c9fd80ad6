package gateway

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/events"
	"guild-logger/internal/flagset"
)

var now = time.Unix(1700000000, 0).UTC()

func kinds(evs []events.Event) []events.Kind {
	out := make([]events.Kind, 0, len(evs))
	for _, e := range evs {
		out = append(out, e.Kind)
	}
	return out
}

func sameKinds(t *testing.T, got []events.Event, want ...events.Kind) {
	t.Helper()
	k := kinds(got)
	if len(k) != len(want) {
		t.Fatalf("expected %v, got %v", want, k)
	}
	for i := range want {
		if k[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, k)
		}
	}
}

func field(ev events.Event, label string) (string, bool) {
	for _, f := range ev.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

func voice(before, after *discordgo.VoiceState) *discordgo.VoiceStateUpdate {
	return &discordgo.VoiceStateUpdate{VoiceState: after, BeforeUpdate: before}
}

func TestVoiceStateUpdate(t *testing.T) {
	base := discordgo.VoiceState{GuildID: "1", UserID: "10"}
	in := func(ch string, mute, deaf bool) *discordgo.VoiceState {
		v := base
		v.ChannelID = ch
		v.SelfMute = mute
		v.SelfDeaf = deaf
		return &v
	}

	sameKinds(t, VoiceStateUpdate(voice(nil, in("5", false, false)), now), events.VoiceJoin)
	sameKinds(t, VoiceStateUpdate(voice(in("5", false, false), in("", false, false)), now), events.VoiceLeave)
	sameKinds(t, VoiceStateUpdate(voice(in("5", true, true), in("", false, false)), now), events.VoiceLeave)
	sameKinds(t, VoiceStateUpdate(voice(in("5", false, false), in("6", true, false)), now), events.VoiceMove, events.VoiceMute)
	sameKinds(t, VoiceStateUpdate(voice(in("5", true, true), in("5", false, false)), now), events.VoiceUnmute, events.VoiceUndeafen)
	sameKinds(t, VoiceStateUpdate(voice(in("5", false, false), in("5", false, true)), now), events.VoiceDeafen)
	sameKinds(t, VoiceStateUpdate(voice(in("5", false, false), in("5", false, false)), now))

	evs := VoiceStateUpdate(voice(in("5", false, false), in("6", false, false)), now)
	if evs[0].GuildID != 1 || evs[0].Actor.ID != 10 {
		t.Fatalf("unexpected scope %+v", evs[0])
	}
	if v, _ := field(evs[0], events.LabelAfter); v != "<#6> (`6`)" {
		t.Fatalf("unexpected after channel %q", v)
	}
}

func TestVoiceStateUpdate_BotMember(t *testing.T) {
	vs := &discordgo.VoiceState{GuildID: "1", UserID: "10", ChannelID: "5",
		Member: &discordgo.Member{User: &discordgo.User{ID: "10", Username: "music", Bot: true}}}
	evs := VoiceStateUpdate(voice(nil, vs), now)
	if len(evs) != 1 || !evs[0].Actor.Bot {
		t.Fatalf("expected bot actor, got %+v", evs)
	}
}

func member(nick string, roles []string, until *time.Time) *discordgo.Member {
	return &discordgo.Member{
		GuildID:                    "1",
		User:                       &discordgo.User{ID: "10", Username: "alice"},
		Nick:                       nick,
		Roles:                      roles,
		CommunicationDisabledUntil: until,
	}
}

func TestMemberUpdate(t *testing.T) {
	later := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	upd := func(before, after *discordgo.Member) *discordgo.GuildMemberUpdate {
		return &discordgo.GuildMemberUpdate{Member: after, BeforeUpdate: before}
	}

	sameKinds(t, MemberUpdate(upd(member("a", nil, nil), member("b", nil, nil)), now), events.MemberUpdate)
	sameKinds(t, MemberUpdate(upd(member("a", nil, nil), member("a", nil, &later)), now), events.MemberTimeout)
	sameKinds(t, MemberUpdate(upd(member("a", nil, &later), member("a", nil, nil)), now), events.MemberTimeoutRemove)
	sameKinds(t, MemberUpdate(upd(member("a", []string{"r1"}, nil), member("b", []string{"r2"}, &later)), now),
		events.MemberUpdate, events.MemberTimeout)
	// An elapsed timeout is not an active one.
	sameKinds(t, MemberUpdate(upd(member("a", nil, nil), member("a", nil, &past)), now))
	sameKinds(t, MemberUpdate(upd(member("a", nil, &later), member("a", nil, &later)), now))
	// Without the previous state nothing is reported, not even an active timeout.
	sameKinds(t, MemberUpdate(upd(nil, member("a", nil, &later)), now))
	sameKinds(t, MemberUpdate(upd(nil, member("a", nil, nil)), now))
	sameKinds(t, MemberUpdate(upd(nil, member("b", []string{"r9"}, &later)), now))

	evs := MemberUpdate(upd(member("a", []string{"r1", "r2"}, nil), member("a", []string{"r2", "r3"}, nil)), now)
	if v, _ := field(evs[0], events.LabelAdded); v != "<@&r3>" {
		t.Fatalf("unexpected added roles %q", v)
	}
	if v, _ := field(evs[0], events.LabelRemoved); v != "<@&r1>" {
		t.Fatalf("unexpected removed roles %q", v)
	}
}

func TestMessageCreate(t *testing.T) {
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		ID: "99", ChannelID: "5", GuildID: "1", Content: "hello",
		Author:    &discordgo.User{ID: "10", Username: "alice"},
		Timestamp: now,
	}}
	ev, ok := MessageCreate(m, time.Time{})
	if !ok || ev.Kind != events.MessageCreate || ev.GuildID != 1 || ev.Actor.Name != "alice" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !ev.OccurredAt.Equal(now) {
		t.Fatalf("expected message timestamp")
	}
	if v, _ := field(ev, events.LabelContent); v != "hello" {
		t.Fatalf("unexpected content %q", v)
	}

	dm := &discordgo.MessageCreate{Message: &discordgo.Message{ChannelID: "5", Content: "hi"}}
	ev, ok = MessageCreate(dm, now)
	if !ok || ev.IsGuildScoped() {
		t.Fatalf("direct messages convert but are not guild scoped")
	}
}

func TestMessageEdit(t *testing.T) {
	author := &discordgo.User{ID: "10", Username: "alice"}
	before := &discordgo.Message{ID: "99", Content: "old", Author: author}

	ev, ok := MessageEdit(&discordgo.MessageUpdate{
		Message:      &discordgo.Message{ID: "99", GuildID: "1", ChannelID: "5", Content: "new"},
		BeforeUpdate: before,
	}, now)
	if !ok || ev.Actor.ID != 10 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if v, _ := field(ev, events.LabelBefore); v != "old" {
		t.Fatalf("unexpected before %q", v)
	}

	if _, ok := MessageEdit(&discordgo.MessageUpdate{
		Message:      &discordgo.Message{ID: "99", GuildID: "1", Content: "old", Author: author},
		BeforeUpdate: before,
	}, now); ok {
		t.Fatalf("content-preserving updates must be skipped")
	}
	if _, ok := MessageEdit(&discordgo.MessageUpdate{Message: &discordgo.Message{ID: "99", GuildID: "1"}}, now); ok {
		t.Fatalf("authorless partial updates must be skipped")
	}
}

func TestMessageDeleteAndBulk(t *testing.T) {
	ev, ok := MessageDelete(&discordgo.MessageDelete{
		Message:      &discordgo.Message{ID: "99", GuildID: "1", ChannelID: "5"},
		BeforeDelete: &discordgo.Message{Content: "gone", Author: &discordgo.User{ID: "10", Bot: true}},
	}, now)
	if !ok || !ev.Actor.Bot {
		t.Fatalf("expected cached author, got %+v", ev)
	}
	if v, _ := field(ev, events.LabelContent); v != "gone" {
		t.Fatalf("unexpected content %q", v)
	}

	if _, ok := MessageBulkDelete(&discordgo.MessageDeleteBulk{GuildID: "1"}, now); ok {
		t.Fatalf("empty bulk delete must be skipped")
	}
	ev, ok = MessageBulkDelete(&discordgo.MessageDeleteBulk{GuildID: "1", ChannelID: "5", Messages: []string{"1", "2", "3"}}, now)
	if !ok {
		t.Fatalf("expected event")
	}
	if v, _ := field(ev, events.LabelCount); v != "3" {
		t.Fatalf("unexpected count %q", v)
	}
}

func TestReactionAdd(t *testing.T) {
	ev, ok := ReactionAdd(&discordgo.MessageReactionAdd{
		MessageReaction: &discordgo.MessageReaction{UserID: "10", MessageID: "99", ChannelID: "5", GuildID: "1",
			Emoji: discordgo.Emoji{Name: "👍"}},
		Member: &discordgo.Member{User: &discordgo.User{ID: "10", Bot: true}},
	}, now)
	if !ok || !ev.Actor.Bot || ev.Kind != events.ReactionAdd {
		t.Fatalf("unexpected event %+v", ev)
	}
	if v, _ := field(ev, events.LabelEmoji); v != "👍" {
		t.Fatalf("unexpected emoji %q", v)
	}
}

func TestServerEvents(t *testing.T) {
	if _, ok := ChannelCreate(&discordgo.ChannelCreate{Channel: &discordgo.Channel{ID: "5"}}, now); ok {
		t.Fatalf("channels outside a guild must be skipped")
	}
	if _, ok := ChannelUpdate(&discordgo.ChannelUpdate{
		Channel:      &discordgo.Channel{ID: "5", GuildID: "1", Name: "logs"},
		BeforeUpdate: &discordgo.Channel{ID: "5", GuildID: "1", Name: "logs"},
	}, now); ok {
		t.Fatalf("permission-only updates must be skipped")
	}
	ev, ok := ChannelUpdate(&discordgo.ChannelUpdate{
		Channel:      &discordgo.Channel{ID: "5", GuildID: "1", Name: "audit"},
		BeforeUpdate: &discordgo.Channel{ID: "5", GuildID: "1", Name: "logs"},
	}, now)
	if !ok {
		t.Fatalf("expected rename event")
	}
	if v, _ := field(ev, events.LabelAfter); v != "audit" {
		t.Fatalf("unexpected after %q", v)
	}
	if _, ok := ThreadCreate(&discordgo.ThreadCreate{Channel: &discordgo.Channel{ID: "7", GuildID: "1"}}, now); ok {
		t.Fatalf("thread sync payloads must be skipped")
	}
	if _, ok := ThreadMembersUpdate(&discordgo.ThreadMembersUpdate{ID: "7", GuildID: "1"}, now); ok {
		t.Fatalf("empty member updates must be skipped")
	}
	ev, ok = RoleDelete(&discordgo.GuildRoleDelete{RoleID: "3", GuildID: "1"}, now)
	if !ok || ev.Kind.Category() != "server" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestMemberJoinCarriesAccountAge(t *testing.T) {
	ev, ok := MemberJoin(&discordgo.GuildMemberAdd{Member: &discordgo.Member{
		GuildID: "1", User: &discordgo.User{ID: "175928847299117063", Username: "alice"},
	}}, now)
	if !ok {
		t.Fatalf("expected event")
	}
	if _, ok := field(ev, events.LabelCreatedAt); !ok {
		t.Fatalf("expected account creation time")
	}
}

func TestAutomodAction(t *testing.T) {
	ev, ok := AutomodAction(&discordgo.AutoModerationActionExecution{
		GuildID: "1", UserID: "10", ChannelID: "5", RuleID: "3",
		Action:         discordgo.AutoModerationAction{Type: discordgo.AutoModerationRuleActionBlockMessage},
		MatchedKeyword: "spam",
	}, now)
	if !ok || ev.Kind.Category() != "automod" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if v, _ := field(ev, events.LabelAction); v != "block_message" {
		t.Fatalf("unexpected action %q", v)
	}
}

func TestInviteCreate(t *testing.T) {
	ev, ok := InviteCreate(&discordgo.InviteCreate{
		Invite:    &discordgo.Invite{Code: "abc", Inviter: &discordgo.User{ID: "10"}, CreatedAt: now, MaxAge: 3600},
		ChannelID: "5",
		GuildID:   "1",
	}, now)
	if !ok || ev.Actor.ID != 10 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if v, _ := field(ev, events.LabelUntil); v != "<t:1700003600:F>" {
		t.Fatalf("unexpected expiry %q", v)
	}
}

func TestTypingStart(t *testing.T) {
	ev, ok := TypingStart(&discordgo.TypingStart{UserID: "10", ChannelID: "5", GuildID: "1", Timestamp: 1700000100}, now)
	if !ok || ev.Kind != events.TypingStart || ev.Kind.Category() != flagset.CategoryMessage {
		t.Fatalf("unexpected event %+v ok=%v", ev, ok)
	}
	if ev.GuildID != 1 || ev.Actor.ID != 10 {
		t.Fatalf("unexpected ids %+v", ev)
	}
	if !ev.OccurredAt.Equal(time.Unix(1700000100, 0)) {
		t.Fatalf("unexpected time %v", ev.OccurredAt)
	}
	if v, _ := field(ev, events.LabelChannel); v == "" {
		t.Fatal("missing channel field")
	}
	if _, ok := TypingStart(&discordgo.TypingStart{ChannelID: "5", GuildID: "1"}, now); ok {
		t.Fatal("typing without a user should be skipped")
	}
}

func TestRawStickersUpdate(t *testing.T) {
	raw := &discordgo.Event{
		Type:    "GUILD_STICKERS_UPDATE",
		RawData: []byte(`{"guild_id":"1","stickers":[{"id":"7","name":"wave"},{"id":"8","name":"cat"}]}`),
	}
	ev, ok := Raw(raw, now)
	if !ok || ev.Kind != events.StickersUpdate || ev.Kind.Category() != flagset.CategoryServer {
		t.Fatalf("unexpected event %+v ok=%v", ev, ok)
	}
	if ev.GuildID != 1 {
		t.Fatalf("unexpected guild %d", ev.GuildID)
	}
	if v, _ := field(ev, events.LabelCount); v != "2" {
		t.Fatalf("unexpected count %q", v)
	}
	if v, _ := field(ev, events.LabelStickers); v != "wave, cat" {
		t.Fatalf("unexpected stickers %q", v)
	}
}

func TestRawReactionClearEmoji(t *testing.T) {
	raw := &discordgo.Event{
		Type:    "MESSAGE_REACTION_REMOVE_EMOJI",
		RawData: []byte(`{"guild_id":"1","channel_id":"5","message_id":"99","emoji":{"name":"👍"}}`),
	}
	ev, ok := Raw(raw, now)
	if !ok || ev.Kind != events.ReactionClearEmoji || ev.Kind.Category() != flagset.CategoryMessage {
		t.Fatalf("unexpected event %+v ok=%v", ev, ok)
	}
	if v, _ := field(ev, events.LabelEmoji); v != "👍" {
		t.Fatalf("unexpected emoji %q", v)
	}
	if v, _ := field(ev, events.LabelMessage); v != "99" {
		t.Fatalf("unexpected message %q", v)
	}
}

func TestRawSkipsUnknownAndMalformed(t *testing.T) {
	cases := []*discordgo.Event{
		nil,
		{Type: "PRESENCE_UPDATE", RawData: []byte(`{"guild_id":"1"}`)},
		{Type: "GUILD_STICKERS_UPDATE", RawData: []byte(`{not json`)},
		{Type: "GUILD_STICKERS_UPDATE", RawData: []byte(`{"stickers":[]}`)},
		{Type: "MESSAGE_REACTION_REMOVE_EMOJI"},
	}
	for i, c := range cases {
		if _, ok := Raw(c, now); ok {
			t.Fatalf("case %d: expected skip", i)
		}
	}
}
