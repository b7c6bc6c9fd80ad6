package events

import "guild-logger/internal/flagset"

// Kind identifies one loggable gateway event.
type Kind int

const (
	KindUnknown Kind = iota

	MessageCreate
	MessageEdit
	MessageDelete
	MessageBulkDelete
	ReactionAdd
	ReactionRemove
	ReactionClear
	ReactionClearEmoji
	TypingStart

	VoiceJoin
	VoiceLeave
	VoiceMove
	VoiceMute
	VoiceUnmute
	VoiceDeafen
	VoiceUndeafen
	StageCreate
	StageUpdate
	StageDelete

	GuildUpdate
	ChannelCreate
	ChannelUpdate
	ChannelDelete
	ThreadCreate
	ThreadUpdate
	ThreadDelete
	ThreadMembersUpdate
	EmojisUpdate
	StickersUpdate
	WebhooksUpdate
	RoleCreate
	RoleUpdate
	RoleDelete

	MemberJoin
	MemberLeave
	MemberUpdate
	MemberBan
	MemberUnban
	MemberTimeout
	MemberTimeoutRemove

	InviteCreate
	InviteDelete

	AutomodRuleCreate
	AutomodRuleUpdate
	AutomodRuleDelete
	AutomodAction

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:         "unknown",
	MessageCreate:       "message_create",
	MessageEdit:         "message_edit",
	MessageDelete:       "message_delete",
	MessageBulkDelete:   "message_bulk_delete",
	ReactionAdd:         "reaction_add",
	ReactionRemove:      "reaction_remove",
	ReactionClear:       "reaction_clear",
	ReactionClearEmoji:  "reaction_clear_emoji",
	TypingStart:         "typing_start",
	VoiceJoin:           "voice_join",
	VoiceLeave:          "voice_leave",
	VoiceMove:           "voice_move",
	VoiceMute:           "voice_mute",
	VoiceUnmute:         "voice_unmute",
	VoiceDeafen:         "voice_deafen",
	VoiceUndeafen:       "voice_undeafen",
	StageCreate:         "stage_create",
	StageUpdate:         "stage_update",
	StageDelete:         "stage_delete",
	GuildUpdate:         "guild_update",
	ChannelCreate:       "channel_create",
	ChannelUpdate:       "channel_update",
	ChannelDelete:       "channel_delete",
	ThreadCreate:        "thread_create",
	ThreadUpdate:        "thread_update",
	ThreadDelete:        "thread_delete",
	ThreadMembersUpdate: "thread_members_update",
	EmojisUpdate:        "emojis_update",
	StickersUpdate:      "stickers_update",
	WebhooksUpdate:      "webhooks_update",
	RoleCreate:          "role_create",
	RoleUpdate:          "role_update",
	RoleDelete:          "role_delete",
	MemberJoin:          "member_join",
	MemberLeave:         "member_leave",
	MemberUpdate:        "member_update",
	MemberBan:           "member_ban",
	MemberUnban:         "member_unban",
	MemberTimeout:       "member_timeout",
	MemberTimeoutRemove: "member_timeout_remove",
	InviteCreate:        "invite_create",
	InviteDelete:        "invite_delete",
	AutomodRuleCreate:   "automod_rule_create",
	AutomodRuleUpdate:   "automod_rule_update",
	AutomodRuleDelete:   "automod_rule_delete",
	AutomodAction:       "automod_action",
}

// AllKinds lists every kind the gateway adapters can produce.
func AllKinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Category maps k to the log category that gates it.
// Every kind in AllKinds must have a mapping; an empty result is a programming error.
func (k Kind) Category() flagset.Category {
	switch k {
	case MessageCreate, MessageEdit, MessageDelete, MessageBulkDelete,
		ReactionAdd, ReactionRemove, ReactionClear, ReactionClearEmoji, TypingStart:
		return flagset.CategoryMessage
	case VoiceJoin, VoiceLeave, VoiceMove, VoiceMute, VoiceUnmute, VoiceDeafen, VoiceUndeafen,
		StageCreate, StageUpdate, StageDelete:
		return flagset.CategoryVoice
	case GuildUpdate, ChannelCreate, ChannelUpdate, ChannelDelete,
		ThreadCreate, ThreadUpdate, ThreadDelete, ThreadMembersUpdate,
		EmojisUpdate, StickersUpdate, WebhooksUpdate, RoleCreate, RoleUpdate, RoleDelete:
		return flagset.CategoryServer
	case MemberJoin, MemberLeave, MemberUpdate, MemberBan, MemberUnban,
		MemberTimeout, MemberTimeoutRemove:
		return flagset.CategoryUser
	case InviteCreate, InviteDelete:
		return flagset.CategoryInvite
	case AutomodRuleCreate, AutomodRuleUpdate, AutomodRuleDelete, AutomodAction:
		return flagset.CategoryAutomod
	default:
		return ""
	}
}
