package discord

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/channels"
	"guild-logger/internal/render"
)

// MessageAPI is the REST subset used to post log entries. *discordgo.Session satisfies it.
type MessageAPI interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sink posts rendered log entries as embeds. Mentions inside entries never ping.
type Sink struct {
	API MessageAPI
}

func (s Sink) Send(ctx context.Context, ch channels.Channel, msg render.Message) error {
	if s.API == nil {
		return errors.New("discord: message api not configured")
	}
	_, err := s.API.ChannelMessageSendComplex(strconv.FormatInt(ch.ID, 10), &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{Embed(msg)},
		AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}},
	}, discordgo.WithContext(ctx))
	return err
}

// Embed converts a rendered message into a Discord embed.
func Embed(msg render.Message) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Description,
		Color:       msg.Color,
	}
	if !msg.Timestamp.IsZero() {
		e.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	}
	if msg.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: msg.Footer}
	}
	return e
}
