package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/channels"
)

// ChannelAPI is the REST subset used to fetch channels. *discordgo.Session satisfies it.
type ChannelAPI interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// StateStore is the gateway cache subset. *discordgo.State satisfies it.
type StateStore interface {
	Channel(channelID string) (*discordgo.Channel, error)
}

// ChannelSource serves the resolver: local lookups from gateway state, remote fetches over REST.
type ChannelSource struct {
	API   ChannelAPI
	State StateStore
}

func NewChannelSource(s *discordgo.Session) ChannelSource {
	return ChannelSource{API: s, State: s.State}
}

func (c ChannelSource) LookupChannel(id int64) (channels.Channel, bool) {
	if c.State == nil || id == 0 {
		return channels.Channel{}, false
	}
	ch, err := c.State.Channel(strconv.FormatInt(id, 10))
	if err != nil || ch == nil {
		return channels.Channel{}, false
	}
	return toChannel(ch), true
}

// FetchChannel returns channels.ErrNotFound (wrapped) when Discord answers 404 or 403:
// the channel is gone or the bot can no longer see it.
func (c ChannelSource) FetchChannel(ctx context.Context, id int64) (channels.Channel, error) {
	if c.API == nil {
		return channels.Channel{}, errors.New("discord: channel api not configured")
	}
	ch, err := c.API.Channel(strconv.FormatInt(id, 10), discordgo.WithContext(ctx))
	if err != nil {
		if isGone(err) {
			return channels.Channel{}, fmt.Errorf("%w: %d", channels.ErrNotFound, id)
		}
		return channels.Channel{}, fmt.Errorf("discord: fetch channel %d: %w", id, err)
	}
	return toChannel(ch), nil
}

func isGone(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return false
	}
	if rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusNotFound, http.StatusForbidden:
			return true
		}
	}
	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeMissingAccess:
			return true
		}
	}
	return false
}

func toChannel(ch *discordgo.Channel) channels.Channel {
	id, _ := strconv.ParseInt(ch.ID, 10, 64)
	gid, _ := strconv.ParseInt(ch.GuildID, 10, 64)
	return channels.Channel{ID: id, GuildID: gid, Name: ch.Name}
}
