package menu

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"guild-logger/internal/flagset"
	"guild-logger/internal/i18n"
	"guild-logger/internal/render"
	"guild-logger/internal/settings"
)

type Page string

const (
	PageMain    Page = "main"
	PageLogging Page = "logging"
	PageDetails Page = "details"
)

// ChannelState describes the configured log channel as the menu shows it.
type ChannelState int

const (
	ChannelUnset ChannelState = iota
	ChannelFound
	ChannelMissing
)

// View is everything a page needs. Building it does the I/O; Render does none.
type View struct {
	GuildName string
	Version   string
	Config    settings.ServerConfig
	Channel   ChannelState
	// SourceURL adds a link button to the main page when set.
	SourceURL string
}

func (v View) lang() i18n.Language { return v.Config.Language.OrDefault() }

// languageNames are shown in their own language on purpose.
var languageNames = map[i18n.Language]string{
	i18n.English: "English",
	i18n.Russian: "Русский",
}

var categoryEmoji = map[flagset.Category]string{
	flagset.CategoryMessage: "📝",
	flagset.CategoryInvite:  "📩",
	flagset.CategoryServer:  "🏰",
	flagset.CategoryVoice:   "🎤",
	flagset.CategoryAutomod: "🛡️",
	flagset.CategoryUser:    "👥",
}

// Render builds the embed and components of a page. It is called after every mutation.
func Render(p Page, v View) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	switch p {
	case PageLogging:
		return renderLogging(v)
	case PageDetails:
		return renderDetails(v)
	default:
		return renderMain(v)
	}
}

func renderMain(v View) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	lang := v.lang()
	e := &discordgo.MessageEmbed{
		Title:       i18n.Lookup(lang, "menu.main.title"),
		Description: i18n.Lookup(lang, "menu.main.description"),
		Color:       render.ColorDefault,
	}
	if v.GuildName != "" {
		e.Author = &discordgo.MessageEmbedAuthor{Name: v.GuildName}
	}
	if v.Version != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name: i18n.Lookup(lang, "menu.main.version"), Value: v.Version, Inline: true,
		})
	}
	row := []discordgo.MessageComponent{
		discordgo.Button{Label: i18n.Lookup(lang, "menu.button.settings"), Style: discordgo.PrimaryButton, CustomID: customID(actionSettings)},
	}
	if v.SourceURL != "" {
		row = append(row, discordgo.Button{Label: i18n.Lookup(lang, "menu.button.source"), Style: discordgo.LinkButton, URL: v.SourceURL})
	}
	return e, []discordgo.MessageComponent{discordgo.ActionsRow{Components: row}}
}

func renderLogging(v View) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	lang := v.lang()
	cfg := v.Config

	status := i18n.Lookup(lang, "menu.status.off")
	if cfg.LoggingEnabled {
		status = i18n.Lookup(lang, "menu.status.on")
	}
	channel := i18n.Lookup(lang, "menu.channel.unset")
	switch {
	case cfg.LogChannelID == 0:
	case v.Channel == ChannelMissing:
		channel = i18n.Lookup(lang, "menu.channel.missing")
	default:
		channel = fmt.Sprintf("<#%d>", cfg.LogChannelID)
	}

	e := &discordgo.MessageEmbed{
		Title:       i18n.Lookup(lang, "menu.logging.title"),
		Description: i18n.Lookup(lang, "menu.logging.description"),
		Color:       render.ColorDefault,
		Fields: []*discordgo.MessageEmbedField{
			{Name: i18n.Lookup(lang, "menu.logging.status"), Value: status},
			{Name: i18n.Lookup(lang, "menu.logging.channel"), Value: channel},
			{Name: i18n.Lookup(lang, "menu.logging.language"), Value: languageNames[lang]},
		},
	}

	one := 1
	channelSelect := discordgo.SelectMenu{
		MenuType:     discordgo.ChannelSelectMenu,
		CustomID:     customID(actionChannel),
		Placeholder:  i18n.Lookup(lang, "menu.select.channel"),
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		MinValues:    &one,
		MaxValues:    1,
	}

	options := make([]discordgo.SelectMenuOption, 0, len(i18n.Supported()))
	for _, l := range i18n.Supported() {
		options = append(options, discordgo.SelectMenuOption{Label: languageNames[l], Value: string(l), Default: l == lang})
	}
	languageSelect := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    customID(actionLanguage),
		Placeholder: i18n.Lookup(lang, "menu.select.language"),
		Options:     options,
	}

	toggle := discordgo.Button{Label: i18n.Lookup(lang, "menu.button.enable"), Style: discordgo.SuccessButton, CustomID: customID(actionToggle)}
	if cfg.LoggingEnabled {
		toggle = discordgo.Button{Label: i18n.Lookup(lang, "menu.button.disable"), Style: discordgo.DangerButton, CustomID: customID(actionToggle)}
	}
	buttons := []discordgo.MessageComponent{toggle}
	if cfg.LoggingEnabled {
		buttons = append(buttons, discordgo.Button{Label: i18n.Lookup(lang, "menu.button.details"), Style: discordgo.SecondaryButton, CustomID: customID(actionDetails)})
	}
	buttons = append(buttons, backButton(lang, PageMain))

	return e, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{channelSelect}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{languageSelect}},
		discordgo.ActionsRow{Components: buttons},
	}
}

// buttonsPerRow keeps the category grid at two rows of three.
const buttonsPerRow = 3

func renderDetails(v View) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	lang := v.lang()
	e := &discordgo.MessageEmbed{
		Title:       i18n.Lookup(lang, "menu.details.title"),
		Description: i18n.Lookup(lang, "menu.details.description"),
		Color:       render.ColorDefault,
	}

	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for _, c := range flagset.Categories() {
		on := flagset.IsEnabled(v.Config.LogTypes, c)
		name := i18n.Lookup(lang, "category."+string(c))
		mark := "❌"
		style := discordgo.DangerButton
		if on {
			mark = "✅"
			style = discordgo.SuccessButton
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s %s", mark, categoryEmoji[c], name),
			Value: i18n.Lookup(lang, "category."+string(c)+".desc"),
		})
		row = append(row, discordgo.Button{Label: name, Style: style, CustomID: customID(actionCategory, string(c))})
		if len(row) == buttonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{backButton(lang, PageLogging)}})
	return e, rows
}

func backButton(lang i18n.Language, to Page) discordgo.Button {
	return discordgo.Button{Label: i18n.Lookup(lang, "menu.button.back"), Style: discordgo.SecondaryButton, CustomID: customID(actionBack, string(to))}
}
