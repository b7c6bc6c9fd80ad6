package menu

import "github.com/bwmarrin/discordgo"

const (
	CommandSettings = "setting"
	CommandPing     = "ping"
)

// Commands returns the application commands the bot registers.
func Commands() []*discordgo.ApplicationCommand {
	manage := int64(discordgo.PermissionManageGuild)
	noDM := false
	return []*discordgo.ApplicationCommand{
		{
			Name:                     CommandSettings,
			Description:              "Open the logging settings",
			DescriptionLocalizations: &map[discordgo.Locale]string{discordgo.Russian: "Открыть настройки логирования"},
			DefaultMemberPermissions: &manage,
			DMPermission:             &noDM,
		},
		{
			Name:                     CommandPing,
			Description:              "Check the bot latency",
			DescriptionLocalizations: &map[discordgo.Locale]string{discordgo.Russian: "Проверить задержку бота"},
			DMPermission:             &noDM,
		},
	}
}
