package handlers

import (
	"strings"

	"Lumen/commands"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// HelpEmbedding creates the embedding for the help menu
func HelpEmbedding(s *discordgo.Session, m *discordgo.MessageCreate, cmds *commands.Commands) {
	botAvatarURL := s.State.User.AvatarURL("64")
	helpEmbed := &discordgo.MessageEmbed{
		Title:       "Lumen Help",
		Description: helpDescription(cmds, viper.GetString("prefix")),
		Color:       viper.GetInt("theme"),
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: botAvatarURL,
		},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, helpEmbed); err != nil {
		log.WithError(err).Error("Failed to send help embed")
	}
}

func helpDescription(cmds *commands.Commands, prefix string) string {
	var lines []string
	for _, com := range cmds.All() {
		lines = append(lines, "`"+prefix+strings.ToLower(com.Synopsis())+"` "+com.Description)
	}
	return strings.Join(lines, "\n")
}
