package handlers

import (
	"Lumen/commands"
	"Lumen/session"

	"github.com/bwmarrin/discordgo"
)

// HandlerConfig handles configs for intents and handlers
func HandlerConfig(s *discordgo.Session, cmds *commands.Commands, sessions *session.Manager) {
	s.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds | discordgo.IntentsMessageContent
	s.AddHandler(NewMessageHandler(cmds, sessions))
	s.AddHandler(NewChannelDeleteHandler(sessions))
}
