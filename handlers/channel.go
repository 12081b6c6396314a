package handlers

import (
	"context"
	"time"

	"Lumen/session"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
)

// NewChannelDeleteHandler saves and drops the session of a deleted channel
func NewChannelDeleteHandler(sessions *session.Manager) func(*discordgo.Session, *discordgo.ChannelDelete) {
	return func(s *discordgo.Session, c *discordgo.ChannelDelete) {
		if c.Channel == nil {
			return
		}
		if _, exists := sessions.Lookup(c.ID); !exists {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sessions.Delete(ctx, c.ID)

		log.WithFields(log.Fields{
			"channel_id": c.ID,
			"guild_id":   c.GuildID,
			"sessions":   sessions.Len(),
		}).Info("Closed session of deleted channel")
	}
}
