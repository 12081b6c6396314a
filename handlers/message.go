package handlers

import (
	"context"
	"strings"
	"unicode/utf8"

	"Lumen/commands"
	"Lumen/session"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// maxMessageLength is Discord's limit for a single message
const maxMessageLength = 2000

// Router maps channel messages to per-channel sessions
type Router struct {
	Commands *commands.Commands
	Sessions *session.Manager
	Prefix   string
}

// Route returns the response for a message, false when the message is not addressed to the bot.
// A channel with a pending search treats its next message as the selection.
func (r *Router) Route(ctx context.Context, channelID, content string) (*commands.Response, bool) {
	if sess, exists := r.Sessions.Lookup(channelID); exists {
		pending := false
		sess.Do(func() {
			pending = sess.HasPending()
		})
		if pending {
			return r.Commands.Handle(ctx, sess, strings.TrimPrefix(content, r.Prefix)), true
		}
	}

	if len(content) == 0 || len(r.Prefix) == 0 || !strings.HasPrefix(content, r.Prefix) {
		return nil, false
	}
	line := strings.TrimSpace(strings.TrimPrefix(content, r.Prefix))
	if line == "" {
		return &commands.Response{Lines: []string{"type `" + r.Prefix + "help` to open help menu."}}, true
	}

	sess := r.Sessions.Get(ctx, channelID)
	return r.Commands.Handle(ctx, sess, line), true
}

// NewMessageHandler returns the discordgo handler for prefixed text commands
func NewMessageHandler(cmds *commands.Commands, sessions *session.Manager) func(*discordgo.Session, *discordgo.MessageCreate) {
	router := &Router{
		Commands: cmds,
		Sessions: sessions,
		Prefix:   viper.GetString("prefix"),
	}

	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// If message is sent from the bot
		if m.Author == nil || m.Author.ID == s.State.User.ID {
			return
		}

		ctx := context.WithValue(context.Background(), log.Key, log.Fields{
			"author_id":  m.Author.ID,
			"channel_id": m.ChannelID,
			"guild_id":   m.GuildID,
			"user":       m.Author.Username,
		})

		if isHelp(m.Content, router.Prefix) {
			HelpEmbedding(s, m, cmds)
			return
		}

		resp, ok := router.Route(ctx, m.ChannelID, m.Content)
		if !ok || len(resp.Lines) == 0 {
			return
		}
		for _, chunk := range chunkLines(resp.Lines, maxMessageLength) {
			if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
				log.WithError(err).Error("Failed to send reply")
				return
			}
		}
	}
}

func isHelp(content, prefix string) bool {
	return prefix != "" && strings.EqualFold(strings.TrimSpace(content), prefix+"help")
}

// chunkLines joins lines into messages no longer than limit, splitting only between lines
// unless a single line is itself too long
func chunkLines(lines []string, limit int) []string {
	var chunks []string
	var b strings.Builder
	for _, line := range lines {
		for len(line) > limit {
			if b.Len() > 0 {
				chunks = append(chunks, b.String())
				b.Reset()
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if b.Len() > 0 && b.Len()+1+len(line) > limit {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
