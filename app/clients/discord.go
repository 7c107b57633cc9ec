package clients

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const discordMessageLimit = 2000

var _ Interface = &DiscordClient{}

// DiscordClient answers customs-duty questions posted in a Discord channel.
// When channel_id is set only that channel is watched.
type DiscordClient struct {
	session   *discordgo.Session
	assistant Answerer
	channelID string
}

func NewDiscordClientFromConfig(cfg map[string]string) (*DiscordClient, error) {
	token := cfg["token"]
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, errors.New("discord token is not configured")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	dc := &DiscordClient{
		session:   session,
		channelID: cfg["channel_id"],
	}

	session.AddHandler(dc.onMessageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages

	return dc, nil
}

func (c *DiscordClient) Subscribe(a Answerer) error {
	c.assistant = a
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	log.Printf("🔌 Discord client connected")
	return nil
}

func (c *DiscordClient) Close() error {
	return c.session.Close()
}

func (c *DiscordClient) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if c.channelID != "" && m.ChannelID != c.channelID {
		return
	}

	query := strings.TrimSpace(m.Content)
	if query == "" {
		return
	}

	answer, err := c.assistant.Answer(context.Background(), query)
	if err != nil {
		log.Printf("❌ Discord answer failed: %v", err)
		answer = "Something went wrong while answering, please try again."
	}

	for _, part := range splitMessage(answer, discordMessageLimit) {
		if _, err := s.ChannelMessageSend(m.ChannelID, part); err != nil {
			log.Printf("⚠️ Error sending Discord message: %v", err)
			return
		}
	}
}

// splitMessage cuts a message into rune-safe pieces below Discord's length
// limit.
func splitMessage(s string, limit int) []string {
	runes := []rune(s)
	var parts []string
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
