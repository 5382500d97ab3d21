package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/reso-client/internal/models"
)

// RegistrationNotifier announces a registration the server has accepted.
type RegistrationNotifier interface {
	NotifyRegistration(ctx context.Context, profile models.Profile, req models.RegisterRequest) error
}

type channelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   channelSender
	channelID string
}

// NewDiscordNotifier builds a bot session from token. No connection is
// opened; messages go through the REST API.
func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	if token == "" {
		return nil, errors.New("discord bot token is empty")
	}
	if channelID == "" {
		return nil, errors.New("discord channel ID is empty")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

func (n *DiscordNotifier) NotifyRegistration(ctx context.Context, profile models.Profile, req models.RegisterRequest) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, RegistrationMessage(profile, req), discordgo.WithContext(ctx))
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}

// RegistrationMessage formats the announcement for one registration.
func RegistrationMessage(profile models.Profile, req models.RegisterRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 **New Registration**\n**Event:** %s\n", strings.ToUpper(req.Event))

	who := req.Name
	if profile.Email != "" {
		who = fmt.Sprintf("%s (%s)", req.Name, profile.Email)
	}
	if req.Individual {
		fmt.Fprintf(&b, "**Participant:** %s\n", who)
	} else {
		fmt.Fprintf(&b, "**Team:** %s\n**Registered by:** %s\n", req.TeamName, profile.Name)
		for i, p := range req.Players {
			role := "Member"
			if p.TeamLeader {
				role = "Leader"
			}
			fmt.Fprintf(&b, "%d. %s [%s] %s\n", i+1, p.Name, p.GameID, role)
		}
	}
	fmt.Fprintf(&b, "**Payment ID:** %s (%s)", req.TransactionID, req.BankingName)
	return b.String()
}
