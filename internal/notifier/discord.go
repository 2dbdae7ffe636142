package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
)

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCancelled = "cancelled"
)

type Notifier interface {
	NotifyBooking(action string, booking models.Booking) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordSession opens a bot session for the given token.
func NewDiscordSession(botToken string) (*discordgo.Session, error) {
	if botToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	return discordgo.New("Bot " + botToken)
}

func (n *DiscordNotifier) NotifyBooking(action string, booking models.Booking) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, FormatBooking(action, booking))
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) NotifyBooking(action string, booking models.Booking) error {
	log.Printf("Booking %d %s (room %d, %s - %s)", booking.ID, action, booking.RoomID,
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"))
	return nil
}

func FormatBooking(action string, booking models.Booking) string {
	hotel, room := "?", "?"
	if booking.Room != nil {
		room = booking.Room.Number
		if booking.Room.Hotel != nil {
			hotel = booking.Room.Hotel.Name
		}
	}

	commentStr := ""
	if booking.Comment != "" {
		commentStr = fmt.Sprintf("\n**Comment:** %s", booking.Comment)
	}

	return fmt.Sprintf("🛎️ **Booking %s**\n**Reference:** %s\n**Hotel:** %s\n**Room:** %s\n**Dates:** %s - %s\n**Guests:** %d%s",
		action,
		booking.Reference,
		hotel,
		room,
		booking.StartDate.Format("2006-01-02"),
		booking.EndDate.Format("2006-01-02"),
		booking.PartySize,
		commentStr,
	)
}
