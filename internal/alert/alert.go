package alert

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

const (
	smtpGmailHost = "smtp.gmail.com"
	smtpGmailPort = 587

	senderName = "PetConnect Moderation"
)

// Report is a content report as shown to moderators.
type Report struct {
	ContentKind string // "post" or "comment"
	ContentID   string
	ReporterID  string
	Reason      string
	ReportedAt  time.Time
}

// Service pushes new content reports to the moderator Discord channel and
// mailbox. Delivery is best-effort on every channel; the report row itself is
// already persisted when an alert goes out.
type Service struct {
	discord          *discordgo.Session
	discordChannelID string

	mailClient   *mail.Client
	mailUsername string
	moderatorTo  string
}

func NewService(discordBotToken, discordChannelID, smtpUsername, smtpPassword, moderatorEmail string) (*Service, error) {
	s := &Service{
		discordChannelID: discordChannelID,
		mailUsername:     smtpUsername,
		moderatorTo:      moderatorEmail,
	}

	if discordBotToken != "" {
		discord, err := discordgo.New("Bot " + discordBotToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		s.discord = discord
	}

	if smtpUsername != "" && smtpPassword != "" {
		client, err := mail.NewClient(smtpGmailHost, mail.WithPort(smtpGmailPort), mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtpUsername), mail.WithPassword(smtpPassword))
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP client: %w", err)
		}
		s.mailClient = client
	}

	return s, nil
}

// NotifyReport fans the report out to every configured moderator channel.
func (s *Service) NotifyReport(report Report) {
	message := FormatReport(report, time.Now())

	if s.discord != nil && s.discordChannelID != "" {
		if _, err := s.discord.ChannelMessageSend(s.discordChannelID, message); err != nil {
			log.Err(err).Str("content_id", report.ContentID).Msg("alert: failed to send Discord report alert")
		}
	}

	if s.mailClient != nil && s.moderatorTo != "" {
		if err := s.sendMail(report, message); err != nil {
			log.Err(err).Str("content_id", report.ContentID).Msg("alert: failed to send email report alert")
		}
	}
}

func (s *Service) sendMail(report Report, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(senderName, s.mailUsername); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}
	if err := msg.To(s.moderatorTo); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}
	msg.Subject(fmt.Sprintf("New %s report (%s)", report.ContentKind, report.ContentID))
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.mailClient.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// FormatReport renders the one-line alert shared by Discord and email.
func FormatReport(report Report, now time.Time) string {
	return fmt.Sprintf("Reported %s %s | reporter: %s | reason: %s | %s",
		report.ContentKind,
		report.ContentID,
		report.ReporterID,
		report.Reason,
		humanize.RelTime(report.ReportedAt, now, "ago", "from now"),
	)
}
