package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/JackpotEngine_Go/internal/domain"
	"github.com/osse101/JackpotEngine_Go/internal/event"
	"github.com/osse101/JackpotEngine_Go/internal/logger"
	"github.com/osse101/JackpotEngine_Go/internal/metrics"
	"github.com/osse101/JackpotEngine_Go/internal/worker"
)

// MessageSender is the slice of *discordgo.Session the announcer needs
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NewSession creates a REST-only discordgo session. No gateway connection is opened.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New(BotTokenPrefix + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return s, nil
}

// Announcer posts draw and result announcements to one channel. Sends run on a worker
// pool so bus handlers return immediately.
type Announcer struct {
	sender    MessageSender
	channelID string
	pool      *worker.Pool
	printer   *message.Printer
	now       func() time.Time
}

// NewAnnouncer creates an announcer. Pot values are formatted for locale.
func NewAnnouncer(sender MessageSender, channelID, locale string, pool *worker.Pool) *Announcer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Announcer{
		sender:    sender,
		channelID: channelID,
		pool:      pool,
		printer:   message.NewPrinter(tag),
		now:       time.Now,
	}
}

// Subscribe registers the announcer for the events it posts about
func (a *Announcer) Subscribe(bus event.Bus) {
	bus.Subscribe(event.DrawScheduled, a.handleDrawScheduled)
	bus.Subscribe(event.RoundCompleted, a.handleRoundCompleted)
	bus.Subscribe(event.RoundAborted, a.handleRoundAborted)
	logger.FromContext(context.Background()).Info(LogMsgAnnouncerSubscribed, "channel_id", a.channelID)
}

func (a *Announcer) handleDrawScheduled(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.DrawScheduledPayloadV1](evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}
	a.enqueue(ctx, a.DrawEmbed(payload))
	return nil
}

func (a *Announcer) handleRoundCompleted(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.RoundCompletedPayloadV1](evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}
	a.enqueue(ctx, a.CompletedEmbed(payload))
	return nil
}

// Only halts are announced; an empty-pot abort is routine
func (a *Announcer) handleRoundAborted(ctx context.Context, evt event.Event) error {
	payload, err := event.Decode[event.RoundAbortedPayloadV1](evt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}
	if payload.Halted {
		a.enqueue(ctx, a.HaltedEmbed(payload))
	}
	return nil
}

func (a *Announcer) enqueue(ctx context.Context, embed *discordgo.MessageEmbed) {
	ok := a.pool.TryEnqueue(worker.JobFunc(func(ctx context.Context) error {
		if _, err := a.sender.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx)); err != nil {
			metrics.AnnouncementsSent.WithLabelValues(StatusFailed).Inc()
			logger.FromContext(ctx).Error(LogMsgAnnounceFailed, "title", embed.Title, "error", err)
			return nil
		}
		metrics.AnnouncementsSent.WithLabelValues(StatusSent).Inc()
		return nil
	}))
	if !ok {
		metrics.AnnouncementsSent.WithLabelValues(StatusDropped).Inc()
		logger.FromContext(ctx).Warn(LogMsgAnnounceDropped, "title", embed.Title)
	}
}

// FormatCents renders an amount with locale digit grouping
func (a *Announcer) FormatCents(c domain.Cents) string {
	return a.printer.Sprintf("%.2f", float64(c)/100)
}

func displayName(id domain.Identity) string {
	if id.DisplayName != "" {
		return id.DisplayName
	}
	return id.ID
}

// DrawEmbed announces the winner ahead of the synchronized reveal
func (a *Announcer) DrawEmbed(p event.DrawScheduledPayloadV1) *discordgo.MessageEmbed {
	revealIn := time.UnixMilli(p.RevealStartAt).Sub(a.now()).Round(time.Second)
	if revealIn < 0 {
		revealIn = 0
	}
	return &discordgo.MessageEmbed{
		Title: TitleDrawScheduled,
		Color: ColorDraw,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldPot, Value: a.FormatCents(p.TotalValue), Inline: true},
			{Name: FieldTicket, Value: a.printer.Sprintf("%d", p.Ticket), Inline: true},
			{Name: FieldRevealIn, Value: revealIn.String(), Inline: true},
			{Name: FieldRoundHash, Value: "`" + p.RoundHash + "`"},
		},
		Timestamp: time.UnixMilli(p.ServerTime).UTC().Format(time.RFC3339),
	}
}

// CompletedEmbed publishes the result with the revealed seed for verification
func (a *Announcer) CompletedEmbed(p event.RoundCompletedPayloadV1) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: TitleRoundCompleted,
		Color: ColorCompleted,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldWinner, Value: displayName(p.Winner), Inline: true},
			{Name: FieldPot, Value: a.FormatCents(p.TotalValue), Inline: true},
			{Name: FieldPayout, Value: a.FormatCents(p.Payout), Inline: true},
			{Name: FieldCommission, Value: a.FormatCents(p.Commission), Inline: true},
			{Name: FieldTicket, Value: a.printer.Sprintf("%d", p.Proof.Ticket), Inline: true},
			{Name: FieldRoundHash, Value: "`" + p.RoundHash + "`"},
			{Name: FieldServerSeed, Value: "`" + p.Proof.ServerSeed + "`"},
		},
		Timestamp: time.UnixMilli(p.CompletedAt).UTC().Format(time.RFC3339),
	}
}

// HaltedEmbed tells operators the engine stopped after an integrity fault
func (a *Announcer) HaltedEmbed(p event.RoundAbortedPayloadV1) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       TitleRoundHalted,
		Color:       ColorAborted,
		Description: p.Reason,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldRoundHash, Value: "`" + p.RoundHash + "`"},
		},
	}
}
