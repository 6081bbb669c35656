package discord

// Embed colors
const (
	ColorDraw      = 0xF1C40F
	ColorCompleted = 0x2ECC71
	ColorAborted   = 0xE74C3C
)

// Announcement text
const (
	TitleDrawScheduled  = "🎰 Jackpot drawing"
	TitleRoundCompleted = "🏆 Jackpot won"
	TitleRoundHalted    = "⚠️ Jackpot paused"

	FieldWinner     = "Winner"
	FieldPot        = "Pot"
	FieldPayout     = "Payout"
	FieldCommission = "Commission"
	FieldTicket     = "Ticket"
	FieldRevealIn   = "Reveal"
	FieldRoundHash  = "Round"
	FieldServerSeed = "Server seed"
)

// Delivery status label values
const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusDropped = "dropped"
)

// Log messages
const (
	LogMsgAnnouncerSubscribed = "Discord announcer subscribed"
	LogMsgAnnounceFailed      = "Failed to send Discord announcement"
	LogMsgAnnounceDropped     = "Discord announcement dropped, queue full"
	LogMsgUnexpectedPayload   = "Unexpected payload for Discord announcement"
)

// DefaultLocale is used when the configured locale does not parse
const DefaultLocale = "en-US"

// BotTokenPrefix precedes the token in the discordgo authorization header
const BotTokenPrefix = "Bot "
