package fairness

// Seed configuration
const (
	// SeedBytes is the length of a server seed before hex encoding
	SeedBytes = 32

	// TicketBytes is how many leading HMAC bytes form one candidate ticket
	TicketBytes = 8

	// MaxTicketAttempts bounds rejection sampling. Each attempt is rejected with
	// probability below 1/2, so exhausting this is not a realistic outcome.
	MaxTicketAttempts = 128

	// FieldSeparator joins the public inputs fed to the mixing function
	FieldSeparator = ":"
)

// Error context strings
const (
	ErrContextGenerateSeed = "failed to generate server seed"
	ErrContextDecodeSeed   = "failed to decode server seed"
	ErrContextPartition    = "failed to build weight partition"
	ErrContextTicket       = "failed to derive ticket"
)
