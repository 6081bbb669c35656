package ledger

// Generated color parameters
const (
	HueStep        = 137
	Saturation     = 65
	BaseLightness  = 40
	LightnessStep  = 5
	LightnessBands = 8

	// MaxDistinctColors is how many participants can join one round with unique colors
	MaxDistinctColors = 16 + 360*LightnessBands
)

// Error context strings
const (
	ErrContextAddContribution = "failed to add contribution"
	ErrContextClaimItems      = "failed to claim items"
)
