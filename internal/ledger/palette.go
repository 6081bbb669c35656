package ledger

import "fmt"

// Palette is the fixed set of display colors handed out in join order
var Palette = []string{
	"#F15C49", "#F7B733", "#4ABDAC", "#7E57C2",
	"#29B6F6", "#66BB6A", "#EC407A", "#FFA726",
	"#26A69A", "#8D6E63", "#5C6BC0", "#D4E157",
	"#AB47BC", "#78909C", "#FF7043", "#9CCC65",
}

// ColorFor returns the color for the index-th participant of a round. Past the palette it
// walks hues in steps of 137 degrees (coprime with 360) and shifts lightness every full turn,
// so the first MaxDistinctColors indexes never collide.
func ColorFor(index int) string {
	if index < len(Palette) {
		return Palette[index]
	}
	n := index - len(Palette)
	hue := (n * HueStep) % 360
	lightness := BaseLightness + LightnessStep*((n/360)%LightnessBands)
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, Saturation, lightness)
}
