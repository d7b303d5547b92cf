package messages

// Notification mirrors a combat notification to clients for cameras, VFX and
// HUDs. IDs are NetworkIds; zero means no entity.
type Notification struct {
	Tag      string
	SourceID uint
	TargetID uint
	Amount   float64
	AtMillis int64 // arena time
}
