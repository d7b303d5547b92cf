package systems

import (
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Notification tags broadcast to cameras, HUDs and the network layer.
const (
	NotifySwing      = "Swing"
	NotifyHit        = "Hit"
	NotifyBlock      = "Block"
	NotifyParry      = "Parry"
	NotifyParried    = "Parried"
	NotifyGuardBreak = "GuardBreak"
	NotifyDeath      = "Death"
	NotifyRevive     = "Revive"
	NotifyCounter    = "Counter"
	NotifySkill      = "Skill"
)

// Notification is a fire-and-forget combat event. Target is the zero entity
// when the event concerns only Source.
type Notification struct {
	Tag    string
	Source donburi.Entity
	Target donburi.Entity
	Amount float64
	At     time.Duration
}

var NotificationEvent = events.NewEventType[Notification]()

// Publish queues a notification for delivery at the end of the tick. It never
// blocks and is silent when nobody listens.
func Publish(w donburi.World, tag string, source, target donburi.Entity, amount float64) {
	NotificationEvent.Publish(w, Notification{
		Tag:    tag,
		Source: source,
		Target: target,
		Amount: amount,
		At:     Now(w),
	})
}

// FlushNotifications delivers queued notifications to subscribers.
func FlushNotifications(w donburi.World) {
	NotificationEvent.ProcessEvents(w)
}
