package main

import (
	"fmt"
	"time"

	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/network"
	"github.com/automoto/doomerang-combat/shared/protocol"
	"go.uber.org/zap"
)

const (
	joinTimeout = 5 * time.Second

	// pendingWarnThreshold is how many unapplied commands we tolerate before
	// warning that the server has stopped consuming input.
	pendingWarnThreshold = 8
)

// remoteScript is the button pattern the scripted player loops through.
var remoteScript = []struct {
	action  config.ActionID
	pressed bool
}{
	{config.ActionMoveRight, true},
	{config.ActionMoveRight, false},
	{config.ActionAttack, true},
	{config.ActionAttack, false},
	{config.ActionAttack, true},
	{config.ActionAttack, false},
	{config.ActionBlock, true},
	{config.ActionBlock, false},
}

// runRemote joins a server, plays remoteScript for duration and logs the
// notifications the server broadcasts.
func runRemote(logger *zap.Logger, address, name, profile string, duration time.Duration) error {
	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("registering components: %w", err)
	}

	client := network.NewClient(logger.Named("client"))
	client.Connect(address, name, profile)
	defer client.Disconnect()

	deadline := time.Now().Add(joinTimeout)
	for client.State() != network.StateJoined {
		if err := client.LastError(); err != nil {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("no join response from %s within %s (state %s)", address, joinTimeout, client.State())
		}
		time.Sleep(50 * time.Millisecond)
	}
	logger.Info("playing", zap.String("actor", client.ActorID()))

	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()
	stop := time.After(duration)
	for i := 0; ; i++ {
		select {
		case <-stop:
			return nil
		case <-ticker.C:
		}
		step := remoteScript[i%len(remoteScript)]
		if err := client.SendCommand(step.action, step.pressed); err != nil {
			return fmt.Errorf("sending command: %w", err)
		}
		if snap := client.LatestSnapshot(); snap != nil {
			if applied, ok := client.AppliedSequence(*snap); ok {
				pending := client.Unacknowledged(applied)
				if len(pending) >= pendingWarnThreshold {
					logger.Warn("server is behind on commands",
						zap.Uint32("applied", applied),
						zap.Int("pending", len(pending)))
				} else if len(pending) > 0 {
					logger.Debug("commands in flight",
						zap.Uint32("applied", applied),
						zap.Int("pending", len(pending)))
				}
			}
		}
		for _, n := range client.DrainNotifications() {
			logger.Info("notification",
				zap.String("tag", n.Tag),
				zap.Uint("source", n.SourceID),
				zap.Uint("target", n.TargetID),
				zap.Float64("amount", n.Amount))
		}
	}
}
