package network

import (
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/messages"
)

const commandLogSize = 64

// CommandLog is a ring buffer of recently sent commands, kept until the
// server reports their sequence as applied. The zero value is ready to use;
// sequences start at 1 so 0 can mean "nothing applied yet".
type CommandLog struct {
	history [commandLogSize]messages.CommandInput
	nextSeq uint32
}

// Next assigns the next sequence to a command and records it.
func (l *CommandLog) Next(action config.ActionID, pressed bool) messages.CommandInput {
	if l.nextSeq == 0 {
		l.nextSeq = 1
	}
	input := messages.CommandInput{Sequence: l.nextSeq, Action: action, Pressed: pressed}
	l.history[input.Sequence%commandLogSize] = input
	l.nextSeq++
	return input
}

// Get retrieves a stored command by sequence number. Returns false if not
// found or if the slot has been overwritten.
func (l *CommandLog) Get(seq uint32) (messages.CommandInput, bool) {
	input := l.history[seq%commandLogSize]
	if seq == 0 || input.Sequence != seq {
		return messages.CommandInput{}, false
	}
	return input, true
}

// NextSeq returns the sequence the next command will get.
func (l *CommandLog) NextSeq() uint32 {
	if l.nextSeq == 0 {
		return 1
	}
	return l.nextSeq
}

// Unacknowledged returns all stored commands with sequence numbers greater
// than lastApplied, oldest first.
func (l *CommandLog) Unacknowledged(lastApplied uint32) []messages.CommandInput {
	var results []messages.CommandInput
	for seq := lastApplied + 1; seq < l.NextSeq(); seq++ {
		if input, ok := l.Get(seq); ok {
			results = append(results, input)
		}
	}
	return results
}
