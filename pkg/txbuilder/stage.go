package txbuilder

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Stage is the lifecycle position of a submission.
type Stage int

const (
	StageBuilt Stage = iota
	StageBlockhashAttached
	StageSigned
	StageBroadcast
	StageConfirmed
	StageRejected
	StageTimedOut
)

func (s Stage) String() string {
	switch s {
	case StageBuilt:
		return "built"
	case StageBlockhashAttached:
		return "blockhash_attached"
	case StageSigned:
		return "signed"
	case StageBroadcast:
		return "broadcast"
	case StageConfirmed:
		return "confirmed"
	case StageRejected:
		return "rejected"
	case StageTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageConfirmed || s == StageRejected || s == StageTimedOut
}

// next lists the forward transitions. Any non-terminal stage may also be rejected.
var next = map[Stage][]Stage{
	StageBuilt:             {StageBlockhashAttached},
	StageBlockhashAttached: {StageSigned},
	StageSigned:            {StageBroadcast},
	StageBroadcast:         {StageConfirmed, StageTimedOut},
}

func canTransition(from, to Stage) bool {
	if from.Terminal() {
		return false
	}
	if to == StageRejected {
		return true
	}
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Submission tracks one transaction from draft to a terminal stage.
type Submission struct {
	Draft                Draft
	Tx                   *solana.Transaction
	LastValidBlockHeight uint64
	Signature            solana.Signature

	stage Stage
	err   error
}

// Stage returns the current stage.
func (s *Submission) Stage() Stage {
	return s.stage
}

// Err returns the failure that moved the submission to Rejected or TimedOut.
func (s *Submission) Err() error {
	return s.err
}

func (s *Submission) advance(to Stage, cause error) error {
	if !canTransition(s.stage, to) {
		return fmt.Errorf("invalid transition %s -> %s", s.stage, to)
	}
	s.stage = to
	if cause != nil {
		s.err = cause
	}
	return nil
}
