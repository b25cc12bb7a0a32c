package txbuilder

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

// Draft is an unsigned transaction skeleton produced by a protocol client:
// the ordered instructions, the designated fee payer, and every account the
// instructions declare as signer.
type Draft struct {
	FeePayer     solana.PublicKey
	Instructions []solana.Instruction
}

// RequiredSigners lists the fee payer followed by every other signer account,
// in first-seen order.
func (d Draft) RequiredSigners() []solana.PublicKey {
	seen := map[solana.PublicKey]bool{d.FeePayer: true}
	out := []solana.PublicKey{d.FeePayer}
	for _, ix := range d.Instructions {
		for _, meta := range ix.Accounts() {
			if meta.IsSigner && !seen[meta.PublicKey] {
				seen[meta.PublicKey] = true
				out = append(out, meta.PublicKey)
			}
		}
	}
	return out
}

// Append returns a copy of d with extra instructions at the end.
func (d Draft) Append(ixs ...solana.Instruction) Draft {
	out := d
	out.Instructions = append(append([]solana.Instruction{}, d.Instructions...), ixs...)
	return out
}

func (d Draft) validate() error {
	if d.FeePayer.IsZero() {
		return types.ErrNilFeePayer
	}
	if len(d.Instructions) == 0 {
		return types.ErrNoInstructions
	}
	for i, ix := range d.Instructions {
		if ix == nil {
			return fmt.Errorf("instruction %d is nil", i)
		}
	}
	return nil
}
