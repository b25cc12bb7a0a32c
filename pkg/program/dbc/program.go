// Package dbc holds the instruction bindings for the Meteora dynamic bonding
// curve program: Borsh argument layouts, account ordering and PDA helpers.
package dbc

import (
	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
)

// ProgramName is the Anchor program name, as it appears in decoded errors.
const ProgramName = "dynamic_bonding_curve"

var ProgramKey = constants.DBCProgramID
