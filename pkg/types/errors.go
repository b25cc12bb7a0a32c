package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/program/dbc"
)

// Common SDK errors
var (
	// Parameter validation errors
	ErrNilRPC              = errors.New("rpc client is nil")
	ErrNilSigner           = errors.New("signer is nil")
	ErrNilFeePayer         = errors.New("fee payer is nil")
	ErrNoInstructions      = errors.New("requires at least one instruction")
	ErrMalformedCredential = errors.New("malformed credential")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Transaction errors
	ErrSignerMissing       = errors.New("required signer missing")
	ErrBlockhashExpired    = errors.New("blockhash not found or expired")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrConfirmationTimeout = errors.New("confirmation timeout")
	ErrSimulationFailed    = errors.New("simulation failed")
)

// RPCError wraps RPC failures with operation context.
type RPCError struct {
	Op  string
	Err error
}

func (e RPCError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e RPCError) Unwrap() error {
	return e.Err
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// MissingSignerError names the account whose signature could not be produced.
type MissingSignerError struct {
	Signer string
}

func (e MissingSignerError) Error() string {
	return fmt.Sprintf("missing signer for %s", e.Signer)
}

func (e MissingSignerError) Unwrap() error {
	return ErrSignerMissing
}

// ProgramError is a custom error code returned by an on-chain program,
// decoded from a simulation or preflight failure.
type ProgramError struct {
	Program     string
	Instruction int
	Code        int
	// Account is the Anchor "caused by account" name, if logged.
	Account string
	Message string
	Logs    []string
}

func (e ProgramError) Error() string {
	if e.Program == "" {
		return fmt.Sprintf("program error [%d]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("program %s error [%d]: %s", e.Program, e.Code, e.Message)
}

// SimulationError is any simulation failure that is not a program code.
type SimulationError struct {
	Err  interface{}
	Logs []string
}

func (e SimulationError) Error() string {
	return fmt.Sprintf("simulation failed: %v", e.Err)
}

func (e SimulationError) Unwrap() error {
	return ErrSimulationFailed
}

// ClassifyRPCError wraps err as an RPCError for op and tags blockhash expiry.
func ClassifyRPCError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsBlockhashExpired(err) && !errors.Is(err, ErrBlockhashExpired) {
		err = fmt.Errorf("%w: %v", ErrBlockhashExpired, err)
	}
	return RPCError{Op: op, Err: err}
}

// IsBlockhashExpired reports whether the node rejected a transaction for its blockhash.
func IsBlockhashExpired(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBlockhashExpired) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blockhash not found") ||
		strings.Contains(msg, "blockhashnotfound") ||
		strings.Contains(msg, "block height exceeded")
}

// ParseSimulationError turns the err field of a simulation or preflight
// result into a ProgramError when it carries a custom instruction code,
// and a SimulationError otherwise.
func ParseSimulationError(errVal interface{}, logs []string) error {
	if errVal == nil {
		return nil
	}
	index, code, ok := customInstructionError(errVal)
	if !ok {
		return &SimulationError{Err: errVal, Logs: logs}
	}
	account := anchorLogField(logs, "caused by account: ")
	return &ProgramError{
		Program:     dbc.ProgramName,
		Instruction: index,
		Code:        code,
		Account:     account,
		Message:     describeCode(code, account, anchorLogField(logs, "Error Code: ")),
		Logs:        logs,
	}
}

// customInstructionError matches {"InstructionError": [index, {"Custom": code}]}.
func customInstructionError(errVal interface{}) (index, code int, ok bool) {
	m, _ := errVal.(map[string]interface{})
	pair, _ := m["InstructionError"].([]interface{})
	if len(pair) < 2 {
		return 0, 0, false
	}
	custom, _ := pair[1].(map[string]interface{})
	code, ok = number(custom["Custom"])
	if !ok {
		return 0, 0, false
	}
	index, _ = number(pair[0])
	return index, code, true
}

// number accepts the numeric forms a JSON decoder may produce.
func number(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint32:
		return int(n), true
	}
	return 0, false
}

// anchorLogField returns the text after marker up to the next '.', from the
// first log line containing marker.
func anchorLogField(logs []string, marker string) string {
	for _, line := range logs {
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(marker):]
		if end := strings.IndexByte(rest, '.'); end >= 0 {
			rest = rest[:end]
		}
		return rest
	}
	return ""
}

var anchorMessages = map[int]string{
	2006: "seeds constraint violated (derived address mismatch)",
	3007: "owned by a different program",
	3008: "program ID was not as expected (wrong program)",
	3012: "not initialized (create the account first)",
}

func describeCode(code int, account, name string) string {
	msg, known := anchorMessages[code]
	switch {
	case known && (code == 3007 || code == 3012):
		if account == "" {
			return "account " + msg
		}
		return fmt.Sprintf("account '%s' %s", account, msg)
	case known:
		return msg
	}
	if name != "" {
		msg = fmt.Sprintf("%s (error code %d)", name, code)
	} else {
		msg = fmt.Sprintf("error code %d", code)
	}
	if account != "" {
		msg += " (account: " + account + ")"
	}
	return msg
}

// IsRetryableError reports whether repeating the call could change the
// outcome. Program failures, bad input and credential problems cannot.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var progErr *ProgramError
	if errors.As(err, &progErr) {
		return false
	}
	var simErr *SimulationError
	if errors.As(err, &simErr) {
		return false
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return false
	}
	if errors.Is(err, ErrSignerMissing) || errors.Is(err, ErrMalformedCredential) {
		return false
	}
	return true
}
