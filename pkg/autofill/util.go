package autofill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/jito"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/vanity"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/wallet"
)

// AccountReader fetches a single account. *rpc.Client satisfies it.
type AccountReader interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*solanarpc.GetAccountInfoResult, error)
}

// GenerateKey returns a fresh keypair, searching for a vanity address when
// a prefix or suffix is configured.
func GenerateKey(ctx context.Context, opts ...Option) (wallet.Local, error) {
	v := newOptions(opts).Vanity
	if !v.Enabled() {
		return wallet.NewEphemeral()
	}
	if v.Timeout == 0 {
		v.Timeout = defaultVanityTimeout
	}
	result, err := vanity.Generate(ctx, v)
	if err != nil {
		return wallet.Local{}, fmt.Errorf("generate vanity address: %w", err)
	}
	return wallet.NewLocalFromPrivateKey(result.PrivateKey), nil
}

var publicKeyType = reflect.TypeOf(solana.PublicKey{})

// applyPubkeyOverrides replaces PublicKey fields of the struct behind target.
// Keys may be the Go field name, its lowerCamel form or its snake_case form.
// A key naming no account is a ValidationError.
func applyPubkeyOverrides(target interface{}, m map[string]solana.PublicKey) error {
	if len(m) == 0 {
		return nil
	}
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		panic("applyPubkeyOverrides: target must be a pointer to struct")
	}
	val = val.Elem()

	fields := make(map[string]int)
	for i := 0; i < val.NumField(); i++ {
		f := val.Type().Field(i)
		if !f.IsExported() || f.Type != publicKeyType {
			continue
		}
		for _, name := range []string{f.Name, lowerCamel(f.Name), snake(f.Name)} {
			fields[name] = i
		}
	}
	for key, pk := range m {
		i, ok := fields[key]
		if !ok {
			return types.NewValidationError(key, "no such account in this instruction")
		}
		val.Field(i).Set(reflect.ValueOf(pk))
	}
	return nil
}

func lowerCamel(name string) string {
	if name == "" {
		return ""
	}
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[n:]
}

func snake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// resolveQuoteTokenProgram returns the program owning quoteMint. WSOL is
// always the classic token program. Any other mint is looked up through
// reader, so without a reader the program must be given explicitly.
func resolveQuoteTokenProgram(ctx context.Context, reader AccountReader, quoteMint solana.PublicKey, options *Options) (solana.PublicKey, error) {
	if !options.QuoteTokenProgram.IsZero() {
		return options.QuoteTokenProgram, nil
	}
	if quoteMint.Equals(constants.WSOLMint) {
		return constants.TokenProgramID, nil
	}
	if reader == nil {
		return solana.PublicKey{}, types.NewValidationError("quoteTokenProgram",
			fmt.Sprintf("no node to look up the owner of quote mint %s; set the quote token program", quoteMint))
	}
	info, err := reader.GetAccountInfo(ctx, quoteMint)
	if errors.Is(err, types.ErrAccountNotFound) {
		return solana.PublicKey{}, types.NewValidationError("quoteMint", "mint account does not exist")
	}
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("resolve quote token program: %w", err)
	}
	if info == nil || info.Value == nil {
		return constants.TokenProgramID, nil
	}
	owner := info.Value.Owner
	if !owner.Equals(constants.TokenProgramID) && !owner.Equals(constants.Token2022ProgramID) {
		return solana.PublicKey{}, types.NewValidationError("quoteMint", "not owned by a token program")
	}
	return owner, nil
}

// appendJitoTip appends the configured tip transfer, if any.
func appendJitoTip(instrs []solana.Instruction, from solana.PublicKey, options *Options) []solana.Instruction {
	if options == nil || options.Tip.Lamports == 0 {
		return instrs
	}
	if options.Tip.Account.IsZero() {
		return append(instrs, jito.TipInstruction(from, options.Tip.Lamports))
	}
	return append(instrs, system.NewTransferInstruction(options.Tip.Lamports, from, options.Tip.Account).Build())
}

func writePreview(options *Options, v interface{}) {
	if options.Preview == nil {
		return
	}
	enc := json.NewEncoder(options.Preview)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
