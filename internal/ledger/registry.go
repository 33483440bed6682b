package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Registry owns the chart of accounts: creation, soft delete and lookups.
// It reads the store on every query rather than caching; the store is the
// single source of truth.
type Registry struct {
	store    Store
	nextCode int
}

func NewRegistry(store Store) *Registry {
	// Auto-generated code suffixes start past the default chart's 001-010.
	return &Registry{store: store, nextCode: 11}
}

// CreateAccountInput carries the caller-supplied account fields. Code is
// optional; when empty a code is generated from the type prefix and a
// monotonically increasing counter.
type CreateAccountInput struct {
	Type           AccountType
	Name           string
	Code           string
	OpeningBalance decimal.Decimal
}

func (r *Registry) CreateAccount(ctx context.Context, in CreateAccountInput) (*Account, error) {
	if !ValidAccountType(in.Type) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, in.Type)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyAccountName
	}

	code := in.Code
	if code == "" {
		generated, err := r.generateCode(ctx, in.Type)
		if err != nil {
			return nil, err
		}
		code = generated
	} else if existing, err := r.AccountByCode(ctx, code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, code)
	}

	account := &Account{
		ID:             uuid.Must(uuid.NewV7()).String(),
		Code:           code,
		Name:           in.Name,
		Type:           in.Type,
		OpeningBalance: in.OpeningBalance,
		CreatedAt:      time.Now().UTC(),
	}
	if err := r.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	return account, nil
}

// generateCode produces the next free prefix+NNN code for the type. The
// counter is shared across types so generated codes never repeat a suffix
// within a session; occupied codes are skipped.
func (r *Registry) generateCode(ctx context.Context, t AccountType) (string, error) {
	for {
		code := CodePrefix(t) + fmt.Sprintf("%03d", r.nextCode)
		r.nextCode++
		existing, err := r.AccountByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
}

// AccountUpdate names the mutable account fields. Code and type are
// immutable once the account exists.
type AccountUpdate struct {
	Name           *string
	OpeningBalance *decimal.Decimal
	Disabled       *bool
}

func (r *Registry) UpdateAccount(ctx context.Context, id string, upd AccountUpdate) (*Account, error) {
	account, err := r.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, ErrEmptyAccountName
		}
		account.Name = *upd.Name
	}
	if upd.OpeningBalance != nil {
		account.OpeningBalance = *upd.OpeningBalance
	}
	if upd.Disabled != nil {
		account.Disabled = *upd.Disabled
	}
	if err := r.store.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	return account, nil
}

// DisableAccount soft-deletes: the account stops appearing in reports but
// its balance and history remain queryable.
func (r *Registry) DisableAccount(ctx context.Context, id string) (*Account, error) {
	disabled := true
	return r.UpdateAccount(ctx, id, AccountUpdate{Disabled: &disabled})
}

func (r *Registry) EnableAccount(ctx context.Context, id string) (*Account, error) {
	disabled := false
	return r.UpdateAccount(ctx, id, AccountUpdate{Disabled: &disabled})
}

func (r *Registry) GetAccount(ctx context.Context, id string) (*Account, error) {
	return r.store.GetAccount(ctx, id)
}

// Accounts re-reads the store on every call.
func (r *Registry) Accounts(ctx context.Context, includeDisabled bool) ([]Account, error) {
	accounts, err := r.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if includeDisabled {
		return accounts, nil
	}
	active := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if !a.Disabled {
			active = append(active, a)
		}
	}
	return active, nil
}

func (r *Registry) AccountsByType(ctx context.Context, t AccountType) ([]Account, error) {
	accounts, err := r.Accounts(ctx, false)
	if err != nil {
		return nil, err
	}
	matched := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Type == t {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// AccountByCode looks up an account by its code, disabled ones included.
// Returns nil without error when no account carries the code.
func (r *Registry) AccountByCode(ctx context.Context, code string) (*Account, error) {
	accounts, err := r.Accounts(ctx, true)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Code == code {
			return &accounts[i], nil
		}
	}
	return nil, nil
}

// SeedDefaults installs the default chart of accounts with zero opening
// balances. It only runs against an empty registry.
func (r *Registry) SeedDefaults(ctx context.Context) error {
	existing, err := r.store.ListAccounts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, seed := range defaultChart {
		_, err := r.CreateAccount(ctx, CreateAccountInput{
			Type: seed.Type,
			Name: seed.Name,
			Code: seed.Code,
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", seed.Code, err)
		}
	}
	return nil
}
