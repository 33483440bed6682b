// Package memstore is an in-memory implementation of the ledger persistence
// collaborator. It backs tests and ad-hoc usage; records are deep-copied on
// the way in and out so callers cannot mutate stored state.
package memstore

import (
	"context"
	"sync"

	"github.com/khata-dev/khata/internal/ledger"
)

type Store struct {
	mu sync.RWMutex

	accounts     []ledger.Account
	vouchers     []ledger.Voucher
	transactions []ledger.Transaction

	accountIdx map[string]int
	voucherIdx map[string]int
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		accountIdx: make(map[string]int),
		voucherIdx: make(map[string]int),
	}
}

func (s *Store) SaveAccount(_ context.Context, a *ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.accountIdx[a.ID]; ok {
		s.accounts[i] = *a
		return nil
	}
	s.accountIdx[a.ID] = len(s.accounts)
	s.accounts = append(s.accounts, *a)
	return nil
}

func (s *Store) GetAccount(_ context.Context, id string) (*ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.accountIdx[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	a := s.accounts[i]
	return &a, nil
}

func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

func (s *Store) SaveVoucher(_ context.Context, v *ledger.Voucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *v
	cp.Entries = append([]ledger.Entry(nil), v.Entries...)
	if i, ok := s.voucherIdx[v.ID]; ok {
		s.vouchers[i] = cp
		return nil
	}
	s.voucherIdx[v.ID] = len(s.vouchers)
	s.vouchers = append(s.vouchers, cp)
	return nil
}

func (s *Store) GetVoucher(_ context.Context, id string) (*ledger.Voucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.voucherIdx[id]
	if !ok {
		return nil, ledger.ErrVoucherNotFound
	}
	v := s.vouchers[i]
	v.Entries = append([]ledger.Entry(nil), s.vouchers[i].Entries...)
	return &v, nil
}

func (s *Store) ListVouchers(_ context.Context) ([]ledger.Voucher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Voucher, len(s.vouchers))
	for i, v := range s.vouchers {
		out[i] = v
		out[i].Entries = append([]ledger.Entry(nil), v.Entries...)
	}
	return out, nil
}

// SaveTransactions appends the whole batch under one lock acquisition, so a
// voucher's lines become visible together.
func (s *Store) SaveTransactions(_ context.Context, txns []ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, txns...)
	return nil
}

func (s *Store) TransactionsByAccount(_ context.Context, accountID string) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []ledger.Transaction{}
	for _, txn := range s.transactions {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (s *Store) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}
