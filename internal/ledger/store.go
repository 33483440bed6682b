package ledger

import "context"

// Store is the persistence collaborator the accounting core is written
// against. It carries save/get/getAll/query-by-account semantics over the
// accounts, vouchers and transactions collections; the core does not care
// which storage technology backs it.
//
// Save methods are upserts keyed by record id. Get methods return
// ErrAccountNotFound / ErrVoucherNotFound sentinels. SaveTransactions must
// write the whole batch atomically: either every transaction of a voucher
// becomes visible or none does.
type Store interface {
	SaveAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id string) (*Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)

	SaveVoucher(ctx context.Context, v *Voucher) error
	GetVoucher(ctx context.Context, id string) (*Voucher, error)
	ListVouchers(ctx context.Context) ([]Voucher, error)

	SaveTransactions(ctx context.Context, txns []Transaction) error
	TransactionsByAccount(ctx context.Context, accountID string) ([]Transaction, error)
	ListTransactions(ctx context.Context) ([]Transaction, error)
}
