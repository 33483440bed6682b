package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/khata-dev/khata/internal/bsdate"
)

// VoucherService is the write side of the ledger: it builds vouchers,
// assigns sequential voucher numbers per type per fiscal year, and hands
// validated entry sets to the engine for posting.
//
// The service assumes a single active writer; sequence state is not guarded
// against concurrent CreateVoucher calls from multiple goroutines.
type VoucherService struct {
	store      Store
	engine     *Engine
	fiscalYear string
	sequences  map[VoucherType]int
}

func NewVoucherService(store Store, engine *Engine, fiscalYear string) *VoucherService {
	sequences := make(map[VoucherType]int, len(SequencedVoucherTypes))
	for _, t := range SequencedVoucherTypes {
		sequences[t] = 1
	}
	return &VoucherService{
		store:      store,
		engine:     engine,
		fiscalYear: fiscalYear,
		sequences:  sequences,
	}
}

// InitSequences scans existing vouchers and, for every sequenced type, sets
// the next sequence to one past the highest already issued in the current
// fiscal year. Must run once before any voucher numbers are issued.
func (s *VoucherService) InitSequences(ctx context.Context) error {
	vouchers, err := s.store.ListVouchers(ctx)
	if err != nil {
		return err
	}
	fyTag := strings.ReplaceAll(s.fiscalYear, "/", "-")
	for _, t := range SequencedVoucherTypes {
		maxSeq := 0
		for _, v := range vouchers {
			if v.Type != t || !strings.Contains(v.VoucherNo, fyTag) {
				continue
			}
			if seq, ok := voucherNoSequence(v.VoucherNo); ok && seq > maxSeq {
				maxSeq = seq
			}
		}
		if maxSeq > 0 {
			s.sequences[t] = maxSeq + 1
		}
	}
	return nil
}

// CreateVoucherInput carries caller-supplied voucher fields. DateBS is
// derived from Date when left zero. The invoice fields are only meaningful
// for SI/PI vouchers.
type CreateVoucherInput struct {
	Type      VoucherType
	Date      time.Time
	DateBS    bsdate.Date
	Narration string
	Entries   []Entry

	Party     string
	PartyPAN  string
	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// CreateVoucher validates the entry set, allocates the next voucher number,
// persists the voucher and posts its transactions. Validation strictly
// precedes any persistence: a rejected voucher leaves no trace.
func (s *VoucherService) CreateVoucher(ctx context.Context, in CreateVoucherInput) (*Voucher, error) {
	if !ValidVoucherType(in.Type) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVoucherType, in.Type)
	}
	if strings.TrimSpace(in.Narration) == "" {
		return nil, ErrEmptyNarration
	}
	if len(in.Entries) < 2 {
		return nil, ErrTooFewEntries
	}
	for i, entry := range in.Entries {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	if err := ValidateJournalEntry(in.Entries).Err(); err != nil {
		return nil, err
	}

	dateBS := in.DateBS
	if dateBS == (bsdate.Date{}) {
		converted, err := bsdate.FromGregorian(in.Date)
		if err != nil {
			return nil, err
		}
		dateBS = converted
	}

	voucher := &Voucher{
		ID:        uuid.Must(uuid.NewV7()).String(),
		VoucherNo: FormatVoucherNo(in.Type, s.fiscalYear, s.sequences[in.Type]),
		Type:      in.Type,
		Date:      in.Date,
		DateBS:    dateBS,
		Narration: in.Narration,
		Entries:   in.Entries,
		Status:    StatusPosted,
		CreatedAt: time.Now().UTC(),
		Party:     in.Party,
		PartyPAN:  in.PartyPAN,
		Subtotal:  in.Subtotal,
		VATAmount: in.VATAmount,
		Total:     in.Total,
	}
	s.sequences[in.Type]++

	if err := s.store.SaveVoucher(ctx, voucher); err != nil {
		return nil, fmt.Errorf("save voucher: %w", err)
	}
	if _, err := s.engine.PostJournalEntry(ctx, voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// Voucher fetches a single voucher by id.
func (s *VoucherService) Voucher(ctx context.Context, id string) (*Voucher, error) {
	return s.store.GetVoucher(ctx, id)
}

// Vouchers lists every stored voucher, newest first.
func (s *VoucherService) Vouchers(ctx context.Context) ([]Voucher, error) {
	vouchers, err := s.store.ListVouchers(ctx)
	if err != nil {
		return nil, err
	}
	// Stored order is oldest-first append order; surface newest first.
	for i, j := 0, len(vouchers)-1; i < j; i, j = i+1, j-1 {
		vouchers[i], vouchers[j] = vouchers[j], vouchers[i]
	}
	return vouchers, nil
}

// FiscalYear returns the fiscal year label this service issues numbers for.
func (s *VoucherService) FiscalYear() string {
	return s.fiscalYear
}
