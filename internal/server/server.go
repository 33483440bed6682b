// Package server exposes the accounting core over HTTP. It is a thin JSON
// layer: all invariants live in the ledger package.
package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/khata-dev/khata/internal/ledger"
)

type Server struct {
	registry *ledger.Registry
	engine   *ledger.Engine
	vouchers *ledger.VoucherService
	log      *slog.Logger
	router   chi.Router
	addr     string
}

func New(registry *ledger.Registry, engine *ledger.Engine, vouchers *ledger.VoucherService, addr string, log *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		registry: registry,
		engine:   engine,
		vouchers: vouchers,
		log:      log,
		router:   r,
		addr:     addr,
	}
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		// Accounts
		r.Post("/accounts", s.createAccount)
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{id}", s.getAccount)
		r.Patch("/accounts/{id}", s.updateAccount)
		r.Post("/accounts/{id}/disable", s.disableAccount)
		r.Post("/accounts/{id}/enable", s.enableAccount)
		r.Get("/accounts/{id}/balance", s.accountBalance)
		r.Get("/accounts/{id}/ledger", s.accountLedger)

		// Vouchers
		r.Post("/vouchers", s.createVoucher)
		r.Get("/vouchers", s.listVouchers)
		r.Get("/vouchers/{id}", s.getVoucher)
		r.Post("/vouchers/validate", s.validateEntries)

		// Reports
		r.Get("/reports/trial-balance", s.trialBalance)
		r.Get("/reports/profit-loss", s.profitAndLoss)
		r.Get("/reports/balance-sheet", s.balanceSheet)
		r.Get("/reports/cash-book", s.cashBook)
		r.Get("/reports/bank-book", s.bankBook)
		r.Get("/reports/vat", s.vatReport)

		// Fiscal year
		r.Post("/fiscal-year/close", s.closeFiscalYear)

		// Calendar
		r.Get("/dates/to-bs", s.dateToBS)
		r.Get("/dates/to-ad", s.dateToAD)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.Info("khata server listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("khata server listening", "addr", ln.Addr().String())
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
