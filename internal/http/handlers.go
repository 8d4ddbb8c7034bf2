package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finview/internal/core"
	"finview/internal/log"
	"finview/internal/middleware/trace"
	"finview/internal/views"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// load fetches a fresh transaction snapshot for one request.
func (s *Server) load(ctx context.Context, w http.ResponseWriter) ([]core.Transaction, bool) {
	txs, err := s.reader.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Transaction load failed",
			log.FieldRequestID, trace.GetRequestID(ctx),
			log.FieldOperation, log.OpLoad, log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "transaction source unavailable")
		return nil, false
	}
	return txs, true
}

// refDate resolves the optional date query parameter, falling back to
// now on blank or unparseable input.
func (s *Server) refDate(r *http.Request) time.Time {
	return s.reports.ParseRefDate(r.Context(), strings.TrimSpace(r.URL.Query().Get("date")), s.now())
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := s.reader.Load(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ref := s.refDate(r)

	key := ref.Format(time.DateOnly)
	if payload, ok := s.homeCache.Get(key); ok {
		s.logger.DebugContext(r.Context(), "Home cache hit", "date", key)
		writeJSON(w, http.StatusOK, payload)
		return
	}

	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	payload := s.views.Home(r.Context(), ref, txs)
	s.homeCache.Set(key, payload)
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	ref := s.refDate(r)

	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		// Documented default: unknown tags degrade to the single-day window.
		s.logger.WarnContext(r.Context(), "Unknown period tag, using default",
			log.FieldPeriod, r.URL.Query().Get("period"), log.FieldError, err.Error())
	}

	key := ref.Format(time.DateOnly) + ":" + string(period)
	if payload, ok := s.eventsCache.Get(key); ok {
		s.logger.DebugContext(r.Context(), "Events cache hit", "date", key)
		writeJSON(w, http.StatusOK, payload)
		return
	}

	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	payload := s.views.Events(r.Context(), ref, period, txs)
	s.eventsCache.Set(key, payload)
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCategoryReport(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "category parameter is required")
		return
	}

	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.reports.SpendingByCategory(r.Context(), txs, category, s.refDate(r)))
}

func (s *Server) handleWeekdayReport(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.reports.SpendingByWeekday(r.Context(), txs, s.refDate(r)))
}

func (s *Server) handleWorkdayReport(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.reports.SpendingByWorkday(r.Context(), txs, s.refDate(r)))
}

// transactionJSON is the wire shape of a matched ledger record.
type transactionJSON struct {
	Date        string  `json:"date,omitempty"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Card        string  `json:"card,omitempty"`
}

func toTransactionJSON(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, 0, len(txs))
	for _, tx := range txs {
		rec := transactionJSON{
			Status:      tx.Status,
			Amount:      core.Round2(tx.Amount),
			Category:    tx.Category,
			Description: tx.Description,
			Card:        tx.Card,
		}
		if tx.HasDate() {
			rec.Date = tx.Date.Format(views.TopTransactionDateLayout)
		}
		out = append(out, rec)
	}
	return out
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTransactionJSON(s.search.Simple(r.Context(), query, txs)))
}

func (s *Server) handleSearchTransfers(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTransactionJSON(s.search.TransfersToIndividuals(r.Context(), txs)))
}

func (s *Server) handleSearchPhone(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTransactionJSON(s.search.ByPhoneNumber(r.Context(), txs)))
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		writeError(w, http.StatusBadRequest, "month parameter is required (MM.YYYY)")
		return
	}

	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	total, err := s.analysis.InvestmentBank(r.Context(), month, txs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"month": month, "total_savings": total})
}

func (s *Server) handleCashback(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "year and month (1-12) parameters are required")
		return
	}

	txs, ok := s.load(r.Context(), w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.analysis.AnalyzeCashbackCategories(r.Context(), txs, year, month))
}
