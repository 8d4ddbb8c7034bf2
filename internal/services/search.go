// Package services implements the record-set search matchers and the
// cashback/investment analyzers.
package services

import (
	"context"
	"regexp"
	"strings"

	"finview/internal/core"
	"finview/internal/log"
)

// personPattern catches "Ivan I."-style counterparty names: one
// capitalized word, whitespace, one capital initial with a period.
// Unicode letter classes cover Cyrillic and Latin descriptions alike.
var personPattern = regexp.MustCompile(`\p{Lu}\p{Ll}+\s+\p{Lu}\.`)

// phonePattern matches mobile numbers like "+7 995 555-55-55" and
// "+7 995 555 55 55". A dash directly after the country code does not
// qualify.
var phonePattern = regexp.MustCompile(`\+7\s+\d{3}\s+\d{3}[\s-]\d{2}[\s-]\d{2}`)

type SearchService struct {
	logger *log.Logger
}

func NewSearchService(logger *log.Logger) *SearchService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &SearchService{logger: logger.WithComponent(log.ComponentSearch)}
}

// Simple returns all transactions whose description or category
// contains the query, case-insensitively, preserving input order.
func (s *SearchService) Simple(ctx context.Context, query string, txs []core.Transaction) []core.Transaction {
	q := strings.ToLower(query)

	results := make([]core.Transaction, 0)
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Description), q) ||
			strings.Contains(strings.ToLower(tx.Category), q) {
			results = append(results, tx)
		}
	}

	s.logger.InfoContext(ctx, "Simple search finished",
		log.FieldQuery, query, log.FieldCount, len(results))
	return results
}

// TransfersToIndividuals returns transfers whose description names a
// person, distinguishing P2P transfers from merchant transfers.
func (s *SearchService) TransfersToIndividuals(ctx context.Context, txs []core.Transaction) []core.Transaction {
	results := make([]core.Transaction, 0)
	for _, tx := range txs {
		if tx.CategoryEquals(core.CategoryTransfers) && personPattern.MatchString(tx.Description) {
			results = append(results, tx)
		}
	}

	s.logger.InfoContext(ctx, "Transfers-to-individuals search finished",
		log.FieldCount, len(results))
	return results
}

// ByPhoneNumber returns transactions whose description contains a
// mobile phone number.
func (s *SearchService) ByPhoneNumber(ctx context.Context, txs []core.Transaction) []core.Transaction {
	results := make([]core.Transaction, 0)
	for _, tx := range txs {
		if phonePattern.MatchString(tx.Description) {
			results = append(results, tx)
		}
	}

	s.logger.InfoContext(ctx, "Phone-number search finished",
		log.FieldCount, len(results))
	return results
}
