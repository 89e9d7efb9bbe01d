// Package statement parses uploaded bank statement PDFs into candidate
// ledger entries for review before import.
package statement

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
	"github.com/gabrielmazz/finances-app-sub000/internal/interfaces"
	"github.com/gabrielmazz/finances-app-sub000/internal/models"
)

// Compile-time interface check
var _ interfaces.StatementService = (*Service)(nil)

// Service implements StatementService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new statement service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// statementLine matches "DD/MM/YYYY  description  amount" rows. Amounts use
// either a comma or a dot as the decimal separator; a leading minus marks a
// debit.
var statementLine = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+(-?[\d.,]*\d[.,]\d{2})$`)

// Import extracts candidate entries from the PDF and tags each with a
// category matched by keyword. Unparseable lines are counted, not fatal.
func (s *Service) Import(ctx context.Context, accountID string, pdfData []byte) (*models.StatementImport, error) {
	if _, err := s.storage.AccountStore().Get(ctx, accountID); err != nil {
		return nil, err
	}

	text, err := extractText(pdfData)
	if err != nil {
		return nil, err
	}

	candidates, skipped := parseStatementText(text)

	owners, err := s.storage.PersonStore().RelatedOwnerIDs(ctx, common.ResolvePersonID(ctx))
	if err != nil {
		return nil, err
	}
	categories, err := s.storage.CategoryStore().ListByOwners(ctx, owners)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].CategoryID = matchCategory(candidates[i].Description, categories)
	}

	s.logger.Info().
		Str("account_id", accountID).
		Int("candidates", len(candidates)).
		Int("skipped", skipped).
		Msg("statement parsed")

	return &models.StatementImport{
		AccountID:  accountID,
		Candidates: candidates,
		Skipped:    skipped,
	}, nil
}

func extractText(pdfData []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// parseStatementText turns extracted statement text into candidates. Lines
// that do not look like transaction rows are skipped and counted.
func parseStatementText(text string) ([]models.StatementCandidate, int) {
	var candidates []models.StatementCandidate
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := statementLine.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}

		date, err := time.Parse("02/01/2006", m[1])
		if err != nil {
			skipped++
			continue
		}
		cents, err := parseAmountCents(m[3])
		if err != nil || cents == 0 {
			skipped++
			continue
		}

		kind := models.EntryGain
		if cents < 0 {
			kind = models.EntryExpense
			cents = -cents
		}

		candidates = append(candidates, models.StatementCandidate{
			Kind:        kind,
			Date:        date,
			Description: strings.TrimSpace(m[2]),
			AmountCents: cents,
		})
	}
	return candidates, skipped
}

// parseAmountCents converts a statement amount string to signed cents.
// Handles "1.234,56", "1,234.56", "1234.56" and "1234,56".
func parseAmountCents(raw string) (int64, error) {
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	// The last separator is the decimal mark; everything else is grouping.
	lastDot := strings.LastIndex(raw, ".")
	lastComma := strings.LastIndex(raw, ",")
	if lastComma > lastDot {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	} else {
		raw = strings.ReplaceAll(raw, ",", "")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount %q: %w", raw, err)
	}
	cents := d.Shift(2).IntPart()
	if negative {
		cents = -cents
	}
	return cents, nil
}

// matchCategory returns the id of the first category with a keyword found in
// the description, or empty when nothing matches.
func matchCategory(description string, categories []*models.Category) string {
	lower := strings.ToLower(description)
	for _, c := range categories {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return c.ID
			}
		}
	}
	return ""
}
