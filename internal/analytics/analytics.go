package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mvaidya/cheque-tracker/internal/cheque"
)

// Options configures the analytics engine
type Options struct {
	// StrictAmounts records a warning for every amount string that
	// cannot be parsed, instead of only silently treating it as zero.
	// The aggregates are the same either way.
	StrictAmounts bool
}

// Engine derives the analytics view from the stored cheque set
type Engine struct {
	opts Options
}

// NewEngine creates a new Engine
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// View is the derived analytics state, rebuilt from the full record set
// on every request. It is never persisted.
type View struct {
	Records       []*cheque.Record
	Amounts       []float64 // parallel to Records, coerced amounts
	TotalCheques  int
	DistinctBanks int
	TotalAmount   float64
	NoData        bool
	Warnings      []string
}

// amountPattern matches digits with an optional decimal part, after
// commas and the trailing "/-" marker have been stripped.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// CleanAmount coerces an amount string to a number. Commas and a
// trailing "/-" are stripped; empty strings or anything else containing
// a non-numeric character yield 0.0 rather than an error.
func CleanAmount(s string) float64 {
	v, _ := parseAmount(s)
	return v
}

func parseAmount(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	cleaned = strings.TrimSuffix(cleaned, "/-")
	if !amountPattern.MatchString(cleaned) {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Build derives the view for a record set. An empty or failed fetch
// yields a no-data view, never an error.
func (e *Engine) Build(records []*cheque.Record) *View {
	view := &View{
		Records:      records,
		TotalCheques: len(records),
	}
	if len(records) == 0 {
		view.NoData = true
		return view
	}

	banks := make(map[string]struct{})
	view.Amounts = make([]float64, len(records))
	for i, rec := range records {
		amount, ok := parseAmount(rec.AmountInNumbers)
		if !ok && e.opts.StrictAmounts && strings.TrimSpace(rec.AmountInNumbers) != "" {
			view.Warnings = append(view.Warnings,
				fmt.Sprintf("unparseable amount %q for payee %q treated as 0", rec.AmountInNumbers, rec.PayeeName))
		}
		view.Amounts[i] = amount
		view.TotalAmount += amount
		banks[rec.BankName] = struct{}{}
	}
	view.DistinctBanks = len(banks)

	return view
}

// BankTotal is one bank's summed cheque amount
type BankTotal struct {
	Bank  string
	Total float64
}

// TopBanksByAmount returns the n banks with the largest summed amount,
// largest first. Ties break alphabetically so the selection is stable.
func TopBanksByAmount(view *View, n int) []BankTotal {
	totals := make(map[string]float64)
	for i, rec := range view.Records {
		totals[rec.BankName] += view.Amounts[i]
	}

	banks := make([]BankTotal, 0, len(totals))
	for bank, total := range totals {
		banks = append(banks, BankTotal{Bank: bank, Total: total})
	}
	sort.Slice(banks, func(i, j int) bool {
		if banks[i].Total != banks[j].Total {
			return banks[i].Total > banks[j].Total
		}
		return banks[i].Bank < banks[j].Bank
	})

	if len(banks) > n {
		banks = banks[:n]
	}
	return banks
}

// ChequeAmount is one cheque's coerced amount, labeled by payee
type ChequeAmount struct {
	Payee  string
	Amount float64
}

// TopCheques returns the n individual cheques with the largest amount
func TopCheques(view *View, n int) []ChequeAmount {
	cheques := make([]ChequeAmount, 0, len(view.Records))
	for i, rec := range view.Records {
		cheques = append(cheques, ChequeAmount{Payee: rec.PayeeName, Amount: view.Amounts[i]})
	}
	sort.SliceStable(cheques, func(i, j int) bool {
		return cheques[i].Amount > cheques[j].Amount
	})

	if len(cheques) > n {
		cheques = cheques[:n]
	}
	return cheques
}

// columnValue returns the record's value for a cheque_details column
// name, or "" for an unknown column.
func columnValue(rec *cheque.Record, column string) string {
	switch column {
	case "payee_name":
		return rec.PayeeName
	case "cheque_date":
		return rec.ChequeDate
	case "cheque_number":
		return rec.ChequeNumber
	case "account_number":
		return rec.AccountNumber
	case "bank_name":
		return rec.BankName
	case "branch":
		return rec.Branch
	case "amount_in_words":
		return rec.AmountInWords
	case "amount_in_numbers":
		return rec.AmountInNumbers
	case "signature_name":
		return rec.SignatureName
	case "micr_code":
		return rec.MICRCode
	case "ifsc_code":
		return rec.IFSCCode
	default:
		return ""
	}
}

// SortRecords orders records in place by the named column.
// amount_in_numbers sorts numerically, everything else lexically.
// Unknown columns leave the order unchanged.
func SortRecords(records []*cheque.Record, column string, descending bool) {
	less := func(a, b *cheque.Record) bool {
		if column == "amount_in_numbers" {
			return CleanAmount(a.AmountInNumbers) < CleanAmount(b.AmountInNumbers)
		}
		return columnValue(a, column) < columnValue(b, column)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if descending {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

// FilterRecords keeps records whose column value contains the query,
// case-insensitively. An empty column matches against every column; an
// empty query keeps everything.
func FilterRecords(records []*cheque.Record, column, query string) []*cheque.Record {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)

	matches := func(rec *cheque.Record) bool {
		if column != "" {
			return strings.Contains(strings.ToLower(columnValue(rec, column)), q)
		}
		for _, col := range []string{
			"payee_name", "cheque_date", "cheque_number", "account_number",
			"bank_name", "branch", "amount_in_words", "amount_in_numbers",
			"signature_name", "micr_code", "ifsc_code",
		} {
			if strings.Contains(strings.ToLower(columnValue(rec, col)), q) {
				return true
			}
		}
		return false
	}

	out := make([]*cheque.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}
