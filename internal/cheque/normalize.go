package cheque

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mvaidya/cheque-tracker/internal/extraction"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// sanitizeMICR strips every character that is not an ASCII letter or
// digit.
func sanitizeMICR(code string) string {
	return nonAlphanumeric.ReplaceAllString(code, "")
}

// Normalize maps the extractor's raw fields into a Record. It is a pure
// transform: most fields tolerate absence and default to the empty
// string (cheque_number defaults to "N/A"), amounts lose their commas
// and the MICR code keeps only alphanumerics.
//
// The date is the one hard validation point: a non-empty date must be
// exactly ddmmyyyy and is reformatted to yyyy-mm-dd; anything else
// fails the whole cheque.
func Normalize(fields *extraction.ChequeFields) (*Record, error) {
	rec := &Record{
		PayeeName:       fields.PayeeName,
		ChequeNumber:    fields.ChequeNumber,
		AccountNumber:   fields.AccountNumber,
		BankName:        fields.BankName,
		Branch:          fields.Branch,
		AmountInWords:   fields.AmountInWords,
		AmountInNumbers: strings.ReplaceAll(fields.AmountInNumbers, ",", ""),
		SignatureName:   fields.SignatureName,
		MICRCode:        sanitizeMICR(fields.MICRCode),
		IFSCCode:        fields.IFSCCode,
	}

	if rec.ChequeNumber == "" {
		rec.ChequeNumber = "N/A"
	}

	if fields.Date != "" {
		if len(fields.Date) != 8 {
			return nil, fmt.Errorf("parsing cheque date %q: expected ddmmyyyy", fields.Date)
		}
		parsed, err := time.Parse("02012006", fields.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing cheque date %q: %w", fields.Date, err)
		}
		rec.ChequeDate = parsed.Format("2006-01-02")
	}

	return rec, nil
}
