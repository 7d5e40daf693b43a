package cheque

// Record is one processed cheque, one row in the cheque_details table.
// It is created by normalization plus insert and never updated or
// deleted by this system.
type Record struct {
	PayeeName       string `json:"payee_name"`
	ChequeDate      string `json:"cheque_date"` // ISO yyyy-mm-dd; empty when the cheque had no readable date
	ChequeNumber    string `json:"cheque_number"`
	AccountNumber   string `json:"account_number"`
	BankName        string `json:"bank_name"`
	Branch          string `json:"branch"`
	AmountInWords   string `json:"amount_in_words"`
	AmountInNumbers string `json:"amount_in_numbers"` // digits/decimal, thousands separators stripped
	SignatureName   string `json:"signature_name"`
	MICRCode        string `json:"micr_code"` // alphanumeric only
	IFSCCode        string `json:"ifsc_code"`
}
