package extraction

// ChequeFields contains the raw field guesses returned by the external
// vision model for one cheque image. Every field is optional: the model
// returns an empty string or null for anything it cannot read. Values
// are stored exactly as returned; cleanup happens during normalization.
type ChequeFields struct {
	PayeeName       string `json:"payeeName"`
	Date            string `json:"date"` // ddmmyyyy as printed on the cheque
	ChequeNumber    string `json:"chequeNumber"`
	AccountNumber   string `json:"accountNumber"`
	BankName        string `json:"bankName"`
	Branch          string `json:"branch"`
	AmountInWords   string `json:"amountInWords"`
	AmountInNumbers string `json:"amountInNumbers"`
	SignatureName   string `json:"signatureName"`
	MICRCode        string `json:"micrCode"`
	IFSCCode        string `json:"ifscCode"`
}

// Extractor defines the boundary to the external field-extraction
// service. Implementations make exactly one attempt per image, with no
// retry.
type Extractor interface {
	// Extract reads one cheque image and returns the raw fields
	Extract(imageData []byte) (*ChequeFields, error)
	// Close closes the extractor and releases resources
	Close() error
}
