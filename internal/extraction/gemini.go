package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// chequeScanPrompt asks the model for a structured JSON object. The
// field names are the wire contract with the normalizer and must not
// change.
const chequeScanPrompt = `Extract all visible text present in the bank cheque image with high accuracy. Capture the key details and output them as a structured JSON object with the following field names and precise formatting:

payeeName: Full name of the payee.
date: The cheque issuance date in 'ddmmyyyy' format, identified accurately without variations.
chequeNumber: Unique cheque number.
accountNumber: Complete bank account number.
bankName: Full name of the bank.
branch: Branch name and location, capturing all address details.
amountInWords: Cheque amount as written in words (e.g., "Ten Thousand Only").
amountInNumbers: Cheque amount as represented in numeric form (e.g., "10000").
signatureName: Name on the signature line.
micrCode: MICR code exactly as displayed on the cheque.
ifscCode: Bank's IFSC code.

Ensure the JSON object is clean, with each extracted field labeled precisely by the above field names. Do not omit any details. If a field is not found, return it as an empty string or null to keep the output consistent.`

// Gemini implements the Extractor interface using Google Gemini
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Extractor instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// Extract reads one cheque image and returns the raw fields. The call
// is a single synchronous attempt: it blocks until the service answers
// or fails, with no retry.
func (g *Gemini) Extract(imageData []byte) (*ChequeFields, error) {
	ctx := context.Background()

	parts := []genai.Part{
		genai.ImageData(imageFormat(imageData), imageData),
		genai.Text(chequeScanPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	// Extract text response
	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	fields, err := parseChequeJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing extractor response: %w", err)
	}

	return fields, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
