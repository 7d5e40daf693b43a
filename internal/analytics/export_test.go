package analytics

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mvaidya/cheque-tracker/internal/cheque"
)

var exportColumns = []string{
	"payee_name", "cheque_date", "cheque_number", "account_number",
	"bank_name", "branch", "amount_in_words", "amount_in_numbers",
	"signature_name", "micr_code", "ifsc_code",
}

var _ = Describe("Exports", func() {
	var records []*cheque.Record

	BeforeEach(func() {
		records = []*cheque.Record{
			{
				PayeeName:       "Ramesh Kumar",
				ChequeDate:      "2024-08-15",
				ChequeNumber:    "000123",
				BankName:        "State Bank of India",
				AmountInNumbers: "10000",
			},
			{
				PayeeName:       "Sita Devi",
				ChequeDate:      "2024-09-01",
				ChequeNumber:    "N/A",
				BankName:        "HDFC Bank",
				AmountInNumbers: "2500",
			},
		}
	})

	Describe("CSVBytes", func() {
		It("should write a header row and one row per cheque", func() {
			data, err := CSVBytes(exportColumns, records)
			Expect(err).NotTo(HaveOccurred())

			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			Expect(lines).To(HaveLen(3))
			Expect(lines[0]).To(HavePrefix("payee_name,cheque_date"))
			Expect(lines[1]).To(ContainSubstring("Ramesh Kumar"))
			Expect(lines[2]).To(ContainSubstring("Sita Devi"))
		})

		It("should write only the header for an empty table", func() {
			data, err := CSVBytes(exportColumns, nil)
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			Expect(lines).To(HaveLen(1))
		})
	})

	Describe("ExcelBytes", func() {
		It("should produce a zip container", func() {
			data, err := ExcelBytes(exportColumns, records)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data[:2])).To(Equal("PK"))
		})
	})

	Describe("ReportPDF", func() {
		It("should produce a PDF document", func() {
			view := NewEngine(Options{}).Build(records)
			pie, err := PieChart(TopBanksByAmount(view, 5))
			Expect(err).NotTo(HaveOccurred())

			data, err := ReportPDF(exportColumns, view, [][]byte{pie})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data[:5])).To(Equal("%PDF-"))
		})

		It("should handle a no-data view without charts", func() {
			view := NewEngine(Options{}).Build(nil)
			data, err := ReportPDF(exportColumns, view, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data[:5])).To(Equal("%PDF-"))
		})

		It("should paginate a long table", func() {
			many := make([]*cheque.Record, 0, 55)
			for i := 0; i < 55; i++ {
				many = append(many, records[0])
			}
			view := NewEngine(Options{}).Build(many)
			data, err := ReportPDF(exportColumns, view, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data[:5])).To(Equal("%PDF-"))
		})
	})
})
