package cheque

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalize", func() {
	var fields = validFields

	When("all fields are well formed", func() {
		It("should map every field onto the record", func() {
			rec, err := Normalize(fields())
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.PayeeName).To(Equal("Ramesh Kumar"))
			Expect(rec.AccountNumber).To(Equal("9876543210"))
			Expect(rec.BankName).To(Equal("State Bank of India"))
			Expect(rec.Branch).To(Equal("Connaught Place"))
			Expect(rec.AmountInWords).To(Equal("Ten Thousand Only"))
			Expect(rec.SignatureName).To(Equal("R Kumar"))
			Expect(rec.IFSCCode).To(Equal("SBIN0000691"))
		})

		It("should convert the date from ddmmyyyy to ISO", func() {
			rec, err := Normalize(fields())
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ChequeDate).To(Equal("2024-08-15"))
		})

		It("should strip commas from the numeric amount", func() {
			rec, err := Normalize(fields())
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.AmountInNumbers).To(Equal("10000"))
		})

		It("should strip non-alphanumeric characters from the MICR code", func() {
			f := fields()
			f.MICRCode = "123-456 789"
			rec, err := Normalize(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.MICRCode).To(Equal("123456789"))
		})
	})

	When("the cheque number is missing", func() {
		It("should default to N/A", func() {
			f := fields()
			f.ChequeNumber = ""
			rec, err := Normalize(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ChequeNumber).To(Equal("N/A"))
		})
	})

	When("the date is empty", func() {
		It("should keep it empty without error", func() {
			f := fields()
			f.Date = ""
			rec, err := Normalize(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ChequeDate).To(Equal(""))
		})
	})

	When("the date is malformed", func() {
		It("should reject the wrong length", func() {
			f := fields()
			f.Date = "1582024"
			_, err := Normalize(f)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("parsing cheque date"))
		})

		It("should reject separators", func() {
			f := fields()
			f.Date = "15/08/24"
			_, err := Normalize(f)
			Expect(err).To(HaveOccurred())
		})

		It("should reject an impossible calendar date", func() {
			f := fields()
			f.Date = "32132024"
			_, err := Normalize(f)
			Expect(err).To(HaveOccurred())
		})
	})

	When("other fields are empty", func() {
		It("should keep them as empty strings", func() {
			f := fields()
			f.PayeeName = ""
			f.BankName = ""
			rec, err := Normalize(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.PayeeName).To(Equal(""))
			Expect(rec.BankName).To(Equal(""))
		})
	})
})
