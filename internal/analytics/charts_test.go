package analytics

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mvaidya/cheque-tracker/internal/cheque"
)

// pngMagic is the PNG file signature
var pngMagic = []byte("\x89PNG\r\n\x1a\n")

var _ = Describe("Charts", func() {
	var view *View

	BeforeEach(func() {
		view = NewEngine(Options{}).Build([]*cheque.Record{
			record("Ramesh Kumar", "SBI", "10000"),
			record("Sita Devi", "HDFC", "2500"),
			record("Arun Patel", "SBI", "7000"),
		})
	})

	Describe("PieChart", func() {
		It("should render a PNG", func() {
			img, err := PieChart(TopBanksByAmount(view, 5))
			Expect(err).NotTo(HaveOccurred())
			Expect(img[:8]).To(Equal(pngMagic))
		})

		It("should error on empty input", func() {
			_, err := PieChart(nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("BarChart", func() {
		It("should render a PNG", func() {
			img, err := BarChart(TopCheques(view, 5))
			Expect(err).NotTo(HaveOccurred())
			Expect(img[:8]).To(Equal(pngMagic))
		})

		It("should error on empty input", func() {
			_, err := BarChart(nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ScatterChart", func() {
		It("should render a PNG", func() {
			img, err := ScatterChart(view)
			Expect(err).NotTo(HaveOccurred())
			Expect(img[:8]).To(Equal(pngMagic))
		})

		It("should render when every amount is identical", func() {
			flat := NewEngine(Options{}).Build([]*cheque.Record{
				record("A", "SBI", "500"),
				record("B", "HDFC", "500"),
			})
			img, err := ScatterChart(flat)
			Expect(err).NotTo(HaveOccurred())
			Expect(img[:8]).To(Equal(pngMagic))
		})

		It("should render with a single bank", func() {
			single := NewEngine(Options{}).Build([]*cheque.Record{
				record("A", "SBI", "500"),
				record("B", "SBI", "900"),
			})
			img, err := ScatterChart(single)
			Expect(err).NotTo(HaveOccurred())
			Expect(img[:8]).To(Equal(pngMagic))
		})

		It("should error on a no-data view", func() {
			_, err := ScatterChart(NewEngine(Options{}).Build(nil))
			Expect(err).To(HaveOccurred())
		})
	})
})
