package cheque

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save", func() {
		var (
			filename  string
			data      []byte
			savedPath string
			err       error
		)

		BeforeEach(func() {
			filename = "cheque.jpg"
			data = []byte("test file content")
		})

		JustBeforeEach(func() {
			savedPath, err = storage.Save(filename, data)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the correct path", func() {
				Expect(savedPath).To(Equal(filename))
			})

			It("should save the file to disk", func() {
				filePath := filepath.Join(tmpDir, filename)
				Expect(filePath).To(BeAnExistingFile())
			})
		})
	})

	Describe("Get", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("cheque.jpg", []byte("test file content"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the file contents", func() {
				data, err := storage.Get("cheque.jpg")
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(Equal([]byte("test file content")))
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				_, err := storage.Get("missing.jpg")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Delete", func() {
		When("the file exists", func() {
			BeforeEach(func() {
				_, err := storage.Save("cheque.jpg", []byte("test file content"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the file", func() {
				Expect(storage.Delete("cheque.jpg")).To(Succeed())
				Expect(filepath.Join(tmpDir, "cheque.jpg")).NotTo(BeAnExistingFile())
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				Expect(storage.Delete("missing.jpg")).NotTo(Succeed())
			})
		})
	})

	Describe("Clear", func() {
		When("files exist", func() {
			BeforeEach(func() {
				_, err := storage.Save("cheque.jpg", []byte("one"))
				Expect(err).NotTo(HaveOccurred())
				_, err = storage.Save("cheque_1.png", []byte("two"))
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove every file", func() {
				Expect(storage.Clear()).To(Succeed())
				Expect(filepath.Join(tmpDir, "cheque.jpg")).NotTo(BeAnExistingFile())
				Expect(filepath.Join(tmpDir, "cheque_1.png")).NotTo(BeAnExistingFile())
			})
		})

		When("the directory is empty", func() {
			It("should succeed", func() {
				Expect(storage.Clear()).To(Succeed())
			})
		})
	})
})
