package cheque

import (
	"fmt"
	"log/slog"

	"github.com/mvaidya/cheque-tracker/internal/extraction"
)

// RasterizeFunc renders a PDF into one image per page
type RasterizeFunc func(pdfData []byte) ([][]byte, error)

// Service runs the ingestion pipeline: save the upload, rasterize PDFs,
// then extract, normalize and insert each page in order.
type Service struct {
	db        DB
	extractor extraction.Extractor
	storage   Storage
	rasterize RasterizeFunc
}

// NewService creates a new Service with the default PDF rasterizer
func NewService(db DB, extractor extraction.Extractor, storage Storage) *Service {
	return &Service{
		db:        db,
		extractor: extractor,
		storage:   storage,
		rasterize: extraction.PDFToImages,
	}
}

// NewServiceWithDeps creates a new Service with a custom rasterizer for testing
func NewServiceWithDeps(db DB, extractor extraction.Extractor, storage Storage, rasterize RasterizeFunc) *Service {
	return &Service{
		db:        db,
		extractor: extractor,
		storage:   storage,
		rasterize: rasterize,
	}
}

// ProcessUpload runs the pipeline for one uploaded file. PDF uploads
// are rasterized to one image per page; image uploads are used
// directly. Pages are processed strictly in order, one at a time: the
// first failure aborts the remaining pages, but cheques already
// inserted for earlier pages stand. The returned records are the ones
// committed.
func (s *Service) ProcessUpload(filename string, data []byte, contentType string) ([]*Record, error) {
	defer func() {
		if err := s.storage.Clear(); err != nil {
			slog.Warn("Failed to clear temp files", "error", err)
		}
	}()

	if _, err := s.storage.Save(filename, data); err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	pages := [][]byte{data}
	if contentType == "application/pdf" {
		var err error
		pages, err = s.rasterize(data)
		if err != nil {
			return nil, fmt.Errorf("converting PDF to images: %w", err)
		}
		for i, page := range pages {
			if _, err := s.storage.Save(fmt.Sprintf("cheque_%d.png", i+1), page); err != nil {
				return nil, fmt.Errorf("saving page image %d: %w", i+1, err)
			}
		}
	}

	records := make([]*Record, 0, len(pages))
	for i, page := range pages {
		rec, err := s.processPage(page)
		if err != nil {
			slog.Error("Failed to process cheque page",
				"filename", filename,
				"page", i+1,
				"error", err,
			)
			return records, fmt.Errorf("page %d: %w", i+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// processPage runs extract, normalize and insert for a single cheque
// image. A cheque either fully normalizes and inserts, or nothing is
// written for it.
func (s *Service) processPage(image []byte) (*Record, error) {
	fields, err := s.extractor.Extract(image)
	if err != nil {
		return nil, fmt.Errorf("extracting cheque fields: %w", err)
	}

	rec, err := Normalize(fields)
	if err != nil {
		return nil, err
	}

	if err := s.db.InsertCheque(rec); err != nil {
		return nil, fmt.Errorf("saving cheque to database: %w", err)
	}

	return rec, nil
}

// ListCheques returns all stored cheques
func (s *Service) ListCheques() ([]*Record, error) {
	records, err := s.db.ListCheques()
	if err != nil {
		return nil, fmt.Errorf("listing cheques: %w", err)
	}
	return records, nil
}

// ColumnNames returns the storage schema's column identifiers
func (s *Service) ColumnNames() []string {
	return s.db.ColumnNames()
}
