package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soarespng/cv-scanner/internal/metrics"
	"github.com/soarespng/cv-scanner/internal/models"
	"github.com/soarespng/cv-scanner/internal/repositories"
)

// Upload is one file received from a client, held in memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ScannerService interface {
	Scan(ctx context.Context, uploads []Upload, keywords []string) []models.ResultRecord
}

type scannerService struct {
	storage   StorageService
	pdfParser PDFParserService
	parser    ProfileParser
	scorer    KeywordScorer
	docRepo   repositories.DocumentRepository
	log       *zap.Logger
}

func NewScannerService(
	storage StorageService,
	pdfParser PDFParserService,
	parser ProfileParser,
	scorer KeywordScorer,
	docRepo repositories.DocumentRepository,
	log *zap.Logger,
) ScannerService {
	return &scannerService{
		storage:   storage,
		pdfParser: pdfParser,
		parser:    parser,
		scorer:    scorer,
		docRepo:   docRepo,
		log:       log,
	}
}

// Scan processes the uploads in order and returns exactly one record per
// upload. A failing file is reported in its own record and does not stop the
// rest of the batch.
func (s *scannerService) Scan(ctx context.Context, uploads []Upload, keywords []string) []models.ResultRecord {
	records := make([]models.ResultRecord, 0, len(uploads))

	for _, upload := range uploads {
		record := s.scanOne(ctx, upload, keywords)

		metrics.RecordFileOutcome(string(record.Status))
		if record.Status == models.StatusCompleted {
			metrics.ObserveCompatibility(record.Compatibility)
		}

		records = append(records, record)
	}

	return records
}

func (s *scannerService) scanOne(ctx context.Context, upload Upload, keywords []string) models.ResultRecord {
	record := models.ResultRecord{
		ProfileRecord: models.NewProfileRecord(),
		ScoreResult: models.ScoreResult{
			FoundKeywords:    []string{},
			NotFoundKeywords: []string{},
		},
		Filename:         SecureFilename(upload.Filename),
		OriginalFilename: upload.Filename,
	}

	if err := ctx.Err(); err != nil {
		return s.fail(record, err)
	}

	start := time.Now()
	stored, err := s.storage.SaveFile(ctx, upload.Filename, upload.Data, upload.ContentType)
	metrics.CaptureStageMetrics("storage", time.Since(start))
	if err != nil {
		return s.fail(record, wrapKind(ErrStorage, err))
	}

	record.Filename = stored.Locator
	record.FileURL = stored.URL
	record.DocumentID = s.register(upload, stored)

	start = time.Now()
	content, err := s.pdfParser.ExtractTextWithMetaData(upload.Data)
	metrics.CaptureStageMetrics("extraction", time.Since(start))
	if err != nil {
		return s.fail(record, wrapKind(ErrExtraction, err))
	}
	metrics.ObservePages(content.PageCount)

	text := NormalizeText(content.Text)
	if text == "" {
		s.log.Warn("document has no extractable text", zap.String("filename", record.Filename))
	}

	record.ProfileRecord = s.parser.Parse(text)
	record.ScoreResult = s.scorer.Score(text, keywords)
	record.Status = models.StatusCompleted

	s.log.Info("document scanned",
		zap.String("filename", record.Filename),
		zap.Int("pages", content.PageCount),
		zap.String("compatibility", record.FormattedCompatibility()),
	)

	return record
}

// register records the stored upload. A registry failure is logged and the
// scan carries on without a document id.
func (s *scannerService) register(upload Upload, stored *StoredFile) string {
	if s.docRepo == nil {
		return ""
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = pdfMIME
	}

	doc := &models.Document{
		ID:               uuid.New(),
		Filename:         stored.Locator,
		OriginalFileName: upload.Filename,
		FileURL:          stored.URL,
		ContentType:      contentType,
		Size:             int64(len(upload.Data)),
		StorageBackend:   stored.Backend,
		CreatedAt:        time.Now(),
	}

	if err := s.docRepo.Create(doc); err != nil {
		s.log.Error("failed to register document", zap.String("filename", stored.Locator), zap.Error(err))
		return ""
	}

	return doc.ID.String()
}

func (s *scannerService) fail(record models.ResultRecord, err error) models.ResultRecord {
	code := ErrorCodeFor(err)

	metrics.RecordStageFailure(string(code))
	s.log.Warn("document scan failed",
		zap.String("filename", record.OriginalFilename),
		zap.String("stage", string(code)),
		zap.Error(err),
	)

	msg := err.Error()
	record.Status = models.StatusFailed
	record.ErrorCode = code
	record.ErrorMessage = &msg
	return record
}
