package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

type PDFParserService interface {
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct {
	log *zap.Logger
}

func NewPDFParserService(log *zap.Logger) PDFParserService {
	return &pdfParserService{log: log}
}

// ExtractTextWithMetaData reads every page of the document. An empty result
// is not an error: the PDF may simply have no text layer. Reader errors are
// returned as the decoder reported them.
func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = wrapKind(ErrExtraction, fmt.Errorf("%v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, wrapKind(ErrExtraction, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := p.pageText(page)
		if err != nil {
			p.log.Warn("skipping unreadable page", zap.Int("page", pageIndex), zap.Error(err))
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &PDFContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
	}, nil
}

func (p *pdfParserService) pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page decode panic: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
