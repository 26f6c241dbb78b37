package models

type ScanResponse struct {
	Message  string         `json:"message"`
	Keywords []string       `json:"keywords"`
	Results  []ResultRecord `json:"results"`
	Summary  ScanSummary    `json:"summary"`
}

type DocumentResponse struct {
	ID             string `json:"id"`
	Filename       string `json:"filename"`
	OriginalName   string `json:"original_name"`
	FileURL        string `json:"file_url"`
	ContentType    string `json:"content_type"`
	Size           int64  `json:"size"`
	StorageBackend string `json:"storage_backend"`
	CreatedAt      string `json:"created_at"`
}

func NewDocumentResponse(doc *Document) DocumentResponse {
	return DocumentResponse{
		ID:             doc.ID.String(),
		Filename:       doc.Filename,
		OriginalName:   doc.OriginalFileName,
		FileURL:        doc.FileURL,
		ContentType:    doc.ContentType,
		Size:           doc.Size,
		StorageBackend: doc.StorageBackend,
		CreatedAt:      doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
