package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/model"
)

const isoDate = "2006-01-02"

// DocumentSearchService is the document search front end.  No index sits
// behind it yet: Search validates and logs the filter and answers with a
// fixed result set.
type DocumentSearchService struct {
	log *zap.Logger
}

func NewDocumentSearchService(log *zap.Logger) *DocumentSearchService {
	return &DocumentSearchService{log: log}
}

var mockDocuments = []model.DocumentResult{
	{FileName: "report_sicurezza.pdf", Title: "Analisi difesa 2025", Date: "2024-03-10", Type: model.DocTypeClassified, Size: "1.2 MB"},
	{FileName: "cyber-threats.docx", Title: "Minacce attuali", Date: "2024-02-01", Type: model.DocTypeUnclassified, Size: "530 KB"},
	{FileName: "innovazione2024.pdf", Title: "Progetto nuove tecnologie", Date: "2024-01-15", Type: model.DocTypeClassified, Size: "2.5 MB"},
	{FileName: "budget-2025.xlsx", Title: "Piano finanziario annuale", Date: "2024-02-15", Type: model.DocTypeClassified, Size: "850 KB"},
	{FileName: "meeting-notes.docx", Title: "Verbale riunione", Date: "2024-03-01", Type: model.DocTypeUnclassified, Size: "120 KB"},
}

// StructureTree returns the organisational tree a search can be scoped to.
func (s *DocumentSearchService) StructureTree() []*model.StructureNode {
	return []*model.StructureNode{
		{Code: "CT01", Type: "Complesso", Description: "Sicurezza Nazionale", Children: []*model.StructureNode{
			{Code: "AR01", Type: "Area", Description: "Intelligence", Children: []*model.StructureNode{
				{Code: "TR01", Type: "Trattazione", Description: "Analisi Strategica"},
			}},
		}},
		{Code: "CT02", Type: "Complesso", Description: "Innovazione Tecnologica", Children: []*model.StructureNode{
			{Code: "AR02", Type: "Area", Description: "Cybersecurity", Children: []*model.StructureNode{
				{Code: "TR02", Type: "Trattazione", Description: "Minacce Informatiche"},
			}},
		}},
	}
}

// Validate checks the date range and the size range of f.
func (s *DocumentSearchService) Validate(f model.DocumentSearchFilter) error {
	var v ValidationError
	var from, to time.Time
	var err error
	if f.DateFrom != "" {
		if from, err = time.Parse(isoDate, f.DateFrom); err != nil {
			v.add("date_from", "Data non valida")
		}
	}
	if f.DateTo != "" {
		if to, err = time.Parse(isoDate, f.DateTo); err != nil {
			v.add("date_to", "Data non valida")
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		v.add("date_from", "La data di inizio non può essere successiva alla data di fine")
	}
	if f.SizeMinKB != nil && (*f.SizeMinKB < 0 || math.IsNaN(*f.SizeMinKB)) {
		v.add("size_min_kb", "Valore non valido")
	}
	if f.SizeMaxKB != nil && (*f.SizeMaxKB < 0 || math.IsNaN(*f.SizeMaxKB)) {
		v.add("size_max_kb", "Valore non valido")
	}
	if f.SizeMinKB != nil && f.SizeMaxKB != nil && *f.SizeMinKB > *f.SizeMaxKB {
		v.add("size_min_kb", "La dimensione minima non può essere maggiore della massima")
	}
	if t := strings.TrimSpace(f.Type); t != "" && t != model.DocTypeClassified && t != model.DocTypeUnclassified {
		v.add("type", "Tipologia non valida")
	}
	return v.err()
}

// Search validates f, logs it and returns the result rows with a badge per
// active criterion.
func (s *DocumentSearchService) Search(ctx context.Context, f model.DocumentSearchFilter) (*model.DocumentSearchResult, error) {
	if err := s.Validate(f); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.log.Info("document search",
		zap.String("file_name", f.FileName),
		zap.String("type", f.Type),
		zap.String("date_from", f.DateFrom),
		zap.String("date_to", f.DateTo),
		zap.String("author", f.Author),
		zap.String("format", f.Format),
		zap.Float64p("size_min_kb", f.SizeMinKB),
		zap.Float64p("size_max_kb", f.SizeMaxKB),
		zap.String("title", f.Title),
		zap.String("tags", f.Tags),
		zap.String("metadata_key", f.MetadataKey),
		zap.String("metadata_value", f.MetadataValue),
		zap.Any("structure", f.Structure),
	)
	results := make([]model.DocumentResult, len(mockDocuments))
	copy(results, mockDocuments)
	return &model.DocumentSearchResult{Results: results, Filters: FilterBadges(f)}, nil
}

// FilterBadges lists "label: value" pairs for the non-empty criteria of f,
// in form order.  The custom metadata pair uses the key as its label and
// only shows when both key and value are set.
func FilterBadges(f model.DocumentSearchFilter) []model.FilterBadge {
	out := []model.FilterBadge{}
	add := func(label, value string) {
		if value != "" {
			out = append(out, model.FilterBadge{Label: label, Value: value})
		}
	}
	kb := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64) + " KB"
	}
	add("Nome", f.FileName)
	add("Tipologia", f.Type)
	add("Data Da", f.DateFrom)
	add("Data A", f.DateTo)
	add("Autore", f.Author)
	add("Formato", f.Format)
	add("Dim. Min", kb(f.SizeMinKB))
	add("Dim. Max", kb(f.SizeMaxKB))
	add("Titolo", f.Title)
	add("Tags", f.Tags)
	if f.MetadataKey != "" && f.MetadataValue != "" {
		add(f.MetadataKey, f.MetadataValue)
	}
	if f.Structure != nil {
		add("Struttura", f.Structure.Description)
	}
	return out
}
