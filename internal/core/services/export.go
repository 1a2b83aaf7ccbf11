package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// insightBullet separates insights in the exported text.
const insightBullet = "• "

// InsightsText renders insights with the export header.
func InsightsText(documentName string, insights []string) string {
	return "Document Insights for " + documentName + "\n\n" +
		insightBullet + strings.Join(insights, "\n\n"+insightBullet)
}

// exportBaseName strips the .pdf extension used for export file names.
func exportBaseName(documentName string) string {
	return strings.TrimSuffix(documentName, ".pdf")
}

// ExportInsights renders insights as a text file.
// When insights is empty they are generated first.
func (s *DocumentService) ExportInsights(
	ctx context.Context, documentID string, insights []string,
) (*driving.TextExport, error) {
	doc, err := s.records.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(insights) == 0 {
		insights = s.gateway.Insights(ctx, doc.Content)
	}

	return &driving.TextExport{
		FileName: exportBaseName(doc.Name) + "_insights.txt",
		Content:  InsightsText(doc.Name, insights),
	}, nil
}

// ExportSummary renders the stored summary as a text file.
// Returns ErrNotFound when the document has no summary yet.
func (s *DocumentService) ExportSummary(ctx context.Context, documentID string) (*driving.TextExport, error) {
	doc, err := s.records.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	summary, err := s.records.GetSummaryByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return &driving.TextExport{
		FileName: exportBaseName(doc.Name) + "_summary.txt",
		Content:  summary.Content,
	}, nil
}

// presentationFileName is the suggested PDF name of a presentation.
func presentationFileName(p *domain.Presentation) string {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = domain.DefaultPresentationTitle
	}
	title = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, title)
	return title + ".pdf"
}
