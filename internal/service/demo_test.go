package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/model"
)

func TestChatbotReply(t *testing.T) {
	svc := NewChatbotService(time.Millisecond)
	msgs, err := svc.Reply(context.Background(), "  ciao  ")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "ciao", msgs[0].Text)
	assert.Equal(t, ChatbotReply, msgs[1].Text)
}

func TestChatbotBlankMessage(t *testing.T) {
	_, err := NewChatbotService(0).Reply(context.Background(), " ")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestChatbotCancelledWhileTyping(t *testing.T) {
	svc := NewChatbotService(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.Reply(ctx, "ciao")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWebSearchResults(t *testing.T) {
	res, err := NewWebSearchService().Search(" spring boot ")
	require.NoError(t, err)
	require.Len(t, res, 5)
	assert.Equal(t, "https://docs.oracle.com/javase/tutorial/", res[0].URL)
	assert.Equal(t, "Learn spring boot - Step by Step Guide", res[1].Title)
	assert.Equal(t, "https://www.tutorial.com/spring-boot", res[2].URL)
	assert.Equal(t, "https://stackoverflow.com/questions/tagged/spring+boot", res[3].URL)
	assert.Equal(t, "https://github.com/topics/spring-boot", res[4].URL)

	_, err = NewWebSearchService().Search("")
	assert.Error(t, err)
}

func TestBuildGraphLinksNextTwoInCategory(t *testing.T) {
	products := []model.Product{
		{ID: 1, Category: "Audio"},
		{ID: 2, Category: "Rete"},
		{ID: 3, Category: "Audio"},
		{ID: 4, Category: "Audio"},
		{ID: 5, Category: "Audio"},
	}
	g := BuildGraph(products)
	assert.Len(t, g.Nodes, 5)
	assert.Equal(t, []model.GraphLink{
		{Source: 1, Target: 3}, {Source: 1, Target: 4},
		{Source: 3, Target: 4}, {Source: 3, Target: 5},
		{Source: 4, Target: 5},
	}, g.Links)

	empty := BuildGraph(nil)
	assert.NotNil(t, empty.Links)
	assert.Empty(t, empty.Nodes)
}

func TestDocumentSearchValidation(t *testing.T) {
	svc := NewDocumentSearchService(zap.NewNop())

	err := svc.Validate(model.DocumentSearchFilter{DateFrom: "2024-03-10", DateTo: "2024-03-01"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "date_from")

	err = svc.Validate(model.DocumentSearchFilter{SizeMinKB: ptr(10.0), SizeMaxKB: ptr(5.0)})
	require.True(t, errors.As(err, &ve))

	err = svc.Validate(model.DocumentSearchFilter{SizeMinKB: ptr(-1.0)})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "size_min_kb")

	assert.NoError(t, svc.Validate(model.DocumentSearchFilter{DateFrom: "2024-01-01", DateTo: "2024-01-01"}))
}

func TestDocumentSearchResultsAndBadges(t *testing.T) {
	svc := NewDocumentSearchService(zap.NewNop())
	res, err := svc.Search(context.Background(), model.DocumentSearchFilter{
		FileName:      "report",
		Type:          model.DocTypeClassified,
		SizeMinKB:     ptr(100.0),
		MetadataKey:   "Autore",
		MetadataValue: "Rossi",
		Structure:     &model.StructureNode{Code: "AR01", Type: "Area", Description: "Intelligence"},
	})
	require.NoError(t, err)
	assert.Len(t, res.Results, 5)
	assert.Equal(t, "report_sicurezza.pdf", res.Results[0].FileName)
	assert.Equal(t, []model.FilterBadge{
		{Label: "Nome", Value: "report"},
		{Label: "Tipologia", Value: "CLASSIFICATO"},
		{Label: "Dim. Min", Value: "100 KB"},
		{Label: "Autore", Value: "Rossi"},
		{Label: "Struttura", Value: "Intelligence"},
	}, res.Filters)
}

func TestStructureTree(t *testing.T) {
	tree := NewDocumentSearchService(zap.NewNop()).StructureTree()
	require.Len(t, tree, 2)
	assert.Equal(t, "CT01", tree[0].Code)
	assert.Equal(t, "Analisi Strategica", tree[0].Children[0].Children[0].Description)
	assert.Equal(t, "Minacce Informatiche", tree[1].Children[0].Children[0].Description)
}

func TestClassifyMIME(t *testing.T) {
	assert.Equal(t, "PDF", ClassifyMIME("application/pdf"))
	assert.Equal(t, "IMAGE", ClassifyMIME("image/png"))
	assert.Equal(t, "ARCHIVE", ClassifyMIME("application/zip"))
	assert.Equal(t, "DOCUMENT", ClassifyMIME("text/plain; charset=utf-8"))
	assert.Equal(t, "DOCUMENT", ClassifyMIME("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, "OTHER", ClassifyMIME("application/octet-stream"))
}
