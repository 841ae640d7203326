package service

import (
	"strings"

	"github.com/iliyamo/backoffice/internal/model"
)

// WebSearchService answers queries with a fixed set of results shaped
// around the query text.
type WebSearchService struct{}

func NewWebSearchService() *WebSearchService { return &WebSearchService{} }

// Search returns five results for q, or a validation error for a blank q.
func (WebSearchService) Search(q string) ([]model.WebSearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		var v ValidationError
		v.add("q", "Inserisci un termine di ricerca")
		return nil, &v
	}
	dash := strings.ReplaceAll(q, " ", "-")
	plus := strings.ReplaceAll(q, " ", "+")
	return []model.WebSearchResult{
		{
			Title:       "Java Programming - Official Documentation",
			URL:         "https://docs.oracle.com/javase/tutorial/",
			Description: "The Java™ Tutorials are practical guides for programmers who want to use the Java programming language to create applications. They include hundreds of complete, working examples...",
			Site:        "Oracle",
		},
		{
			Title:       "Learn " + q + " - Step by Step Guide",
			URL:         "https://www.example.com/guide",
			Description: "Comprehensive guide to " + q + ". Start from basics and advance to expert level. Updated with latest features and best practices for 2025.",
			Site:        "Example Learning Platform",
		},
		{
			Title:       q + " Tutorial for Beginners",
			URL:         "https://www.tutorial.com/" + dash,
			Description: "Free tutorial covering all aspects of " + q + ". Includes video lessons, code examples, and practical exercises. Perfect for beginners.",
			Site:        "Tutorial.com",
		},
		{
			Title:       "Stack Overflow - " + q + " Questions",
			URL:         "https://stackoverflow.com/questions/tagged/" + plus,
			Description: "Browse thousands of questions and answers about " + q + ". Get help from the community and learn from real-world problems.",
			Site:        "Stack Overflow",
		},
		{
			Title:       "GitHub - " + q + " Projects",
			URL:         "https://github.com/topics/" + dash,
			Description: "Explore open source " + q + " projects on GitHub. Browse repositories, contribute to projects, and learn from other developers' code.",
			Site:        "GitHub",
		},
	}, nil
}
