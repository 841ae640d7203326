package model

import "time"

// ChatMessage is one line of the demo chatbot conversation.
type ChatMessage struct {
	Author string    `json:"author"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// WebSearchResult is one result of the mock web search.
type WebSearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Site        string `json:"site"`
}

// GraphNode is a product rendered as a node of the relationship graph.
type GraphNode struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// GraphLink joins two products of the same category.
type GraphLink struct {
	Source uint64 `json:"source"`
	Target uint64 `json:"target"`
}

// Graph is the node/link payload consumed by the graph view.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// Dashboard holds entity counters for the landing page.
type Dashboard struct {
	Products    int64 `json:"products"`
	Contents    int64 `json:"contents"`
	Files       int64 `json:"files"`
	Users       int64 `json:"users"`
	ActiveUsers int64 `json:"active_users"`
	Profiles    int64 `json:"profiles"`
	Permissions int64 `json:"permissions"`
}
