package service

import (
	"context"

	"github.com/iliyamo/backoffice/internal/model"
)

// GraphService turns the product catalogue into a node/link graph.
type GraphService struct {
	products *ProductService
}

func NewGraphService(products *ProductService) *GraphService {
	return &GraphService{products: products}
}

// Build loads the products of category ("" or "Tutte" for all) and links
// each product to the next two of the same category, in id order.
func (s *GraphService) Build(ctx context.Context, category string) (*model.Graph, error) {
	if isAll(category) {
		category = ""
	}
	products, err := s.products.ListAll(ctx, category)
	if err != nil {
		return nil, err
	}
	return BuildGraph(products), nil
}

// BuildGraph is the pure part of Build.
func BuildGraph(products []model.Product) *model.Graph {
	g := &model.Graph{Nodes: make([]model.GraphNode, 0, len(products)), Links: []model.GraphLink{}}
	groups := map[string][]uint64{}
	var order []string
	for _, p := range products {
		g.Nodes = append(g.Nodes, model.GraphNode{
			ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price,
			Quantity: p.Quantity, Description: p.Description,
		})
		if _, ok := groups[p.Category]; !ok {
			order = append(order, p.Category)
		}
		groups[p.Category] = append(groups[p.Category], p.ID)
	}
	for _, c := range order {
		ids := groups[c]
		for i := range ids {
			for j := i + 1; j <= i+2 && j < len(ids); j++ {
				g.Links = append(g.Links, model.GraphLink{Source: ids[i], Target: ids[j]})
			}
		}
	}
	return g
}
