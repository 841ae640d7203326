package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/paging"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
)

// ProductFilter narrows a product listing.  Blank fields mean "no filter".
type ProductFilter struct {
	Search   string
	Category string
}

// ProductInput is the editable part of a product.  Price and Quantity are
// pointers so that a missing value can be told apart from zero.
type ProductInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	Category    string         `json:"category"`
	Quantity    *int           `json:"quantity"`
	Metadata    model.Metadata `json:"metadata"`
}

// MaxPrice bounds a product price so that its cent amount fits price_cents.
const MaxPrice = 999_999_999.99

// Validate checks the required fields and numeric ranges.
func (in ProductInput) Validate() error {
	var v ValidationError
	if blank(in.Name) {
		v.add("name", "Il nome del prodotto è obbligatorio")
	}
	if in.Price == nil || math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0) || *in.Price < 0 || *in.Price > MaxPrice {
		v.add("price", "Inserisci un prezzo valido")
	}
	if blank(in.Category) {
		v.add("category", "La categoria è obbligatoria")
	}
	if in.Quantity == nil || *in.Quantity < 0 {
		v.add("quantity", "Inserisci la quantità")
	}
	return v.err()
}

func (in ProductInput) apply(p *model.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.SetPriceCents(int64(math.Round(*in.Price * 100)))
	p.Category = strings.TrimSpace(in.Category)
	p.Quantity = *in.Quantity
	p.Metadata = in.Metadata
}

// ProductService wraps ProductRepo.
type ProductService struct {
	repo   *repository.ProductRepo
	events EventSink
	log    *zap.Logger
}

func NewProductService(repo *repository.ProductRepo, events EventSink, log *zap.Logger) *ProductService {
	return &ProductService{repo: repo, events: events, log: log}
}

// List picks the query from the filter: category and search together
// narrow the category by name, either one alone uses its own query and
// neither lists everything.
func (s *ProductService) List(ctx context.Context, f ProductFilter, pr paging.PageRequest) (paging.Page[model.Product], error) {
	search := strings.TrimSpace(f.Search)
	category := strings.TrimSpace(f.Category)
	switch {
	case search != "" && category != "":
		return s.repo.FindByCategoryAndName(ctx, category, search, pr)
	case search != "":
		return s.repo.Search(ctx, search, pr)
	case category != "":
		return s.repo.FindByCategory(ctx, category, pr)
	default:
		return s.repo.FindAll(ctx, pr)
	}
}

// Query adapts List to a grid whose free-text filter is the search term.
func (s *ProductService) Query(category string) paging.QueryFunc[model.Product] {
	return func(ctx context.Context, pr paging.PageRequest, search string) (paging.Page[model.Product], error) {
		return s.List(ctx, ProductFilter{Search: search, Category: category}, pr)
	}
}

// Search matches name, description or category.
func (s *ProductService) Search(ctx context.Context, term string, pr paging.PageRequest) (paging.Page[model.Product], error) {
	return s.repo.Search(ctx, strings.TrimSpace(term), pr)
}

// FindByCategory pages over one category.
func (s *ProductService) FindByCategory(ctx context.Context, category string, pr paging.PageRequest) (paging.Page[model.Product], error) {
	return s.repo.FindByCategory(ctx, strings.TrimSpace(category), pr)
}

// SearchByCategory narrows one category by name.
func (s *ProductService) SearchByCategory(ctx context.Context, category, term string, pr paging.PageRequest) (paging.Page[model.Product], error) {
	return s.repo.FindByCategoryAndName(ctx, strings.TrimSpace(category), strings.TrimSpace(term), pr)
}

// Categories lists the categories in use.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// ListAll returns every product unpaged; category narrows when not blank.
func (s *ProductService) ListAll(ctx context.Context, category string) ([]model.Product, error) {
	if c := strings.TrimSpace(category); c != "" {
		return s.repo.ListByCategory(ctx, c)
	}
	return s.repo.ListAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id uint64) (*model.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in and inserts a new product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &model.Product{UploadedBy: ActorFrom(ctx)}
	in.apply(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.events.Publish(ctx, changed("product", queue.ActionCreated, p.ID, p.Name))
	return p, nil
}

// Update validates in and overwrites product id.
func (s *ProductService) Update(ctx context.Context, id uint64, in ProductInput) (*model.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &model.Product{ID: id}
	in.apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("product", queue.ActionUpdated, p.ID, p.Name))
	return p, nil
}

// Delete removes product id.
func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("product", queue.ActionDeleted, id, ""))
	return nil
}

// AttachFile stores data as the file of product id.  An empty declared
// type is replaced by the sniffed MIME type.
func (s *ProductService) AttachFile(ctx context.Context, id uint64, name, fileType string, data []byte) (*model.Product, error) {
	if blank(name) || len(data) == 0 {
		var v ValidationError
		v.add("file", "Errore durante il caricamento del file")
		return nil, &v
	}
	if blank(fileType) {
		fileType = mimetype.Detect(data).String()
	}
	if err := s.repo.AttachFile(ctx, id, strings.TrimSpace(name), fileType, ActorFrom(ctx), data); err != nil {
		return nil, fmt.Errorf("attach file to product %d: %w", id, err)
	}
	s.log.Info("product file stored", zap.Uint64("id", id), zap.String("file", name), zap.Int("bytes", len(data)))
	s.events.Publish(ctx, changed("product", queue.ActionFileAttached, id, name))
	return s.repo.GetByID(ctx, id)
}

// Download loads product id with its blob; ErrNoFile when none is stored.
func (s *ProductService) Download(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := s.repo.GetWithFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(p.FileData) == 0 {
		return nil, ErrNoFile
	}
	return p, nil
}

// Count returns the number of products.
func (s *ProductService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }
