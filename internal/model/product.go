package model

import "time"

// Product is a row of the `products` table.  Price is kept in cents in the
// database and exposed as a decimal amount; the attached file blob never
// leaves the server except through the download endpoint.
type Product struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"-"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	FileName    string    `json:"file_name,omitempty"`
	FileType    string    `json:"file_type,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	FileData    []byte    `json:"-"`
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasFile reports whether a blob is attached to the product.
func (p *Product) HasFile() bool { return p.FileName != "" && p.FileSize > 0 }

// SetPriceCents keeps PriceCents and Price in step.
func (p *Product) SetPriceCents(cents int64) {
	p.PriceCents = cents
	p.Price = float64(cents) / 100.0
}
