package repository

import (
	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/paging"
)

type mysqlErr1062 struct{}

func (*mysqlErr1062) Error() string { return "Error 1062 (23000): Duplicate entry 'x' for key 'uq'" }

func newProduct(name, category string, cents int64, qty int) *model.Product {
	p := &model.Product{Name: name, Category: category, Quantity: qty}
	p.SetPriceCents(cents)
	return p
}

func pagingDefault() paging.PageRequest { return paging.NewPageRequest(0, 0, nil) }
