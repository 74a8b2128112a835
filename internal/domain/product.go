package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

type ProductID int

const imageDir = "website_images/PROD_"

type Product struct {
	ID        ProductID
	Title     string
	Category  string
	Price     Money
	ImageFile string
}

func (p Product) ImagePath() string {
	return imageDir + p.ImageFile
}
