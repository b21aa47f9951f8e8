package models

import "fmt"

type Category string

const (
	CategoryLaptop      Category = "Laptop"
	CategoryHeadphone   Category = "Headphone"
	CategoryMobile      Category = "Mobile"
	CategoryElectronics Category = "Electronics"
	CategoryToys        Category = "Toys"
	CategoryFashion     Category = "Fashion"
)

// Categories lists the fixed category set in display order.
var Categories = []Category{
	CategoryLaptop,
	CategoryHeadphone,
	CategoryMobile,
	CategoryElectronics,
	CategoryToys,
	CategoryFashion,
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
