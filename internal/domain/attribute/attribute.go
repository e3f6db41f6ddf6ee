// Package attribute names the catalog columns understood by the recommender.
package attribute

import "strings"

// Name is a canonical attribute identifier.
type Name string

// Attribute names.
const (
	ProductName   Name = "product_name"
	MainCategory  Name = "main_category"
	CategoryStyle Name = "category_style"
	Occasion      Name = "occasion"
	Season        Name = "season"
	Gender        Name = "gender"
	FitType       Name = "fit_type"
	Fabric        Name = "fabric"
	Color         Name = "color" // raw free text, classified into ColorCategory
	ColorCategory Name = "color_category"
	ShoeColor     Name = "shoe_color"
	ShoeStyle     Name = "shoe_style"
	Price         Name = "price"
	Discount      Name = "discount"
	WorkDetails   Name = "work_details"
	ImageRef      Name = "image_ref"
	ProductLink   Name = "product_link"
	SourceLink    Name = "source_link"
)

// QueryFields are the fields a caller supplies in a recommendation query.
var QueryFields = []Name{
	MainCategory, CategoryStyle, Occasion, Season, Gender, FitType, Fabric,
}

// Features are the encoded fields, in vector block order.
var Features = []Name{
	MainCategory, CategoryStyle, Occasion, Season, Gender, FitType, Fabric, ColorCategory,
}

// Output are the fields of a returned item. An item missing any of them is never returned.
var Output = []Name{
	ProductName, MainCategory, CategoryStyle, Occasion, Season, Gender, FitType, Fabric,
	ColorCategory, ImageRef, ProductLink, SourceLink, ShoeColor, ShoeStyle,
	Price, Discount, WorkDetails,
}

// Columns is the canonical dataset column order.
var Columns = []Name{
	ProductName, MainCategory, CategoryStyle, Occasion, Season, Gender, FitType, Fabric,
	WorkDetails, ColorCategory, ShoeColor, ShoeStyle, Price, Discount,
	ImageRef, ProductLink, SourceLink,
}

// aliases maps normalized dataset headers that differ from canonical names.
var aliases = map[string]Name{
	"price_pkr":             Price,
	"image_url_src":         ImageRef,
	"image_url":             ImageRef,
	"products_href":         ProductLink,
	"web_scraper_start_url": SourceLink,
}

var known = func() map[Name]bool {
	m := make(map[Name]bool)
	for _, n := range []Name{
		ProductName, MainCategory, CategoryStyle, Occasion, Season, Gender, FitType, Fabric,
		Color, ColorCategory, ShoeColor, ShoeStyle, Price, Discount, WorkDetails,
		ImageRef, ProductLink, SourceLink,
	} {
		m[n] = true
	}
	return m
}()

// Parse maps a dataset header onto a canonical name.
// Matching ignores case, surrounding space and the separator used (space, dash, underscore).
func Parse(header string) (Name, bool) {
	h := normalize(header)
	if n, ok := aliases[h]; ok {
		return n, true
	}
	if known[Name(h)] {
		return Name(h), true
	}
	return "", false
}

// Valid reports whether n is a known attribute.
func (n Name) Valid() bool { return known[n] }

func (n Name) String() string { return string(n) }

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
}
