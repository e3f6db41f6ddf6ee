package catalog

import "github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"

// parquetRow is the Parquet layout of a catalog row. Columns use canonical names.
type parquetRow struct {
	ProductName   *string `parquet:"product_name,optional"`
	MainCategory  *string `parquet:"main_category,optional"`
	CategoryStyle *string `parquet:"category_style,optional"`
	Occasion      *string `parquet:"occasion,optional"`
	Season        *string `parquet:"season,optional"`
	Gender        *string `parquet:"gender,optional"`
	FitType       *string `parquet:"fit_type,optional"`
	Fabric        *string `parquet:"fabric,optional"`
	Color         *string `parquet:"color,optional"`
	ColorCategory *string `parquet:"color_category,optional"`
	ShoeColor     *string `parquet:"shoe_color,optional"`
	ShoeStyle     *string `parquet:"shoe_style,optional"`
	Price         *string `parquet:"price,optional"`
	Discount      *string `parquet:"discount,optional"`
	WorkDetails   *string `parquet:"work_details,optional"`
	ImageRef      *string `parquet:"image_ref,optional"`
	ProductLink   *string `parquet:"product_link,optional"`
	SourceLink    *string `parquet:"source_link,optional"`
}

func (p *parquetRow) toMap() map[attribute.Name]string {
	m := make(map[attribute.Name]string, 18)
	set := func(n attribute.Name, v *string) {
		if v != nil {
			m[n] = *v
		}
	}
	set(attribute.ProductName, p.ProductName)
	set(attribute.MainCategory, p.MainCategory)
	set(attribute.CategoryStyle, p.CategoryStyle)
	set(attribute.Occasion, p.Occasion)
	set(attribute.Season, p.Season)
	set(attribute.Gender, p.Gender)
	set(attribute.FitType, p.FitType)
	set(attribute.Fabric, p.Fabric)
	set(attribute.Color, p.Color)
	set(attribute.ColorCategory, p.ColorCategory)
	set(attribute.ShoeColor, p.ShoeColor)
	set(attribute.ShoeStyle, p.ShoeStyle)
	set(attribute.Price, p.Price)
	set(attribute.Discount, p.Discount)
	set(attribute.WorkDetails, p.WorkDetails)
	set(attribute.ImageRef, p.ImageRef)
	set(attribute.ProductLink, p.ProductLink)
	set(attribute.SourceLink, p.SourceLink)
	return m
}
