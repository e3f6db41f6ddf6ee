package chi

import (
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/recommend/query"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/recommend/result"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeIndexUnavailable ErrorCode = "index_unavailable"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// RecommendRequest is an outfit query. color_category is never accepted from callers.
type RecommendRequest struct {
	MainCategory  string `json:"main_category" validate:"required,max=128"`
	CategoryStyle string `json:"category_style" validate:"required,max=128"`
	Occasion      string `json:"occasion" validate:"required,max=128"`
	Season        string `json:"season" validate:"required,max=128"`
	Gender        string `json:"gender" validate:"required,max=64"`
	FitType       string `json:"fit_type" validate:"required,max=128"`
	Fabric        string `json:"fabric" validate:"required,max=128"`
}

func (r *RecommendRequest) fields() map[attribute.Name]*string {
	return map[attribute.Name]*string{
		attribute.MainCategory:  &r.MainCategory,
		attribute.CategoryStyle: &r.CategoryStyle,
		attribute.Occasion:      &r.Occasion,
		attribute.Season:        &r.Season,
		attribute.Gender:        &r.Gender,
		attribute.FitType:       &r.FitType,
		attribute.Fabric:        &r.Fabric,
	}
}

func (r *RecommendRequest) toQuery() query.Query {
	values := make(map[attribute.Name]string, len(attribute.QueryFields))
	for name, v := range r.fields() {
		values[name] = *v
	}
	return query.New(values)
}

// ResultItem is one recommended product.
type ResultItem struct {
	ID            string  `json:"id"`
	Distance      float64 `json:"distance"`
	ProductName   string  `json:"product_name"`
	MainCategory  string  `json:"main_category"`
	CategoryStyle string  `json:"category_style"`
	Occasion      string  `json:"occasion"`
	Season        string  `json:"season"`
	Gender        string  `json:"gender"`
	FitType       string  `json:"fit_type"`
	Fabric        string  `json:"fabric"`
	ColorCategory string  `json:"color_category"`
	ImageRef      string  `json:"image_ref"`
	ProductLink   string  `json:"product_link"`
	SourceLink    string  `json:"source_link"`
	ShoeColor     string  `json:"shoe_color"`
	ShoeStyle     string  `json:"shoe_style"`
	Price         string  `json:"price"`
	Discount      string  `json:"discount"`
	WorkDetails   string  `json:"work_details"`
}

// RecommendResponse lists recommendations nearest first.
// Diagnostic is set when the request failed and Items is empty because of it.
type RecommendResponse struct {
	Items      []ResultItem `json:"items"`
	Count      int          `json:"count"`
	Neighbors  int          `json:"neighbors"`
	Diagnostic string       `json:"diagnostic,omitempty"`
}

// OptionsResponse lists the selectable values per query field.
type OptionsResponse struct {
	Fields        map[string][]string `json:"fields"`
	ColorFamilies []string            `json:"color_families"`
}

// ColorResponse is a color classification.
type ColorResponse struct {
	Color  *string `json:"color"`
	Family string  `json:"family"`
}

// HealthResponse is the aggregated service health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

func resultItemToDTO(r *result.Item) ResultItem {
	return ResultItem{
		ID:            r.ID(),
		Distance:      r.Distance(),
		ProductName:   r.Get(attribute.ProductName),
		MainCategory:  r.Get(attribute.MainCategory),
		CategoryStyle: r.Get(attribute.CategoryStyle),
		Occasion:      r.Get(attribute.Occasion),
		Season:        r.Get(attribute.Season),
		Gender:        r.Get(attribute.Gender),
		FitType:       r.Get(attribute.FitType),
		Fabric:        r.Get(attribute.Fabric),
		ColorCategory: r.Get(attribute.ColorCategory),
		ImageRef:      r.Get(attribute.ImageRef),
		ProductLink:   r.Get(attribute.ProductLink),
		SourceLink:    r.Get(attribute.SourceLink),
		ShoeColor:     r.Get(attribute.ShoeColor),
		ShoeStyle:     r.Get(attribute.ShoeStyle),
		Price:         r.Get(attribute.Price),
		Discount:      r.Get(attribute.Discount),
		WorkDetails:   r.Get(attribute.WorkDetails),
	}
}
