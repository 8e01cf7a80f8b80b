package models

// Product belongs to at most one store; id_store goes null when the store is deleted.
type Product struct {
	IDProduct          int64   `json:"id_product"`
	ProductName        string  `json:"product_name"`
	Price              float64 `json:"price"`
	Category           string  `json:"category"`
	IDStore            *string `json:"id_store"`
	ProductDescription string  `json:"product_description"`
	SoldOut            bool    `json:"sold_out"`
}

// ProductCreateRequest keeps the historical falsy-value validation: a price of
// zero or an empty string fails the required-field check the same way absence does.
type ProductCreateRequest struct {
	ProductName        string  `json:"product_name"`
	Price              float64 `json:"price"`
	Category           string  `json:"category"`
	IDStore            string  `json:"id_store"`
	ProductDescription string  `json:"product_description"`
	SoldOut            bool    `json:"sold_out"`
}

// ProductUpdateRequest uses pointers so a field absent from the JSON body is
// distinguishable from one explicitly set to a zero value. Only absent fields
// keep their stored values.
type ProductUpdateRequest struct {
	ProductName        *string  `json:"product_name"`
	Price              *float64 `json:"price"`
	Category           *string  `json:"category"`
	IDStore            *string  `json:"id_store"`
	ProductDescription *string  `json:"product_description"`
	SoldOut            *bool    `json:"sold_out"`
}

// ProductStatusRequest carries the sold_out toggle; the pointer lets the
// handler reject a body that omits the field while still accepting false.
type ProductStatusRequest struct {
	SoldOut *bool `json:"sold_out"`
}
