package request

// ByIDRequest is the common shape for endpoints keyed by a UUID path param.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Pagination holds the shared query parameters of list endpoints.
type Pagination struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
