package queryset

// Page 分页查询的结果
type Page[T any] struct {
	PageNumber int   `json:"pageNumber"` // 页号，从 1 开始
	PageSize   int   `json:"pageSize"`   // 每页行数
	TotalPage  int   `json:"totalPage"`  // 总页数
	TotalRow   int64 `json:"totalRow"`   // 总行数
	List       []*T  `json:"list"`       // 本页数据
}

// NewPage creates a new Page instance and calculates the total pages.
func NewPage[T any](list []*T, pageNumber, pageSize int, totalRow int64) *Page[T] {
	totalPage := 0
	if pageSize > 0 {
		totalPage = int((totalRow + int64(pageSize) - 1) / int64(pageSize))
	}
	return &Page[T]{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPage:  totalPage,
		TotalRow:   totalRow,
		List:       list,
	}
}

// IsFirstPage returns true if the current page is the first page.
func (p *Page[T]) IsFirstPage() bool {
	return p.PageNumber <= 1
}

// IsLastPage returns true if the current page is the last page.
func (p *Page[T]) IsLastPage() bool {
	return p.PageNumber >= p.TotalPage
}
