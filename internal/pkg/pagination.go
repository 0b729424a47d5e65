package pkg

import "strconv"

// Page 分页结果元数据，Offset/Limit 交给仓储层做切片
type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Total       int64 `json:"total"`
	Offset      int   `json:"-"`
	Limit       int   `json:"-"`
}

// Paginate 解析页码参数并夹取到合法范围：
// 非数字或缺省 -> 第 1 页；小于 1 或超过总页数 -> 最后一页。
// 空集合也算 1 页（空页）。
func Paginate(pageParam string, total int64, size int) Page {
	if size <= 0 {
		size = 1
	}

	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	number := 1
	if pageParam != "" {
		n, err := strconv.Atoi(pageParam)
		if err != nil {
			number = 1
		} else if n < 1 || n > numPages {
			number = numPages
		} else {
			number = n
		}
	}

	return Page{
		Number:      number,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
		Total:       total,
		Offset:      (number - 1) * size,
		Limit:       size,
	}
}
