// Package basemodels chứa các kiểu dữ liệu dùng chung cho tầng service/handler
package basemodels

// PaginateResult chứa kết quả truy vấn có phân trang
type PaginateResult[T any] struct {
	Items     []T   `json:"items" bson:"items"`         // Danh sách bản ghi của trang hiện tại
	Page      int64 `json:"page" bson:"page"`           // Trang hiện tại (bắt đầu từ 1)
	Limit     int64 `json:"limit" bson:"limit"`         // Số bản ghi mỗi trang
	ItemCount int64 `json:"itemCount" bson:"itemCount"` // Số bản ghi thực tế trong trang
	Total     int64 `json:"total" bson:"total"`         // Tổng số bản ghi khớp filter
	TotalPage int64 `json:"totalPage" bson:"totalPage"` // Tổng số trang
}
