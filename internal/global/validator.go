package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("object_id", validateObjectID)
	_ = Validate.RegisterValidation("signed_qty", validateSignedQty)
}

// validateObjectID kiểm tra string có phải là MongoDB ObjectID hex hợp lệ không
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

// validateSignedQty kiểm tra quantity khác 0 (âm hoặc dương đều hợp lệ,
// dấu được chuẩn hóa lại theo loại giao dịch ở tầng service)
func validateSignedQty(fl validator.FieldLevel) bool {
	return fl.Field().Int() != 0
}
