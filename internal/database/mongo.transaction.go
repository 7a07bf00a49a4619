package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// WithTransaction chạy callback fn trong một MongoDB multi-document transaction.
// Toàn bộ các thao tác đọc-kiểm tra-ghi nghiệp vụ (ghi sổ kho, phê duyệt điều chỉnh,
// các bước chuyển trạng thái điều chuyển) đều đi qua hàm này để đảm bảo atomic.
//
// Snapshot read concern + majority write concern: hai writer ghi cùng một document
// sẽ sinh WriteConflict, driver tự retry toàn bộ callback (TransientTransactionError).
// Callback vì vậy phải idempotent trong phạm vi một lần gọi: mọi phép đọc nằm trong
// callback, không dùng dữ liệu đọc từ ngoài transaction.
//
// Yêu cầu MongoDB chạy dạng replica set (standalone không hỗ trợ transaction).
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	txnOptions := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	result, err := session.WithTransaction(ctx, fn, txnOptions)
	if err != nil {
		return nil, err
	}

	return result, nil
}
