package database

import (
	"context"
	"fmt"
	"laundry_ops/config"
	"laundry_ops/internal/logger"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// GetInstance khởi tạo và trả về *mongo.Client từ connection URI trong cấu hình.
// Read/write concern mặc định là majority vì toàn bộ các thao tác ghi nghiệp vụ
// chạy trong multi-document transaction (cần replica set).
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("database connection URL is empty")
	}

	// Cài đặt các options cho client
	clientOptions := options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(50).                       // Giới hạn tối đa 50 connections
		SetMinPoolSize(10).                       // Giữ tối thiểu 10 connections trong pool
		SetConnectTimeout(5 * time.Second).       // Timeout khi kết nối
		SetSocketTimeout(10 * time.Second).       // Timeout khi gửi nhận dữ liệu
		SetReadConcern(readconcern.Majority()).   // Đọc dữ liệu đã được majority xác nhận
		SetWriteConcern(writeconcern.Majority()) // Ghi dữ liệu cần majority xác nhận

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tạo client
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Kiểm tra kết nối
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelPing()

	err = client.Ping(ctxPing, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GetAppLogger().Info("Successfully connected to MongoDB")
	return client, nil
}

// CloseInstance đóng kết nối MongoDB client
func CloseInstance(client *mongo.Client) error {
	if err := client.Disconnect(context.TODO()); err != nil {
		logger.GetAppLogger().WithError(err).Error("Failed to disconnect MongoDB client")
		return err
	}
	logger.GetAppLogger().Info("Successfully disconnected from MongoDB")
	return nil
}
