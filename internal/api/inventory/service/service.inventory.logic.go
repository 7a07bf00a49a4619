package invsvc

import (
	"fmt"

	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	"laundry_ops/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các hàm thuần túy (không chạm database) của phân hệ kho.
// Tách riêng để kiểm thử độc lập với MongoDB.

// absInt64 trả về giá trị tuyệt đối của n
func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// NormalizeQuantity chuẩn hóa dấu của quantity theo loại giao dịch:
// giao dịch nhập luôn dương, giao dịch xuất luôn âm.
// Quantity bằng 0 hoặc type không hợp lệ trả về lỗi validate.
func NormalizeQuantity(t models.TransactionType, quantity int64) (int64, error) {
	if !t.IsValid() {
		return 0, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Loại giao dịch không hợp lệ: %s", t),
			common.StatusBadRequest,
			nil,
		)
	}
	if quantity == 0 {
		return 0, common.NewError(
			common.ErrCodeValidationInput,
			"Số lượng giao dịch phải khác 0",
			common.StatusBadRequest,
			nil,
		)
	}
	return t.Sign() * absInt64(quantity), nil
}

// PendingAdjustmentFilter là filter cập nhật có điều kiện cho quyết định
// duyệt/từ chối: chỉ khớp khi yêu cầu vẫn đang pending, nên một quyết định
// đã commit trước đó không bao giờ bị ghi đè (MatchedCount == 0 thay vì ghi nhầm).
func PendingAdjustmentFilter(requestID primitive.ObjectID) bson.M {
	return bson.M{"_id": requestID, "status": models.AdjustmentPending}
}

// StockDelta là mức thay đổi onHand/pendingTransferOut của một vật tư
// ở chi nhánh nguồn trong một bước của phiếu điều chuyển
type StockDelta struct {
	ItemID             primitive.ObjectID
	OnHand             int64
	PendingTransferOut int64
}

// ReservationDeltas tính mức giữ chỗ tồn kho nguồn khi duyệt phiếu:
// từng dòng onHand -= quantity, pendingTransferOut += quantity.
func ReservationDeltas(lines []models.TransferLine) []StockDelta {
	result := make([]StockDelta, len(lines))
	for i, line := range lines {
		result[i] = StockDelta{
			ItemID:             line.ItemID,
			OnHand:             -line.Quantity,
			PendingTransferOut: line.Quantity,
		}
	}
	return result
}

// ReleaseDeltas giải phóng giữ chỗ ở nguồn lúc nhận hàng, theo số lượng
// THEO PHIẾU (không phải số lượng thực nhận). Không chạm vào onHand nguồn.
func ReleaseDeltas(lines []models.TransferLine) []StockDelta {
	result := make([]StockDelta, len(lines))
	for i, line := range lines {
		result[i] = StockDelta{
			ItemID:             line.ItemID,
			PendingTransferOut: -line.Quantity,
		}
	}
	return result
}

// RollbackDeltas hoàn trả giữ chỗ khi hủy phiếu đã duyệt:
// nghịch đảo chính xác của ReservationDeltas.
func RollbackDeltas(lines []models.TransferLine) []StockDelta {
	result := make([]StockDelta, len(lines))
	for i, line := range lines {
		result[i] = StockDelta{
			ItemID:             line.ItemID,
			OnHand:             line.Quantity,
			PendingTransferOut: -line.Quantity,
		}
	}
	return result
}

// CheckStockAfter tính onHand sau giao dịch và kiểm tra bất biến tồn kho không âm
func CheckStockAfter(itemName string, onHand int64, signedQty int64) (int64, error) {
	stockAfter := onHand + signedQty
	if stockAfter < 0 {
		return 0, common.NewInsufficientStockError(itemName, onHand, absInt64(signedQty))
	}
	return stockAfter, nil
}

// ApplyReceivedLines gán số lượng thực nhận vào các dòng của phiếu điều chuyển.
// Dòng không được khai báo trong overrides coi như nhận đủ theo phiếu.
// Khai báo trùng vật tư hoặc vật tư không có trong phiếu trả về lỗi validate.
func ApplyReceivedLines(lines []models.TransferLine, overrides []dto.TransferReceiveLineInput) ([]models.TransferLine, error) {
	received := make(map[primitive.ObjectID]int64, len(overrides))
	for _, o := range overrides {
		itemID, err := primitive.ObjectIDFromHex(o.ItemID)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		if _, ok := received[itemID]; ok {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Vật tư %s xuất hiện nhiều lần trong danh sách nhận hàng", o.ItemID),
				common.StatusBadRequest,
				nil,
			)
		}
		received[itemID] = o.ReceivedQuantity
	}

	result := make([]models.TransferLine, len(lines))
	matched := 0
	for i, line := range lines {
		qty := line.Quantity
		if override, ok := received[line.ItemID]; ok {
			qty = override
			matched++
		}
		line.ReceivedQuantity = &qty
		result[i] = line
	}

	if matched != len(received) {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Danh sách nhận hàng chứa vật tư không có trong phiếu điều chuyển",
			common.StatusBadRequest,
			nil,
		)
	}

	return result, nil
}

// ComputeDiscrepancies so sánh số lượng theo phiếu với số lượng thực nhận của từng dòng.
// Chỉ các dòng lệch (thiếu hoặc thừa) mới sinh bản ghi chênh lệch.
func ComputeDiscrepancies(lines []models.TransferLine) []models.TransferDiscrepancy {
	var result []models.TransferDiscrepancy
	for _, line := range lines {
		if line.ReceivedQuantity == nil {
			continue
		}
		received := *line.ReceivedQuantity
		if received == line.Quantity {
			continue
		}
		result = append(result, models.TransferDiscrepancy{
			ItemID:     line.ItemID,
			SKU:        line.SKU,
			Expected:   line.Quantity,
			Received:   received,
			Difference: received - line.Quantity,
		})
	}
	return result
}

// SummarizeTransactions gom các giao dịch theo loại và tính tổng nhập/xuất trong kỳ.
// Thứ tự các loại trong kết quả ổn định theo lần xuất hiện đầu tiên.
func SummarizeTransactions(txs []models.InventoryTransaction) (byType []dto.TypeSummary, totalIn int64, totalOut int64) {
	index := map[models.TransactionType]int{}

	for _, tx := range txs {
		if !tx.Type.IsValid() {
			// Dữ liệu lỗi không làm hỏng cả báo cáo, chỉ bị bỏ qua
			continue
		}

		i, ok := index[tx.Type]
		if !ok {
			i = len(byType)
			index[tx.Type] = i
			byType = append(byType, dto.TypeSummary{Type: tx.Type})
		}
		byType[i].Count++
		byType[i].TotalQuantity += tx.Quantity

		if tx.Quantity > 0 {
			totalIn += tx.Quantity
		} else {
			totalOut += -tx.Quantity
		}
	}

	return byType, totalIn, totalOut
}
