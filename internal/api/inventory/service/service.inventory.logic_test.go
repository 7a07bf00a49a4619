// Package invsvc - Test các hàm thuần túy của phân hệ kho:
// chuẩn hóa dấu giao dịch, bất biến tồn kho không âm, nhận hàng điều chuyển
// và tổng hợp báo cáo.
package invsvc

import (
	"errors"
	"testing"

	"laundry_ops/internal/api/inventory/dto"
	"laundry_ops/internal/api/inventory/models"
	"laundry_ops/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("lỗi không phải *common.Error: %v", err)
	}
	return customErr.Code.Code
}

func TestNormalizeQuantity(t *testing.T) {
	// Giao dịch xuất luôn âm, kể cả khi caller truyền số dương
	qty, err := NormalizeQuantity(models.TxUsage, 5)
	if err != nil {
		t.Fatalf("usage với số dương không được lỗi: %v", err)
	}
	if qty != -5 {
		t.Errorf("usage 5 phải chuẩn hóa thành -5, nhận được %d", qty)
	}

	// Giao dịch nhập luôn dương, kể cả khi caller truyền số âm
	qty, err = NormalizeQuantity(models.TxReceipt, -7)
	if err != nil {
		t.Fatalf("receipt với số âm không được lỗi: %v", err)
	}
	if qty != 7 {
		t.Errorf("receipt -7 phải chuẩn hóa thành 7, nhận được %d", qty)
	}

	// Số lượng 0 bị từ chối
	if _, err := NormalizeQuantity(models.TxReceipt, 0); err == nil {
		t.Error("số lượng 0 phải bị từ chối")
	}

	// Loại giao dịch lạ bị từ chối với mã lỗi validate
	_, err = NormalizeQuantity(models.TransactionType("refund"), 3)
	if err == nil {
		t.Fatal("loại giao dịch lạ phải bị từ chối")
	}
	if code := errorCode(t, err); code != common.ErrCodeValidationInput.Code {
		t.Errorf("mã lỗi phải là %s, nhận được %s", common.ErrCodeValidationInput.Code, code)
	}
}

func TestCheckStockAfter(t *testing.T) {
	after, err := CheckStockAfter("Nước giặt", 10, -4)
	if err != nil {
		t.Fatalf("xuất 4 khi tồn 10 không được lỗi: %v", err)
	}
	if after != 6 {
		t.Errorf("tồn sau giao dịch phải là 6, nhận được %d", after)
	}

	// Xuất đúng bằng tồn kho là hợp lệ (về 0)
	after, err = CheckStockAfter("Nước giặt", 4, -4)
	if err != nil {
		t.Fatalf("xuất hết tồn kho phải hợp lệ: %v", err)
	}
	if after != 0 {
		t.Errorf("tồn sau giao dịch phải là 0, nhận được %d", after)
	}

	// Xuất vượt tồn kho bị chặn với mã lỗi tồn kho
	_, err = CheckStockAfter("Nước giặt", 3, -5)
	if err == nil {
		t.Fatal("xuất 5 khi tồn 3 phải bị chặn")
	}
	if code := errorCode(t, err); code != common.ErrCodeBusinessStock.Code {
		t.Errorf("mã lỗi phải là %s, nhận được %s", common.ErrCodeBusinessStock.Code, code)
	}
}

func TestApplyReceivedLines(t *testing.T) {
	itemA := primitive.NewObjectID()
	itemB := primitive.NewObjectID()
	lines := []models.TransferLine{
		{ItemID: itemA, SKU: "DET-001", Quantity: 10},
		{ItemID: itemB, SKU: "SOF-002", Quantity: 4},
	}

	// Không khai báo gì: tất cả các dòng nhận đủ theo phiếu
	result, err := ApplyReceivedLines(lines, nil)
	if err != nil {
		t.Fatalf("nhận đủ không được lỗi: %v", err)
	}
	for i, line := range result {
		if line.ReceivedQuantity == nil || *line.ReceivedQuantity != line.Quantity {
			t.Errorf("dòng %d phải nhận đủ %d", i, line.Quantity)
		}
	}

	// Khai báo thiếu cho một dòng, dòng còn lại nhận đủ
	result, err = ApplyReceivedLines(lines, []dto.TransferReceiveLineInput{
		{ItemID: itemA.Hex(), ReceivedQuantity: 8},
	})
	if err != nil {
		t.Fatalf("nhận thiếu một dòng không được lỗi: %v", err)
	}
	if *result[0].ReceivedQuantity != 8 {
		t.Errorf("dòng A phải nhận 8, nhận được %d", *result[0].ReceivedQuantity)
	}
	if *result[1].ReceivedQuantity != 4 {
		t.Errorf("dòng B không khai báo phải nhận đủ 4, nhận được %d", *result[1].ReceivedQuantity)
	}

	// Lines gốc không bị mutate
	if lines[0].ReceivedQuantity != nil {
		t.Error("ApplyReceivedLines không được sửa slice đầu vào")
	}

	// Khai báo vật tư không có trong phiếu bị từ chối
	_, err = ApplyReceivedLines(lines, []dto.TransferReceiveLineInput{
		{ItemID: primitive.NewObjectID().Hex(), ReceivedQuantity: 1},
	})
	if err == nil {
		t.Error("khai báo vật tư ngoài phiếu phải bị từ chối")
	}

	// Khai báo trùng vật tư bị từ chối thay vì lặng lẽ lấy dòng cuối
	_, err = ApplyReceivedLines(lines, []dto.TransferReceiveLineInput{
		{ItemID: itemA.Hex(), ReceivedQuantity: 8},
		{ItemID: itemA.Hex(), ReceivedQuantity: 2},
	})
	if err == nil {
		t.Fatal("khai báo trùng vật tư phải bị từ chối")
	}
	if code := errorCode(t, err); code != common.ErrCodeValidationInput.Code {
		t.Errorf("mã lỗi phải là %s, nhận được %s", common.ErrCodeValidationInput.Code, code)
	}
}

func TestPendingAdjustmentFilter(t *testing.T) {
	requestID := primitive.NewObjectID()
	filter := PendingAdjustmentFilter(requestID)

	if filter["_id"] != requestID {
		t.Errorf("filter phải ghim đúng _id, nhận được %v", filter["_id"])
	}
	// Ghim status pending để một quyết định đã commit không bị quyết định
	// đến sau ghi đè: update trên yêu cầu đã quyết định phải không khớp dòng nào
	if filter["status"] != models.AdjustmentPending {
		t.Errorf("filter phải ghim status pending, nhận được %v", filter["status"])
	}
}

func TestReservationDeltas(t *testing.T) {
	itemA := primitive.NewObjectID()
	itemB := primitive.NewObjectID()
	lines := []models.TransferLine{
		{ItemID: itemA, Quantity: 20},
		{ItemID: itemB, Quantity: 5},
	}

	deltas := ReservationDeltas(lines)
	if len(deltas) != len(lines) {
		t.Fatalf("phải có một delta cho mỗi dòng, nhận được %d", len(deltas))
	}
	var totalPending, totalRequested int64
	for i, d := range deltas {
		if d.ItemID != lines[i].ItemID {
			t.Errorf("delta %d phải trỏ đúng vật tư", i)
		}
		if d.OnHand != -lines[i].Quantity || d.PendingTransferOut != lines[i].Quantity {
			t.Errorf("giữ chỗ dòng %d sai: %+v", i, d)
		}
		totalPending += d.PendingTransferOut
		totalRequested += lines[i].Quantity
	}
	// Tổng pendingTransferOut giữ chỗ phải đúng bằng tổng số lượng theo phiếu
	if totalPending != totalRequested {
		t.Errorf("tổng giữ chỗ phải là %d, nhận được %d", totalRequested, totalPending)
	}
}

func TestReservationRollbackRoundTrip(t *testing.T) {
	lines := []models.TransferLine{
		{ItemID: primitive.NewObjectID(), Quantity: 20},
		{ItemID: primitive.NewObjectID(), Quantity: 7},
	}

	reserve := ReservationDeltas(lines)
	rollback := RollbackDeltas(lines)

	// Duyệt rồi hủy phải trả vật tư nguồn về đúng trạng thái trước duyệt:
	// từng dòng cộng dồn về 0 cho cả onHand lẫn pendingTransferOut
	for i := range lines {
		if reserve[i].ItemID != rollback[i].ItemID {
			t.Fatalf("delta dòng %d phải cùng vật tư", i)
		}
		if reserve[i].OnHand+rollback[i].OnHand != 0 {
			t.Errorf("onHand dòng %d không về lại giá trị cũ: %d + %d", i, reserve[i].OnHand, rollback[i].OnHand)
		}
		if reserve[i].PendingTransferOut+rollback[i].PendingTransferOut != 0 {
			t.Errorf("pendingTransferOut dòng %d không về lại giá trị cũ: %d + %d",
				i, reserve[i].PendingTransferOut, rollback[i].PendingTransferOut)
		}
	}
}

func TestReleaseDeltas(t *testing.T) {
	qty18 := int64(18)
	lines := []models.TransferLine{
		{ItemID: primitive.NewObjectID(), Quantity: 20, ReceivedQuantity: &qty18},
	}

	deltas := ReleaseDeltas(lines)
	// Giải phóng theo số lượng THEO PHIẾU (20), không phải số thực nhận (18)
	if deltas[0].PendingTransferOut != -20 {
		t.Errorf("giải phóng phải là -20 theo phiếu, nhận được %d", deltas[0].PendingTransferOut)
	}
	// Nhận hàng không đụng vào onHand nguồn
	if deltas[0].OnHand != 0 {
		t.Errorf("giải phóng không được đụng onHand nguồn, nhận được %d", deltas[0].OnHand)
	}

	// Giữ chỗ rồi giải phóng: pendingTransferOut về 0, onHand nguồn giảm đúng số theo phiếu
	reserve := ReservationDeltas(lines)
	if reserve[0].PendingTransferOut+deltas[0].PendingTransferOut != 0 {
		t.Error("sau giữ chỗ và giải phóng, pendingTransferOut phải về 0")
	}
	if reserve[0].OnHand+deltas[0].OnHand != -20 {
		t.Error("sau giữ chỗ và giải phóng, onHand nguồn phải giảm đúng 20")
	}
}

func TestComputeDiscrepancies(t *testing.T) {
	itemA := primitive.NewObjectID()
	itemB := primitive.NewObjectID()
	itemC := primitive.NewObjectID()
	qty8 := int64(8)
	qty4 := int64(4)
	qty9 := int64(9)

	lines := []models.TransferLine{
		{ItemID: itemA, SKU: "DET-001", Quantity: 10, ReceivedQuantity: &qty8}, // thiếu 2
		{ItemID: itemB, SKU: "SOF-002", Quantity: 4, ReceivedQuantity: &qty4},  // nhận đủ
		{ItemID: itemC, SKU: "BAG-003", Quantity: 6, ReceivedQuantity: &qty9},  // thừa 3
	}

	discrepancies := ComputeDiscrepancies(lines)
	if len(discrepancies) != 2 {
		t.Fatalf("phải có 2 dòng chênh lệch, nhận được %d", len(discrepancies))
	}

	if discrepancies[0].ItemID != itemA || discrepancies[0].Difference != -2 {
		t.Errorf("dòng thiếu hàng phải có difference = -2, nhận được %+v", discrepancies[0])
	}
	if discrepancies[1].ItemID != itemC || discrepancies[1].Difference != 3 {
		t.Errorf("dòng thừa hàng phải có difference = 3, nhận được %+v", discrepancies[1])
	}

	// Chưa nhận hàng (ReceivedQuantity nil) thì không tính chênh lệch
	pending := []models.TransferLine{{ItemID: itemA, Quantity: 10}}
	if d := ComputeDiscrepancies(pending); len(d) != 0 {
		t.Errorf("dòng chưa nhận không được sinh chênh lệch, nhận được %d dòng", len(d))
	}
}

func TestSummarizeTransactions(t *testing.T) {
	txs := []models.InventoryTransaction{
		{Type: models.TxReceipt, Quantity: 100},
		{Type: models.TxUsage, Quantity: -30},
		{Type: models.TxReceipt, Quantity: 50},
		{Type: models.TxDamage, Quantity: -5},
		{Type: models.TransactionType("refund"), Quantity: 999}, // dữ liệu lỗi, bỏ qua
	}

	byType, totalIn, totalOut := SummarizeTransactions(txs)

	if totalIn != 150 {
		t.Errorf("tổng nhập phải là 150, nhận được %d", totalIn)
	}
	if totalOut != 35 {
		t.Errorf("tổng xuất phải là 35 (số dương), nhận được %d", totalOut)
	}

	if len(byType) != 3 {
		t.Fatalf("phải có 3 loại giao dịch, nhận được %d", len(byType))
	}

	// Thứ tự ổn định theo lần xuất hiện đầu tiên
	if byType[0].Type != models.TxReceipt || byType[0].Count != 2 || byType[0].TotalQuantity != 150 {
		t.Errorf("nhóm receipt sai: %+v", byType[0])
	}
	if byType[1].Type != models.TxUsage || byType[1].Count != 1 || byType[1].TotalQuantity != -30 {
		t.Errorf("nhóm usage sai: %+v", byType[1])
	}
	if byType[2].Type != models.TxDamage || byType[2].Count != 1 || byType[2].TotalQuantity != -5 {
		t.Errorf("nhóm damage sai: %+v", byType[2])
	}

	// Không có giao dịch nào: tất cả đều rỗng
	byType, totalIn, totalOut = SummarizeTransactions(nil)
	if len(byType) != 0 || totalIn != 0 || totalOut != 0 {
		t.Error("kỳ không có giao dịch phải trả về kết quả rỗng")
	}
}
