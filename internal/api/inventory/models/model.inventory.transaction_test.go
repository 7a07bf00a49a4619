// Package models - Test chiều tác động của các loại giao dịch sổ kho
// và mapping từ chiều điều chỉnh sang loại giao dịch.
package models

import "testing"

func TestTransactionType_Sign(t *testing.T) {
	positive := []TransactionType{TxReceipt, TxAdjustmentIn, TxTransferIn, TxReturn}
	for _, tt := range positive {
		if tt.Sign() != 1 {
			t.Errorf("giao dịch %s phải cộng tồn kho, Sign() = %d", tt, tt.Sign())
		}
	}

	negative := []TransactionType{TxAdjustmentOut, TxUsage, TxTransferOut, TxDamage, TxExpired}
	for _, tt := range negative {
		if tt.Sign() != -1 {
			t.Errorf("giao dịch %s phải trừ tồn kho, Sign() = %d", tt, tt.Sign())
		}
	}

	if TransactionType("refund").Sign() != 0 {
		t.Error("loại giao dịch lạ phải có Sign() = 0")
	}
}

func TestTransactionType_IsValid(t *testing.T) {
	if !TxUsage.IsValid() {
		t.Error("usage phải là loại giao dịch hợp lệ")
	}
	if TransactionType("").IsValid() {
		t.Error("chuỗi rỗng không phải loại giao dịch hợp lệ")
	}
	if TransactionType("RECEIPT").IsValid() {
		t.Error("enum phân biệt hoa thường, RECEIPT phải bị từ chối")
	}
}

func TestAdjustmentType_TransactionType(t *testing.T) {
	if AdjustmentIncrease.TransactionType() != TxAdjustmentIn {
		t.Error("điều chỉnh tăng phải sinh giao dịch adjustment_in")
	}
	if AdjustmentDecrease.TransactionType() != TxAdjustmentOut {
		t.Error("điều chỉnh giảm phải sinh giao dịch adjustment_out")
	}
}

func TestAdjustmentStatus_IsValid(t *testing.T) {
	for _, s := range []AdjustmentStatus{AdjustmentPending, AdjustmentApproved, AdjustmentRejected} {
		if !s.IsValid() {
			t.Errorf("trạng thái %s phải hợp lệ", s)
		}
	}
	if AdjustmentStatus("cancelled").IsValid() {
		t.Error("yêu cầu điều chỉnh không có trạng thái cancelled")
	}
}
