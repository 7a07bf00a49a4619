// Package models - Test đồ thị trạng thái của phiếu điều chuyển.
package models

import "testing"

func TestTransferStatus_CanTransitionTo(t *testing.T) {
	valid := []struct {
		from TransferStatus
		to   TransferStatus
	}{
		{TransferDraft, TransferRequested},
		{TransferRequested, TransferApproved},
		{TransferApproved, TransferInTransit},
		{TransferInTransit, TransferReceived},
		{TransferReceived, TransferReconciled},
	}
	for _, tc := range valid {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Errorf("phải cho phép chuyển từ %s sang %s", tc.from, tc.to)
		}
	}

	invalid := []struct {
		from TransferStatus
		to   TransferStatus
	}{
		{TransferDraft, TransferApproved},     // không được nhảy cóc
		{TransferRequested, TransferInTransit}, // phải duyệt trước
		{TransferApproved, TransferReceived},  // phải dispatch trước
		{TransferReceived, TransferReceived},  // không tự chuyển sang chính mình
		{TransferReconciled, TransferDraft},   // trạng thái cuối không chuyển tiếp
		{TransferCancelled, TransferRequested},
		{TransferInTransit, TransferApproved}, // không đi ngược
	}
	for _, tc := range invalid {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("không được cho phép chuyển từ %s sang %s", tc.from, tc.to)
		}
	}
}

func TestTransferStatus_CanCancel(t *testing.T) {
	// Hủy được cho tới trước khi nhận hàng, kể cả khi hàng đang trên đường
	cancellable := []TransferStatus{TransferDraft, TransferRequested, TransferApproved, TransferInTransit}
	for _, s := range cancellable {
		if !s.CanCancel() {
			t.Errorf("phiếu ở trạng thái %s phải hủy được", s)
		}
	}

	notCancellable := []TransferStatus{TransferReceived, TransferReconciled, TransferCancelled}
	for _, s := range notCancellable {
		if s.CanCancel() {
			t.Errorf("phiếu ở trạng thái %s không được hủy", s)
		}
	}
}

func TestTransferStatus_NeedsStockRollback(t *testing.T) {
	// Giữ chỗ tồn kho có hiệu lực từ lúc duyệt đến trước khi nhận,
	// nên hủy ở approved lẫn in_transit đều phải hoàn trả
	for _, s := range []TransferStatus{TransferApproved, TransferInTransit} {
		if !s.NeedsStockRollback() {
			t.Errorf("hủy phiếu %s phải hoàn trả tồn kho đã giữ chỗ", s)
		}
	}
	for _, s := range []TransferStatus{TransferDraft, TransferRequested, TransferReceived} {
		if s.NeedsStockRollback() {
			t.Errorf("hủy phiếu ở trạng thái %s không được đụng vào tồn kho", s)
		}
	}
}

func TestTransferStatus_IsTerminal(t *testing.T) {
	if !TransferReconciled.IsTerminal() || !TransferCancelled.IsTerminal() {
		t.Error("reconciled và cancelled phải là trạng thái cuối")
	}
	for _, s := range []TransferStatus{TransferDraft, TransferRequested, TransferApproved, TransferInTransit, TransferReceived} {
		if s.IsTerminal() {
			t.Errorf("%s không phải trạng thái cuối", s)
		}
	}
}

func TestTransferStatus_IsValid(t *testing.T) {
	if TransferStatus("shipped").IsValid() {
		t.Error("trạng thái lạ phải bị từ chối")
	}
	if !TransferInTransit.IsValid() {
		t.Error("in_transit phải là trạng thái hợp lệ")
	}
}
