// Package basesvc - Test chuyển đổi dữ liệu update sang UpdateData.
package basesvc

import "testing"

func TestToUpdateData_MapThuong(t *testing.T) {
	data := map[string]interface{}{"name": "Nước giặt", "reorderLevel": 5}
	update, err := ToUpdateData(data)
	if err != nil {
		t.Fatalf("map thường không được lỗi: %v", err)
	}
	if update.Set == nil {
		t.Fatal("map thường phải được wrap trong $set")
	}
	if update.Set["name"] != "Nước giặt" {
		t.Errorf("giá trị trong $set sai: %v", update.Set["name"])
	}
	if update.Inc != nil || update.Push != nil {
		t.Error("map thường không được sinh các operator khác")
	}
}

func TestToUpdateData_MapCoOperator(t *testing.T) {
	data := map[string]interface{}{
		"$set": map[string]interface{}{"status": "approved"},
		"$inc": map[string]interface{}{"onHand": -3},
	}
	update, err := ToUpdateData(data)
	if err != nil {
		t.Fatalf("map có operator không được lỗi: %v", err)
	}
	if update.Set["status"] != "approved" {
		t.Errorf("$set phải được giữ nguyên, nhận được %v", update.Set)
	}
	// Giá trị số đi qua bson round-trip có thể đổi kiểu (int -> int32),
	// chỉ kiểm tra operator được nhận diện đúng
	if _, ok := update.Inc["onHand"]; !ok {
		t.Errorf("$inc phải được giữ nguyên, nhận được %v", update.Inc)
	}
}

func TestToUpdateData_UpdateDataTruyenThang(t *testing.T) {
	original := UpdateData{Set: map[string]interface{}{"notes": "ok"}}
	update, err := ToUpdateData(original)
	if err != nil {
		t.Fatalf("UpdateData truyền thẳng không được lỗi: %v", err)
	}
	if update.Set["notes"] != "ok" {
		t.Error("UpdateData truyền thẳng phải được giữ nguyên")
	}
}
