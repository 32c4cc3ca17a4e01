package mq

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSaleRegisteredEvent_JSON(t *testing.T) {
	soldAt := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)

	event := SaleRegisteredEvent{
		SaleID:     42,
		BuyerName:  "Maria",
		TotalCents: 15000,
		ItemCount:  3,
		SoldAt:     soldAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded SaleRegisteredEvent
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.SaleID != 42 || decoded.TotalCents != 15000 || decoded.ItemCount != 3 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if !decoded.SoldAt.Equal(soldAt) {
		t.Errorf("sold_at mismatch: %v", decoded.SoldAt)
	}
}

func TestSaleRegisteredEvent_CourtesyFlag(t *testing.T) {
	body, err := json.Marshal(SaleRegisteredEvent{SaleID: 7, Courtesy: true})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m["courtesy"] != true {
		t.Errorf("expected courtesy=true, got %v", m["courtesy"])
	}
	if _, ok := m["buyer_name"]; ok {
		t.Error("empty buyer_name should be omitted")
	}
}
