package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Kargoya verildi")
	if err != nil || status != OrderStatusShipped {
		t.Fatalf("unexpected status %q err=%v", status, err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if !OrderStatusCanceled.IsTerminal() || OrderStatusPlaced.IsTerminal() {
		t.Fatal("unexpected terminal classification")
	}
}

func TestParseProductSort(t *testing.T) {
	sort, err := ParseProductSort("")
	if err != nil || sort != ProductSortNewest {
		t.Fatalf("expected newest default, got %q err=%v", sort, err)
	}
	if sort, err := ParseProductSort("best_selling"); err != nil || sort != ProductSortBestSelling {
		t.Fatalf("unexpected sort %q err=%v", sort, err)
	}
	if _, err := ParseProductSort("random"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}
