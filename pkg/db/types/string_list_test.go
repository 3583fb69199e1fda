package dbtypes

import (
	"reflect"
	"testing"
)

func TestStringListValueAndScan(t *testing.T) {
	value, err := StringList{"S", "M"}.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if value != `["S","M"]` {
		t.Fatalf("unexpected encoded value %v", value)
	}

	var l StringList
	if err := l.Scan([]byte(`["kırmızı","mavi"]`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !reflect.DeepEqual(l, StringList{"kırmızı", "mavi"}) {
		t.Fatalf("unexpected list %v", l)
	}

	if err := l.Scan(nil); err != nil || len(l) != 0 {
		t.Fatalf("nil should scan to an empty list, got %v %v", l, err)
	}
	if err := l.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if err := l.Scan("{"); err == nil {
		t.Fatalf("expected error for malformed json")
	}

	empty, _ := StringList(nil).Value()
	if empty != "[]" {
		t.Fatalf("empty list should encode as [], got %v", empty)
	}
}

func TestStringListClean(t *testing.T) {
	got := StringList{" M ", "", "L", "M"}.Clean()
	if !reflect.DeepEqual(got, StringList{"M", "L"}) {
		t.Fatalf("unexpected cleaned list %v", got)
	}
	if !got.Contains("m") || got.Contains("XL") {
		t.Fatalf("unexpected Contains result")
	}
}
