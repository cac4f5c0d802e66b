package fields

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddRejectsDuplicatesCaseInsensitively(t *testing.T) {
	set := NewSet()
	if err := set.Add("Invoice", "string"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	tests := []struct {
		name string
		key  string
	}{
		{name: "exact duplicate", key: "Invoice"},
		{name: "case variant", key: "invoice"},
		{name: "trailing whitespace variant", key: "invoice "},
		{name: "upper case variant", key: "INVOICE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := set.Add(tt.key, "string"); err == nil {
				t.Errorf("Add(%q) should conflict", tt.key)
			}
		})
	}

	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}

func TestAddValidation(t *testing.T) {
	set := NewSet()
	if err := set.Add("", "string"); err == nil {
		t.Error("Add() should reject empty key")
	}
	if err := set.Add("   ", "string"); err == nil {
		t.Error("Add() should reject blank key")
	}
	if err := set.Add("Total", "money"); err == nil {
		t.Error("Add() should reject unknown type")
	}
	if err := set.Add("Voucher", "voucher"); err != nil {
		t.Errorf("Add() rejected voucher type: %v", err)
	}
}

func TestEdit(t *testing.T) {
	set := NewSet()
	if err := set.Add("Invoice Number", "string"); err != nil {
		t.Fatal(err)
	}
	if err := set.Add("Total", "currency"); err != nil {
		t.Fatal(err)
	}

	// Renaming onto another field conflicts.
	if err := set.Edit("Total", "invoice number", "currency"); err == nil {
		t.Error("Edit() should reject rename onto an existing field")
	}

	// Case-only rename of the same field is fine.
	if err := set.Edit("Invoice Number", "INVOICE NUMBER", "string"); err != nil {
		t.Errorf("Edit() case-only rename failed: %v", err)
	}

	if err := set.Edit("Total", "Grand Total", "number"); err != nil {
		t.Fatalf("Edit() error: %v", err)
	}
	def, ok := set.Get("grand total")
	if !ok || def.Type != "number" {
		t.Errorf("Get() after edit = %+v, %v", def, ok)
	}
}

func TestRemove(t *testing.T) {
	set := NewSet()
	if err := set.Add("Vendor", "string"); err != nil {
		t.Fatal(err)
	}
	if err := set.Remove("VENDOR"); err != nil {
		t.Errorf("Remove() error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d after removal", set.Len())
	}
	if err := set.Remove("Vendor"); err == nil {
		t.Error("Remove() of missing field should fail")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.json")

	set := NewSet()
	if err := set.Add("Invoice Number", "string"); err != nil {
		t.Fatal(err)
	}
	if err := set.Add("Total", "currency"); err != nil {
		t.Fatal(err)
	}
	if err := set.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defs := loaded.List()
	if len(defs) != 2 {
		t.Fatalf("loaded %d fields, want 2", len(defs))
	}
	if defs[0].Key != "Invoice Number" || defs[0].Type != "string" || defs[0].Format != FormatNotSpecified {
		t.Errorf("first definition = %+v", defs[0])
	}
}

func TestLoadMissingFileYieldsEmptySet(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.json")
	data := `{"fields": [
		{"fieldKey": "Total", "fieldType": "currency", "fieldFormat": "not-specified"},
		{"fieldKey": "total", "fieldType": "string", "fieldFormat": "not-specified"}
	]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject duplicate keys")
	}
}

func TestLoadRejectsInvalidShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.json")
	data := `{"fields": [{"fieldKey": 42}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a file failing schema validation")
	}
}
