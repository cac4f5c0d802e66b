package label

import (
	"reflect"
	"strings"
	"testing"

	"github.com/skriva/doclabel/pkg/fields"
)

func testFieldSet(t *testing.T, keys ...string) *fields.Set {
	t.Helper()
	set := fields.NewSet()
	for _, key := range keys {
		if err := set.Add(key, "string"); err != nil {
			t.Fatalf("Add(%q): %v", key, err)
		}
	}
	return set
}

func TestBuildDocumentLocatedField(t *testing.T) {
	set := testFieldSet(t, "Total")
	values := map[string]string{"Total": "  Total Due: $500.00  "}

	doc, warnings := BuildDocument(set, values, invoiceWords())

	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if doc.Schema != SchemaURI {
		t.Errorf("schema = %q", doc.Schema)
	}
	if len(doc.Labels) != 1 {
		t.Fatalf("labels = %+v", doc.Labels)
	}
	rec := doc.Labels[0]
	if rec.Label != "Total" || len(rec.Value) != 1 {
		t.Fatalf("record = %+v", rec)
	}
	val := rec.Value[0]
	if val.Text != "Total Due: $500.00" {
		t.Errorf("text = %q, want trimmed submission", val.Text)
	}
	if val.Page != 1 {
		t.Errorf("page = %d, want 1", val.Page)
	}
	// Bounding box over the three matched word polygons.
	want := []float64{0, 2, 3.5, 2, 3.5, 3, 0, 3}
	if !reflect.DeepEqual(val.Polygon, want) {
		t.Errorf("polygon = %v, want %v", val.Polygon, want)
	}
}

func TestBuildDocumentUnmatchedFieldSavesTextOnly(t *testing.T) {
	set := testFieldSet(t, "Total")
	values := map[string]string{"Total": "$600.00"}

	doc, warnings := BuildDocument(set, values, invoiceWords())

	if len(doc.Labels) != 1 {
		t.Fatalf("labels = %+v", doc.Labels)
	}
	val := doc.Labels[0].Value[0]
	if val.Text != "$600.00" || val.Page != 0 || val.Polygon != nil {
		t.Errorf("value = %+v, want text-only", val)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Total") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestBuildDocumentBlankFieldsProduceNoRecord(t *testing.T) {
	set := testFieldSet(t, "Total", "Vendor", "Notes")
	values := map[string]string{
		"Total":  "Total",
		"Vendor": "   ",
	}

	doc, warnings := BuildDocument(set, values, invoiceWords())

	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if len(doc.Labels) != 1 || doc.Labels[0].Label != "Total" {
		t.Fatalf("labels = %+v, want only Total", doc.Labels)
	}
	// The fields map still carries every configured definition.
	for _, key := range []string{"Total", "Vendor", "Notes"} {
		if _, ok := doc.Fields[key]; !ok {
			t.Errorf("fields map missing %q", key)
		}
	}
}

func TestBuildDocumentRoundTripThroughExistingValues(t *testing.T) {
	set := testFieldSet(t, "Total", "Vendor")
	values := map[string]string{
		"Total":  "Total Due: $500.00",
		"Vendor": "Unseen Vendor Name",
	}

	doc, _ := BuildDocument(set, values, invoiceWords())

	got := ExistingValues(doc)
	if !reflect.DeepEqual(got, values) {
		t.Errorf("ExistingValues() = %v, want %v", got, values)
	}
}

func TestBuildOCRReference(t *testing.T) {
	ref := BuildOCRReference(invoiceWords()[:1])
	if len(ref.Words) != 1 {
		t.Fatalf("words = %+v", ref.Words)
	}
	w := ref.Words[0]
	if w.Text != "Total" || w.Page != 1 || len(w.Polygon) != 8 {
		t.Errorf("word = %+v", w)
	}

	empty := BuildOCRReference(nil)
	if empty.Words == nil || len(empty.Words) != 0 {
		t.Errorf("empty reference = %+v, want empty non-nil slice", empty.Words)
	}
}
