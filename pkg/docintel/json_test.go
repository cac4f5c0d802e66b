package docintel

import (
	"strings"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

func TestToJSONPlainValue(t *testing.T) {
	got, err := ToJSON(map[string]string{"status": "succeeded"})
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(got, `"status": "succeeded"`) {
		t.Errorf("ToJSON() = %q, want indented JSON with the status key", got)
	}
}

func TestToJSONProtoMessage(t *testing.T) {
	doc := &documentaipb.Document{Text: "Total Due: $500.00"}
	got, err := ToJSON(doc)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(got, "Total Due: $500.00") {
		t.Errorf("ToJSON() = %q, want the document text in the dump", got)
	}
}
