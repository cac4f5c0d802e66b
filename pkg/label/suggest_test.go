package label

import (
	"testing"

	"github.com/skriva/doclabel/pkg/docintel"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildSuggestionMapPrefersTypedFields(t *testing.T) {
	result := &docintel.AnalysisResult{
		Documents: []docintel.DocumentResult{
			{
				DocType: "invoice",
				Fields: map[string]docintel.ExtractedField{
					"InvoiceTotal": {Content: "$500.00", Confidence: floatPtr(0.95)},
					"Empty":        {Content: ""},
				},
			},
		},
		KeyValuePairs: []docintel.KeyValuePair{
			{
				Key:   docintel.KVPContent{Content: "InvoiceTotal:"},
				Value: &docintel.KVPContent{Content: "$499.99", Confidence: floatPtr(0.5)},
			},
			{
				Key:   docintel.KVPContent{Content: "Due Date:"},
				Value: &docintel.KVPContent{Content: "2024-01-31"},
			},
			{
				Key: docintel.KVPContent{Content: "Signature"},
			},
		},
	}

	suggestions := BuildSuggestionMap(result)

	total, ok := suggestions["invoicetotal"]
	if !ok {
		t.Fatal("invoicetotal suggestion missing")
	}
	if total.Text != "$500.00" || total.Source != SourceDocumentField {
		t.Errorf("typed field should win over KVP, got %+v", total)
	}

	due, ok := suggestions["due date"]
	if !ok {
		t.Fatal("due date suggestion missing")
	}
	if due.Source != SourceKeyValuePair || due.Confidence != nil {
		t.Errorf("due date = %+v", due)
	}

	if _, ok := suggestions["empty"]; ok {
		t.Error("empty-content field should produce no suggestion")
	}
	if _, ok := suggestions["signature"]; ok {
		t.Error("valueless KVP should produce no suggestion")
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	primary := map[string]Suggestion{
		"total": {Text: "$500.00", Source: SourceDocumentField},
	}
	secondary := map[string]Suggestion{
		"total":  {Text: "$1.00", Source: SourceKeyValuePair},
		"vendor": {Text: "ACME", Source: SourceKeyValuePair},
	}

	got, ok := Resolve("Total:", primary, secondary)
	if !ok || got.Text != "$500.00" {
		t.Errorf("Resolve(Total:) = %+v, %v", got, ok)
	}

	got, ok = Resolve("Vendor", primary, secondary)
	if !ok || got.Text != "ACME" {
		t.Errorf("Resolve(Vendor) = %+v, %v", got, ok)
	}

	if _, ok := Resolve("Missing", primary, secondary); ok {
		t.Error("Resolve() of unknown key should report no suggestion")
	}

	if _, ok := Resolve("???", primary, secondary); ok {
		t.Error("Resolve() of a key normalizing to nothing should report no suggestion")
	}
}
