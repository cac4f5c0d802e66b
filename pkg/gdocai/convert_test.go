package gdocai

import (
	"reflect"
	"strings"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// layoutFor anchors a layout at segment's position in fullText. Test inputs
// are ASCII so byte offsets double as rune offsets.
func layoutFor(fullText, segment string, confidence float32) *documentaipb.Document_Page_Layout {
	start := int64(strings.Index(fullText, segment))
	return &documentaipb.Document_Page_Layout{
		TextAnchor: &documentaipb.Document_TextAnchor{
			TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
				{StartIndex: start, EndIndex: start + int64(len(segment))},
			},
		},
		Confidence: confidence,
	}
}

func TestTextFromLayout(t *testing.T) {
	fullText := "Total Due: $500.00"

	got := textFromLayout(layoutFor(fullText, "Due:", 0.9), fullText)
	if got != "Due:" {
		t.Errorf("textFromLayout() = %q, want %q", got, "Due:")
	}

	if got := textFromLayout(nil, fullText); got != "" {
		t.Errorf("textFromLayout(nil) = %q", got)
	}

	// Out-of-range segments clamp instead of panicking.
	oversized := &documentaipb.Document_Page_Layout{
		TextAnchor: &documentaipb.Document_TextAnchor{
			TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
				{StartIndex: 0, EndIndex: 1000},
			},
		},
	}
	if got := textFromLayout(oversized, "abc"); got != "abc" {
		t.Errorf("textFromLayout(oversized) = %q", got)
	}
}

func TestTokenTextTrimsDetectedBreak(t *testing.T) {
	fullText := "Total \nDue:"
	token := &documentaipb.Document_Page_Token{
		Layout: layoutFor(fullText, "Total ", 0.9),
		DetectedBreak: &documentaipb.Document_Page_Token_DetectedBreak{
			Type: documentaipb.Document_Page_Token_DetectedBreak_SPACE,
		},
	}

	if got := tokenText(token, fullText); got != "Total" {
		t.Errorf("tokenText() = %q, want %q", got, "Total")
	}
}

func TestPolygonFromLayoutScalesNormalizedVertices(t *testing.T) {
	layout := &documentaipb.Document_Page_Layout{
		BoundingPoly: &documentaipb.BoundingPoly{
			NormalizedVertices: []*documentaipb.NormalizedVertex{
				{X: 0.1, Y: 0.1},
				{X: 0.5, Y: 0.1},
				{X: 0.5, Y: 0.2},
				{X: 0.1, Y: 0.2},
			},
		},
	}
	dimension := &documentaipb.Document_Page_Dimension{Width: 1000, Height: 500}

	flat := polygonFromLayout(layout, dimension).Flatten()
	want := []float64{100, 50, 500, 50, 500, 100, 100, 100}
	if len(flat) != len(want) {
		t.Fatalf("polygon = %v, want %v", flat, want)
	}
	for i := range want {
		if diff := flat[i] - want[i]; diff > 1e-4 || diff < -1e-4 {
			t.Errorf("polygon[%d] = %v, want %v", i, flat[i], want[i])
		}
	}
}

func TestResultFromProto(t *testing.T) {
	fullText := "Invoice Total: $500.00"
	doc := &documentaipb.Document{
		Text: fullText,
		Pages: []*documentaipb.Document_Page{
			{
				PageNumber: 1,
				Dimension:  &documentaipb.Document_Page_Dimension{Width: 2480, Height: 3508, Unit: "pixels"},
				Tokens: []*documentaipb.Document_Page_Token{
					{Layout: layoutFor(fullText, "Invoice", 0.99)},
					{Layout: layoutFor(fullText, "$500.00", 0.97)},
				},
				FormFields: []*documentaipb.Document_Page_FormField{
					{
						FieldName:  layoutFor(fullText, "Total:", 0.95),
						FieldValue: layoutFor(fullText, "$500.00", 0.93),
					},
				},
			},
		},
		Entities: []*documentaipb.Document_Entity{
			{
				Type:        "invoice",
				MentionText: "",
				Properties: []*documentaipb.Document_Entity{
					{Type: "total", MentionText: "$500.00", Confidence: 0.98},
				},
			},
		},
	}

	result := resultFromProto(doc)

	if result.Content != fullText {
		t.Errorf("content = %q", result.Content)
	}
	if result.Raw != doc {
		t.Error("Raw should carry the proto response for debugging dumps")
	}
	if len(result.Pages) != 1 {
		t.Fatalf("pages = %d", len(result.Pages))
	}

	page := result.Pages[0]
	if page.PageNumber != 1 || page.Unit != "pixels" || page.Width != 2480 {
		t.Errorf("page = %+v", page)
	}
	var texts []string
	for _, w := range page.Words {
		texts = append(texts, w.Content)
	}
	if want := []string{"Invoice", "$500.00"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("words = %v, want %v", texts, want)
	}

	if len(result.KeyValuePairs) != 1 {
		t.Fatalf("kvps = %+v", result.KeyValuePairs)
	}
	kvp := result.KeyValuePairs[0]
	if kvp.Key.Content != "Total" {
		t.Errorf("kvp key = %q, want trailing colon stripped", kvp.Key.Content)
	}
	if kvp.Value == nil || kvp.Value.Content != "$500.00" {
		t.Errorf("kvp value = %+v", kvp.Value)
	}

	if len(result.Documents) != 1 {
		t.Fatalf("documents = %+v", result.Documents)
	}
	field, ok := result.Documents[0].Fields["invoice.total"]
	if !ok {
		t.Fatalf("fields = %+v, want nested entity keyed invoice.total", result.Documents[0].Fields)
	}
	if field.Content != "$500.00" || field.Confidence == nil {
		t.Errorf("field = %+v", field)
	}
}

func TestResultFromProtoNil(t *testing.T) {
	result := resultFromProto(nil)
	if result == nil || len(result.Pages) != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestValidateConfig(t *testing.T) {
	engine := New(Config{ProjectID: "p", Location: "eu", ProcessorID: "x"})
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	if err := engine.ValidateConfig(); err == nil {
		t.Error("ValidateConfig should fail without credentials")
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")
	if err := engine.ValidateConfig(); err != nil {
		t.Errorf("ValidateConfig: %v", err)
	}

	incomplete := New(Config{ProjectID: "p"})
	if err := incomplete.ValidateConfig(); err == nil {
		t.Error("ValidateConfig should fail without processor coordinates")
	}
}
