// Package label implements the ground-truth labeling workflow: grounding a
// field's text value in the recognized word stream of a document and emitting
// the label artifacts a custom extraction model trains on.
//
// The centerpiece is the word-sequence locator. Given the text a user
// confirmed for a field and the flat stream of recognized words from the
// analysis, it finds the first contiguous same-page run of words whose
// space-joined content equals the text exactly, so the bounding region saved
// with a label genuinely covers the labeled words. Matching is exact and
// case-sensitive; a value the engine never recognized verbatim degrades to a
// text-only label with a warning, never to a guessed region.
//
// Around the locator sit the key normalizer and suggestion resolver (which
// prefill field values from the analysis before the user confirms them) and
// the builder that assembles and persists the label document and the OCR
// reference snapshot.
package label
