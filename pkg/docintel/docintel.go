// Package docintel defines the common result model for cloud document
// understanding engines and the Engine interface the rest of the toolkit is
// written against.
//
// Every engine, regardless of vendor, reduces its response to an
// AnalysisResult: pages of recognized words with bounding polygons, typed
// document fields with confidences, generic key-value pairs, tables, and the
// full text content. The labeling workflow consumes only this shape, so the
// same locator and label builder work no matter which engine produced the
// analysis.
//
// Key Types:
//
// - AnalysisResult: the normalized engine response
// - RecognizedWord: one word with text, page number and bounding polygon
// - ExtractedField: a typed field from a document model, with optional value kinds
// - Engine: the interface all engines implement
// - Registry: engine lookup by name
package docintel
