// Package syntax implements the incremental, viewport-aware syntax
// highlighting engine.
//
// The Service is the façade over language detection, the per-language
// tokenizer adapters, and the per-document State (cache, dirty set,
// viewport, background queue). The engine is single-threaded by design:
// the service and all states live on the editor's main goroutine, and
// background highlighting is idle-time cooperative via
// HighlightBackgroundBatch. Tokenizer adapters mutate scratch state per
// call and must not be shared across goroutines.
package syntax
