package usage

import "time"

// Operation is a billable interaction with the external search product.
type Operation string

// Billable operations and their unit prices in USD, from the vendor's
// simplified pricing model.
const (
	OpEmbeddingGeneration Operation = "embedding_generation"
	OpSearchQuery         Operation = "search_query"
	OpDocumentStorage     Operation = "document_storage"
	OpAPICall             Operation = "api_call"
	OpOCRProcessing       Operation = "ocr_processing"
	OpAudioTranscription  Operation = "audio_transcription"
	OpLargeModelQuery     Operation = "large_model_query"
	OpStandardModelQuery  Operation = "standard_model_query"
)

var costPerOperation = map[Operation]float64{
	OpEmbeddingGeneration: 0.0001,
	OpSearchQuery:         0.001,
	OpDocumentStorage:     0.00001,
	OpAPICall:             0.0001,
	OpOCRProcessing:       0.0005,
	OpAudioTranscription:  0.01,
	OpLargeModelQuery:     0.005,
	OpStandardModelQuery:  0.002,
}

// Cost returns the unit price for the operation, false when unknown.
func Cost(op Operation) (float64, bool) {
	cost, ok := costPerOperation[op]
	return cost, ok
}

// Record is one tracked operation.
type Record struct {
	ID         int64     `json:"id,omitempty"`
	Operation  Operation `json:"operation"`
	ResourceID string    `json:"resource_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Cost       float64   `json:"cost"`
	Saved      bool      `json:"saved_by_optimization"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Summary aggregates spend over a window.
type Summary struct {
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	TotalCost    float64            `json:"total_cost"`
	TotalSaved   float64            `json:"total_saved"`
	ByOperation  map[string]float64 `json:"by_operation"`
	RecordCount  int64              `json:"record_count"`
	CacheHits    int64              `json:"cache_hits"`
	FormattedNet string             `json:"net_spend"`
}
