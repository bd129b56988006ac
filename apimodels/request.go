package apimodels

// AnalyzeRequest is the body posted to the remote /api/analyze endpoint.
type AnalyzeRequest struct {
	// The listing URL or free-text query to analyze
	Query string `json:"query"`

	// Whether the backend should compress the scraped listing before analysis
	EnableCompression bool `json:"enable_compression"`

	// Target compression ratio, only meaningful when compression is enabled
	CompressionRatio float64 `json:"compression_ratio"`
}
