package dto

// AnalysisResponse carries the advisory text verbatim.
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}
