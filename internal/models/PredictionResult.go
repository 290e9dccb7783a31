package models

import "fmt"

const (
	OutputRT       = "RT"
	OutputCHLoad   = "CH Load"
	OutputGPM      = "GPM"
	OutputDeltaCHW = "DeltaCHW"
	OutputCHWS     = "CHWS"
	OutputCHWR     = "CHWR"
)

// OutputNames is the fixed label order of a prediction row. Downstream
// consumers depend on both the names and the order.
var OutputNames = []string{OutputRT, OutputCHLoad, OutputGPM, OutputDeltaCHW, OutputCHWS, OutputCHWR}

// PredictionResult holds one predicted chiller-plant load row.
type PredictionResult struct {
	RT       float64 `json:"RT" example:"512.4"`
	CHLoad   float64 `json:"CH Load" example:"61.7"`
	GPM      float64 `json:"GPM" example:"1180.2"`
	DeltaCHW float64 `json:"DeltaCHW" example:"5.3"`
	CHWS     float64 `json:"CHWS" example:"6.9"`
	CHWR     float64 `json:"CHWR" example:"12.2"`
}

// NewPredictionResult labels a raw model output vector.
func NewPredictionResult(values []float64) (PredictionResult, error) {
	if len(values) != len(OutputNames) {
		return PredictionResult{}, fmt.Errorf("expected %d outputs, got %d", len(OutputNames), len(values))
	}

	return PredictionResult{
		RT:       values[0],
		CHLoad:   values[1],
		GPM:      values[2],
		DeltaCHW: values[3],
		CHWS:     values[4],
		CHWR:     values[5],
	}, nil
}

// Values returns the outputs in OutputNames order.
func (p PredictionResult) Values() []float64 {
	return []float64{p.RT, p.CHLoad, p.GPM, p.DeltaCHW, p.CHWS, p.CHWR}
}
