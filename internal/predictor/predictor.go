package predictor

import (
	"fmt"
	"math"

	"hvac-load-api/internal/models"
)

// Model evaluates one feature row into raw outputs. Implementations are
// read-only after construction and safe for concurrent use.
type Model interface {
	Type() string
	FeatureNames() []string
	NumOutputs() int
	Predict(row []float64) ([]float64, error)
}

// Predictor checks feature records against the model schema and labels its outputs.
type Predictor struct {
	model Model
	order []string
}

// Info describes the loaded model for introspection.
type Info struct {
	ModelType          string   `json:"model_type" example:"random_forest"`
	FeatureNames       []string `json:"feature_names"`
	OutputNames        []string `json:"output_names"`
	OperationalMetrics []string `json:"operational_metrics"`
	Estimators         int      `json:"estimators,omitempty" example:"100"`
}

func New(m Model) (*Predictor, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", models.ErrModelLoad)
	}
	if n := m.NumOutputs(); n != len(models.OutputNames) {
		return nil, fmt.Errorf("%w: model has %d outputs, want %d", models.ErrModelLoad, n, len(models.OutputNames))
	}

	order := m.FeatureNames()
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: empty feature schema", models.ErrModelLoad)
	}
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if name == "" {
			return nil, fmt.Errorf("%w: empty feature name", models.ErrModelLoad)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate feature %q", models.ErrModelLoad, name)
		}
		seen[name] = struct{}{}
	}

	return &Predictor{model: m, order: order}, nil
}

// Load reads and validates the artifact at path.
func Load(path string) (*Predictor, error) {
	a, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}

	m, err := a.Build()
	if err != nil {
		return nil, err
	}

	return New(m)
}

// ExpectedFeatureOrder returns a copy of the feature names in model order.
func (p *Predictor) ExpectedFeatureOrder() []string {
	return append([]string(nil), p.order...)
}

// Predict evaluates record, which must carry exactly the schema names in schema order.
func (p *Predictor) Predict(record models.FeatureRecord) (result models.PredictionResult, err error) {
	names := record.Names()
	if len(names) != len(p.order) {
		return result, fmt.Errorf("%w: record has %d features, model expects %d", models.ErrInference, len(names), len(p.order))
	}
	for i, name := range names {
		if name != p.order[i] {
			return result, fmt.Errorf("%w: feature %d is %q, model expects %q", models.ErrInference, i, name, p.order[i])
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = models.PredictionResult{}
			err = fmt.Errorf("%w: %v", models.ErrInference, r)
		}
	}()

	out, err := p.model.Predict(record.Values())
	if err != nil {
		return result, fmt.Errorf("%w: %v", models.ErrInference, err)
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return result, fmt.Errorf("%w: output %d is not finite", models.ErrInference, i)
		}
	}

	result, err = models.NewPredictionResult(out)
	if err != nil {
		return result, fmt.Errorf("%w: %v", models.ErrInference, err)
	}

	return result, nil
}

// Info reports the model type, schema and the operational metrics callers must supply.
func (p *Predictor) Info(isDerived func(string) bool) Info {
	info := Info{
		ModelType:          p.model.Type(),
		FeatureNames:       p.ExpectedFeatureOrder(),
		OutputNames:        append([]string(nil), models.OutputNames...),
		OperationalMetrics: []string{},
	}
	for _, name := range p.order {
		if isDerived == nil || !isDerived(name) {
			info.OperationalMetrics = append(info.OperationalMetrics, name)
		}
	}

	if sized, ok := p.model.(interface{ Estimators() int }); ok {
		info.Estimators = sized.Estimators()
	}

	return info
}
