package predictor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Linear is a multi-output linear regression, y = W·x + b.
type Linear struct {
	features []string
	weights  *mat.Dense
	bias     *mat.VecDense
}

func newLinear(features []string, coefficients [][]float64, intercepts []float64) (*Linear, error) {
	if len(features) == 0 {
		return nil, errors.New("feature_names is empty")
	}
	rows := len(coefficients)
	if rows == 0 {
		return nil, errors.New("linear model has no coefficients")
	}
	if len(intercepts) != rows {
		return nil, fmt.Errorf("got %d intercepts for %d outputs", len(intercepts), rows)
	}

	data := make([]float64, 0, rows*len(features))
	for i, row := range coefficients {
		if len(row) != len(features) {
			return nil, fmt.Errorf("coefficients row %d has %d values, want %d", i, len(row), len(features))
		}
		data = append(data, row...)
	}

	return &Linear{
		features: append([]string(nil), features...),
		weights:  mat.NewDense(rows, len(features), data),
		bias:     mat.NewVecDense(rows, append([]float64(nil), intercepts...)),
	}, nil
}

func (l *Linear) Type() string { return TypeLinear }

func (l *Linear) FeatureNames() []string { return append([]string(nil), l.features...) }

func (l *Linear) NumOutputs() int {
	rows, _ := l.weights.Dims()
	return rows
}

func (l *Linear) Predict(row []float64) ([]float64, error) {
	if len(row) != len(l.features) {
		return nil, fmt.Errorf("expected %d features, got %d", len(l.features), len(row))
	}

	x := mat.NewVecDense(len(row), append([]float64(nil), row...))
	var y mat.VecDense
	y.MulVec(l.weights, x)
	y.AddVec(&y, l.bias)

	return mat.Col(nil, 0, &y), nil
}
