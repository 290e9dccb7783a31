package predictor

import (
	"errors"
	"fmt"
)

const leaf = -1

type tree struct {
	left      []int
	right     []int
	feature   []int
	threshold []float64
	value     [][]float64
}

// Forest averages the leaf values of its regression trees.
type Forest struct {
	features []string
	outputs  int
	trees    []tree
}

func newForest(features []string, outputs int, estimators []TreeArtifact) (*Forest, error) {
	if len(features) == 0 {
		return nil, errors.New("feature_names is empty")
	}
	if len(estimators) == 0 {
		return nil, errors.New("random_forest has no estimators")
	}

	f := &Forest{
		features: append([]string(nil), features...),
		outputs:  outputs,
		trees:    make([]tree, 0, len(estimators)),
	}
	for i, e := range estimators {
		t, err := newTree(e, len(features), outputs)
		if err != nil {
			return nil, fmt.Errorf("estimator %d: %w", i, err)
		}
		f.trees = append(f.trees, t)
	}

	return f, nil
}

// newTree checks that every walk from the root ends on a leaf: children must
// point forward in the node arrays and split features must exist.
func newTree(a TreeArtifact, nFeatures, nOutputs int) (tree, error) {
	n := len(a.ChildrenLeft)
	if n == 0 {
		return tree{}, errors.New("tree has no nodes")
	}
	if len(a.ChildrenRight) != n || len(a.Feature) != n || len(a.Threshold) != n || len(a.Value) != n {
		return tree{}, errors.New("tree arrays differ in length")
	}

	for i := 0; i < n; i++ {
		l, r := a.ChildrenLeft[i], a.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return tree{}, fmt.Errorf("node %d has a right child but no left child", i)
			}
			if len(a.Value[i]) != nOutputs {
				return tree{}, fmt.Errorf("leaf %d has %d values, want %d", i, len(a.Value[i]), nOutputs)
			}
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, fmt.Errorf("node %d has children out of range (%d, %d)", i, l, r)
		}
		if f := a.Feature[i]; f < 0 || f >= nFeatures {
			return tree{}, fmt.Errorf("node %d splits on unknown feature %d", i, f)
		}
	}

	return tree{
		left:      a.ChildrenLeft,
		right:     a.ChildrenRight,
		feature:   a.Feature,
		threshold: a.Threshold,
		value:     a.Value,
	}, nil
}

func (t tree) leafValues(x []float64) []float64 {
	i := 0
	for t.left[i] != leaf {
		if x[t.feature[i]] <= t.threshold[i] {
			i = t.left[i]
		} else {
			i = t.right[i]
		}
	}
	return t.value[i]
}

func (f *Forest) Type() string { return TypeRandomForest }

func (f *Forest) FeatureNames() []string { return append([]string(nil), f.features...) }

func (f *Forest) NumOutputs() int { return f.outputs }

// Estimators is the number of trees in the ensemble.
func (f *Forest) Estimators() int { return len(f.trees) }

func (f *Forest) Predict(row []float64) ([]float64, error) {
	if len(row) != len(f.features) {
		return nil, fmt.Errorf("expected %d features, got %d", len(f.features), len(row))
	}

	out := make([]float64, f.outputs)
	for _, t := range f.trees {
		for j, v := range t.leafValues(row) {
			out[j] += v
		}
	}
	for j := range out {
		out[j] /= float64(len(f.trees))
	}

	return out, nil
}
