package predictor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hvac-load-api/internal/models"
)

const (
	TypeRandomForest = "random_forest"
	TypeLinear       = "linear"
)

// Artifact is the on-disk model exported by the training pipeline.
type Artifact struct {
	ModelType    string         `json:"model_type" yaml:"model_type"`
	FeatureNames []string       `json:"feature_names" yaml:"feature_names"`
	OutputNames  []string       `json:"output_names" yaml:"output_names"`
	Estimators   []TreeArtifact `json:"estimators,omitempty" yaml:"estimators,omitempty"`
	Coefficients [][]float64    `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercepts   []float64      `json:"intercepts,omitempty" yaml:"intercepts,omitempty"`
}

// TreeArtifact mirrors the arrays of a fitted scikit-learn regression tree.
// A node is a leaf when ChildrenLeft is -1. Value holds one row of outputs per node.
type TreeArtifact struct {
	ChildrenLeft  []int       `json:"children_left" yaml:"children_left"`
	ChildrenRight []int       `json:"children_right" yaml:"children_right"`
	Feature       []int       `json:"feature" yaml:"feature"`
	Threshold     []float64   `json:"threshold" yaml:"threshold"`
	Value         [][]float64 `json:"value" yaml:"value"`
}

// ReadArtifact decodes the model file at path. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func ReadArtifact(path string) (Artifact, error) {
	var a Artifact

	data, err := os.ReadFile(path)
	if err != nil {
		return a, fmt.Errorf("%w: %v", models.ErrModelLoad, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &a)
	default:
		err = json.Unmarshal(data, &a)
	}
	if err != nil {
		return a, fmt.Errorf("%w: decode %s: %v", models.ErrModelLoad, path, err)
	}

	return a, nil
}

// Build validates the artifact and returns the evaluable model.
func (a Artifact) Build() (Model, error) {
	if len(a.OutputNames) > 0 && !equalNames(a.OutputNames, models.OutputNames) {
		return nil, fmt.Errorf("%w: output_names %v, want %v", models.ErrModelLoad, a.OutputNames, models.OutputNames)
	}

	var (
		m   Model
		err error
	)
	switch a.ModelType {
	case TypeRandomForest:
		m, err = newForest(a.FeatureNames, len(models.OutputNames), a.Estimators)
	case TypeLinear:
		m, err = newLinear(a.FeatureNames, a.Coefficients, a.Intercepts)
	default:
		err = fmt.Errorf("unknown model_type %q", a.ModelType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrModelLoad, err)
	}

	return m, nil
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
