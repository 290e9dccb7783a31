package predictor

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-load-api/internal/models"
)

var forestFeatures = []string{
	"year", "month", "day", "hour", "minute", "weekday",
	"Temperature", "RH", "WBT_C", "Hotel_Occupancy", "CHWS_Setpoint", "Chillers_Online",
}

func forestRecord(temperature, occupancy float64) models.FeatureRecord {
	values := []float64{2024, 3, 5, 14, 0, 1, temperature, 70, temperature - 3.5, occupancy, 6.5, 2}
	return models.NewFeatureRecord(forestFeatures, values)
}

// stubModel returns fixed outputs or panics, for exercising the Predictor checks.
type stubModel struct {
	features []string
	outputs  []float64
	err      error
	panics   bool
}

func (s *stubModel) Type() string           { return "stub" }
func (s *stubModel) FeatureNames() []string { return append([]string(nil), s.features...) }
func (s *stubModel) NumOutputs() int        { return 6 }
func (s *stubModel) Predict(row []float64) ([]float64, error) {
	if s.panics {
		panic("node index out of range")
	}
	return s.outputs, s.err
}

func TestLoad_Forest(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "forest_model.json"))
	require.NoError(t, err)

	assert.Equal(t, forestFeatures, p.ExpectedFeatureOrder())

	tests := []struct {
		name        string
		temperature float64
		occupancy   float64
		expected    []float64
	}{
		{"hot and busy", 30, 85, []float64{520, 62, 1230, 5.4, 6.7, 12.1}},
		{"mild and quiet", 25, 40, []float64{410, 51, 1025, 5.05, 7.0, 12.05}},
		{"thresholds go left", 28, 50, []float64{410, 51, 1025, 5.05, 7.0, 12.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Predict(forestRecord(tt.temperature, tt.occupancy))
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.expected, result.Values(), 1e-9)
		})
	}
}

func TestLoad_LinearYAML(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "linear_model.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Temperature", "Hotel_Occupancy"}, p.ExpectedFeatureOrder())

	record := models.NewFeatureRecord([]string{"Temperature", "Hotel_Occupancy"}, []float64{30, 85})
	result, err := p.Predict(record)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{570, 82.5, 1140, 5, 6.5, 11.5}, result.Values(), 1e-9)
}

func TestLoad_ExampleArtifact(t *testing.T) {
	p, err := Load(filepath.Join("..", "..", "model", "chiller_load_model.json"))
	require.NoError(t, err)

	info := p.Info(nil)
	assert.Equal(t, TypeRandomForest, info.ModelType)
	assert.Equal(t, 8, info.Estimators)
	assert.Contains(t, info.FeatureNames, "Hotel_Occupancy")
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.json")},
		{"invalid json", write("bad.json", "{not json")},
		{"invalid yaml", write("bad.yaml", "model_type: [unterminated")},
		{"unknown type", write("svm.json", `{"model_type": "svm", "feature_names": ["a"]}`)},
		{"wrong output names", write("outputs.json", `{"model_type": "linear", "feature_names": ["a"], "output_names": ["RT"], "coefficients": [[1]], "intercepts": [0]}`)},
		{"forest without trees", write("empty.json", `{"model_type": "random_forest", "feature_names": ["a"]}`)},
		{"linear with five outputs", write("five.json", `{"model_type": "linear", "feature_names": ["a"], "coefficients": [[1],[1],[1],[1],[1]], "intercepts": [0,0,0,0,0]}`)},
		{"linear ragged coefficients", write("ragged.json", `{"model_type": "linear", "feature_names": ["a", "b"], "coefficients": [[1,2],[1],[1,2],[1,2],[1,2],[1,2]], "intercepts": [0,0,0,0,0,0]}`)},
		{"duplicate features", write("dup.json", `{"model_type": "linear", "feature_names": ["a", "a"], "coefficients": [[1,2],[1,2],[1,2],[1,2],[1,2],[1,2]], "intercepts": [0,0,0,0,0,0]}`)},
		{"cyclic tree", filepath.Join("testdata", "cyclic_tree_model.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrModelLoad), "got %v", err)
		})
	}
}

func TestNewTree_Validation(t *testing.T) {
	valid := TreeArtifact{
		ChildrenLeft:  []int{1, -1, -1},
		ChildrenRight: []int{2, -1, -1},
		Feature:       []int{0, -2, -2},
		Threshold:     []float64{1, -2, -2},
		Value:         [][]float64{{0}, {1}, {2}},
	}
	_, err := newTree(valid, 1, 1)
	require.NoError(t, err)

	unknownFeature := valid
	unknownFeature.Feature = []int{3, -2, -2}
	_, err = newTree(unknownFeature, 1, 1)
	assert.Error(t, err)

	shortLeaf := valid
	shortLeaf.Value = [][]float64{{0}, {}, {2}}
	_, err = newTree(shortLeaf, 1, 1)
	assert.Error(t, err)

	halfLeaf := valid
	halfLeaf.ChildrenRight = []int{2, 2, -1}
	_, err = newTree(halfLeaf, 1, 1)
	assert.Error(t, err)

	mismatched := valid
	mismatched.Threshold = []float64{1}
	_, err = newTree(mismatched, 1, 1)
	assert.Error(t, err)
}

func TestPredictor_RejectsSchemaMismatch(t *testing.T) {
	p, err := New(&stubModel{features: []string{"a", "b"}, outputs: []float64{1, 2, 3, 4, 5, 6}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		record models.FeatureRecord
	}{
		{"wrong order", models.NewFeatureRecord([]string{"b", "a"}, []float64{1, 2})},
		{"too few", models.NewFeatureRecord([]string{"a"}, []float64{1})},
		{"unknown name", models.NewFeatureRecord([]string{"a", "c"}, []float64{1, 2})},
		{"empty", models.FeatureRecord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Predict(tt.record)
			assert.ErrorIs(t, err, models.ErrInference)
		})
	}
}

func TestPredictor_InferenceFailures(t *testing.T) {
	record := models.NewFeatureRecord([]string{"a"}, []float64{1})

	tests := []struct {
		name  string
		model *stubModel
	}{
		{"model error", &stubModel{features: []string{"a"}, err: errors.New("shape mismatch")}},
		{"panic", &stubModel{features: []string{"a"}, panics: true}},
		{"nan output", &stubModel{features: []string{"a"}, outputs: []float64{1, math.NaN(), 3, 4, 5, 6}}},
		{"inf output", &stubModel{features: []string{"a"}, outputs: []float64{1, 2, 3, 4, 5, math.Inf(1)}}},
		{"short output", &stubModel{features: []string{"a"}, outputs: []float64{1, 2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.model)
			require.NoError(t, err)

			result, err := p.Predict(record)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInference)
			assert.Equal(t, models.PredictionResult{}, result)
		})
	}
}

func TestPredictor_ExpectedFeatureOrderIsCopy(t *testing.T) {
	p, err := New(&stubModel{features: []string{"a", "b"}})
	require.NoError(t, err)

	order := p.ExpectedFeatureOrder()
	order[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, p.ExpectedFeatureOrder())
}

func TestPredictor_Info(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "forest_model.json"))
	require.NoError(t, err)

	derived := func(name string) bool { return name != "CHWS_Setpoint" && name != "Chillers_Online" }
	info := p.Info(derived)

	assert.Equal(t, TypeRandomForest, info.ModelType)
	assert.Equal(t, 2, info.Estimators)
	assert.Equal(t, models.OutputNames, info.OutputNames)
	assert.Equal(t, []string{"CHWS_Setpoint", "Chillers_Online"}, info.OperationalMetrics)
}

func TestPredictor_ConcurrentPredict(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "forest_model.json"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := p.Predict(forestRecord(20+float64(i%15), float64(i*3)))
			if err == nil && result.RT <= 0 {
				err = errors.New("non-positive RT")
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestNew_RejectsBadModels(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, models.ErrModelLoad)

	_, err = New(&stubModel{})
	assert.ErrorIs(t, err, models.ErrModelLoad)

	_, err = New(&stubModel{features: []string{"a", ""}})
	assert.ErrorIs(t, err, models.ErrModelLoad)
}
