package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/heat-risk-predictor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// --- scaler ---

func TestLoadScaler(t *testing.T) {
	s, err := LoadScaler("testdata/scaler.json")
	require.NoError(t, err)

	assert.Equal(t, domain.ScaledColumns(), s.Columns())
	assert.Len(t, s.Digest(), 64)

	out, err := s.Transform([]float64{9000, 3000, 90, 1000, 2100, 150, 1550})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 1, -1, 0, 1, 0}, out)
}

func TestScaler_TransformWrongLength(t *testing.T) {
	s, err := LoadScaler("testdata/scaler.json")
	require.NoError(t, err)

	_, err = s.Transform([]float64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 7 values, got 3")
}

func TestScaler_SatisfiesDomainNormalize(t *testing.T) {
	s, err := LoadScaler("testdata/scaler.json")
	require.NoError(t, err)

	row := domain.BuildFeatures(domain.DefaultRecord())
	scaled, err := domain.Normalize(row, s)
	require.NoError(t, err)
	assert.Equal(t, 0.0, scaled.Row().PopulationDensity)
	assert.Equal(t, row.Temperature, scaled.Row().Temperature)

	copied := scaled.Row()
	copied.PopulationDensity = 99
	assert.NotEqual(t, copied, scaled.Row())
	assert.Equal(t, 0.0, scaled.Row().PopulationDensity, "scaled row cannot be edited from outside")
	assert.Equal(t, scaled.Row().Values(), scaled.Values())
}

func TestLoadScaler_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"missing file", "testdata/does-not-exist.json", "no such file"},
		{"truncated json", "testdata/truncated_scaler.json", "decode"},
		{"wrong kind", writeTemp(t, `{"kind":"minmax_scaler","feature_names_in":["a"],"mean":[0],"scale":[1]}`), `unsupported kind "minmax_scaler"`},
		{"length mismatch", writeTemp(t, `{"kind":"standard_scaler","feature_names_in":["a","b"],"mean":[0],"scale":[1,1]}`), "2 columns, 1 means"},
		{"zero scale", writeTemp(t, `{"kind":"standard_scaler","feature_names_in":["a"],"mean":[0],"scale":[0]}`), "scale[0] is zero"},
		{"duplicate column", writeTemp(t, `{"kind":"standard_scaler","feature_names_in":["a","a"],"mean":[0,0],"scale":[1,1]}`), `duplicate "a"`},
		{"no columns", writeTemp(t, `{"kind":"standard_scaler"}`), "feature_names_in is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScaler(tt.path)

			var loadErr *domain.ArtifactLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "scaler", loadErr.Artifact)
			assert.Equal(t, tt.path, loadErr.Path)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

// --- model ---

func TestLoadModel_Linear(t *testing.T) {
	m, err := LoadModel("testdata/linear_model.json")
	require.NoError(t, err)

	assert.Equal(t, "linear", m.Kind())
	assert.Equal(t, domain.FeatureColumns(), m.FeatureNames())
	assert.NotEmpty(t, m.Digest())

	x := make([]float64, domain.NumFeatures)
	x[0] = 30  // temperature
	x[1] = 1.5 // scaled population density
	x[9] = 1   // industrial
	y, err := m.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, -10+30+2*1.5+5.0, y)
}

func TestLoadModel_ForestMean(t *testing.T) {
	m, err := LoadModel("testdata/forest_model.json")
	require.NoError(t, err)
	assert.Equal(t, "tree_ensemble", m.Kind())

	tests := []struct {
		name        string
		temperature float64
		industrial  float64
		expected    float64
	}{
		{"cool non-industrial", 25, 0, (10 + 20) / 2.0},
		{"threshold goes left", 30, 0, (10 + 20) / 2.0},
		{"hot non-industrial", 31, 0, (40 + 20) / 2.0},
		{"hot industrial", 35, 1, (40 + 50) / 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := make([]float64, domain.NumFeatures)
			x[0] = tt.temperature
			x[9] = tt.industrial
			y, err := m.Predict(x)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, y)
		})
	}
}

func TestLoadModel_BoostedSum(t *testing.T) {
	m, err := LoadModel("testdata/boosted_model.json")
	require.NoError(t, err)

	x := make([]float64, domain.NumFeatures)
	x[1] = 0.7
	y, err := m.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, 25+0.5*(6+2), y)

	x[1] = -0.2
	y, err = m.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, 25+0.5*(-4+2), y)
}

func TestModel_PredictWrongLength(t *testing.T) {
	m, err := LoadModel("testdata/linear_model.json")
	require.NoError(t, err)

	_, err = m.Predict([]float64{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 15 features, got 2")
}

func TestLoadModel_Errors(t *testing.T) {
	leaf := `{"feature":-1,"value":1}`
	tests := []struct {
		name string
		path string
		msg  string
	}{
		{"missing file", "testdata/nope.json", "no such file"},
		{"unsupported kind", "testdata/unsupported_model.json", `unsupported kind "svm"`},
		{"coef length", writeTemp(t, `{"kind":"linear","feature_names_in":["a","b"],"coef":[1]}`), "2 features and 1 coefficients"},
		{"no trees", writeTemp(t, `{"kind":"tree_ensemble","feature_names_in":["a"],"aggregation":"mean"}`), "no trees"},
		{"bad aggregation", writeTemp(t, `{"kind":"tree_ensemble","feature_names_in":["a"],"aggregation":"median","trees":[{"nodes":[`+leaf+`]}]}`), `unsupported aggregation "median"`},
		{"empty tree", writeTemp(t, `{"kind":"tree_ensemble","feature_names_in":["a"],"aggregation":"sum","trees":[{"nodes":[]}]}`), "tree 0: no nodes"},
		{"feature out of range", writeTemp(t, `{"kind":"tree_ensemble","feature_names_in":["a"],"aggregation":"sum","trees":[{"nodes":[{"feature":3,"left":1,"right":2},`+leaf+`,`+leaf+`]}]}`), "feature index 3 out of range"},
		{"cycle", writeTemp(t, `{"kind":"tree_ensemble","feature_names_in":["a"],"aggregation":"sum","trees":[{"nodes":[{"feature":0,"left":0,"right":1},`+leaf+`]}]}`), "child index 0 out of range"},
		{"dangling child", writeTemp(t, `{"kind":"tree_ensemble","feature_names_in":["a"],"aggregation":"sum","trees":[{"nodes":[{"feature":0,"left":1,"right":5},`+leaf+`]}]}`), "child index 5 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadModel(tt.path)

			var loadErr *domain.ArtifactLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "model", loadErr.Artifact)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewLinearModel_CopiesInputs(t *testing.T) {
	names := []string{"a", "b"}
	coef := []float64{1, 1}
	m, err := NewLinearModel(names, coef, 0)
	require.NoError(t, err)

	names[0] = "z"
	coef[0] = 100
	assert.Equal(t, []string{"a", "b"}, m.FeatureNames())

	y, err := m.Predict([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2.0, y)
}

func TestVersion(t *testing.T) {
	s, err := LoadScaler("testdata/scaler.json")
	require.NoError(t, err)
	linear, err := LoadModel("testdata/linear_model.json")
	require.NoError(t, err)
	forest, err := LoadModel("testdata/forest_model.json")
	require.NoError(t, err)

	v := Version(s, linear)
	assert.Len(t, v, 25)
	assert.Equal(t, v, Version(s, linear))
	assert.NotEqual(t, v, Version(s, forest))

	inMemory, err := NewLinearModel([]string{"a"}, []float64{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, s.Digest()[:12]+"-mem", Version(s, inMemory))
}
