package artifact

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const (
	kindLinear       = "linear"
	kindTreeEnsemble = "tree_ensemble"

	aggregationMean = "mean"
	aggregationSum  = "sum"
)

type modelDocument struct {
	Kind           string    `json:"kind"`
	FeatureNamesIn []string  `json:"feature_names_in"`
	Coef           []float64 `json:"coef,omitempty"`
	Intercept      float64   `json:"intercept,omitempty"`

	Aggregation  string         `json:"aggregation,omitempty"`
	BaseScore    float64        `json:"base_score,omitempty"`
	LearningRate *float64       `json:"learning_rate,omitempty"`
	Trees        []treeDocument `json:"trees,omitempty"`
}

type treeDocument struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is one node of a binary regression tree in array form. A node
// with Feature == -1 is a leaf holding Value; otherwise rows with
// x[Feature] <= Threshold go to Left, the rest to Right.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

const leafFeature = -1

type regressor interface {
	predict(x []float64) float64
}

// Model is a fitted single-output regressor. It is immutable and safe for
// concurrent use.
type Model struct {
	kind     string
	features []string
	reg      regressor
	digest   string
}

// LoadModel reads a linear or tree_ensemble document from path.
func LoadModel(path string) (*Model, error) {
	var doc modelDocument
	digest, err := readDocument("model", path, &doc)
	if err != nil {
		return nil, err
	}

	var m *Model
	switch doc.Kind {
	case kindLinear:
		m, err = NewLinearModel(doc.FeatureNamesIn, doc.Coef, doc.Intercept)
	case kindTreeEnsemble:
		lr := 1.0
		if doc.LearningRate != nil {
			lr = *doc.LearningRate
		}
		trees := make([][]TreeNode, len(doc.Trees))
		for i, t := range doc.Trees {
			trees[i] = t.Nodes
		}
		m, err = NewTreeEnsembleModel(doc.FeatureNamesIn, trees, doc.Aggregation, doc.BaseScore, lr)
	default:
		err = fmt.Errorf("unsupported kind %q", doc.Kind)
	}
	if err != nil {
		return nil, loadError("model", path, err)
	}
	m.digest = digest
	return m, nil
}

// NewLinearModel builds y = intercept + Σ coef[i]·x[i].
func NewLinearModel(features []string, coef []float64, intercept float64) (*Model, error) {
	if err := checkNames(features); err != nil {
		return nil, err
	}
	if len(coef) != len(features) {
		return nil, fmt.Errorf("linear model has %d features and %d coefficients", len(features), len(coef))
	}
	if err := checkFinite("coef", coef); err != nil {
		return nil, err
	}
	if err := checkFinite("intercept", []float64{intercept}); err != nil {
		return nil, err
	}
	return &Model{
		kind:     kindLinear,
		features: slices.Clone(features),
		reg:      linear{coef: slices.Clone(coef), intercept: intercept},
	}, nil
}

// NewTreeEnsembleModel builds y = baseScore + learningRate·agg(trees), where
// agg is the mean of tree outputs (random forest) or their sum (boosting).
func NewTreeEnsembleModel(features []string, trees [][]TreeNode, aggregation string, baseScore, learningRate float64) (*Model, error) {
	if err := checkNames(features); err != nil {
		return nil, err
	}
	if aggregation != aggregationMean && aggregation != aggregationSum {
		return nil, fmt.Errorf("unsupported aggregation %q", aggregation)
	}
	if len(trees) == 0 {
		return nil, errors.New("tree ensemble has no trees")
	}
	if err := checkFinite("base_score", []float64{baseScore}); err != nil {
		return nil, err
	}
	if err := checkFinite("learning_rate", []float64{learningRate}); err != nil {
		return nil, err
	}
	for i, nodes := range trees {
		if err := validateTree(nodes, len(features)); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	cloned := make([][]TreeNode, len(trees))
	for i, nodes := range trees {
		cloned[i] = slices.Clone(nodes)
	}
	return &Model{
		kind:     kindTreeEnsemble,
		features: slices.Clone(features),
		reg: ensemble{
			trees:        cloned,
			mean:         aggregation == aggregationMean,
			baseScore:    baseScore,
			learningRate: learningRate,
		},
	}, nil
}

// validateTree checks that every path from the root ends in a leaf. Children
// must sit after their parent, which rules out cycles.
func validateTree(nodes []TreeNode, nFeatures int) error {
	if len(nodes) == 0 {
		return errors.New("no nodes")
	}
	for i, n := range nodes {
		if n.Feature == leafFeature {
			if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
				return fmt.Errorf("node %d: leaf value is not finite", i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		if math.IsNaN(n.Threshold) {
			return fmt.Errorf("node %d: threshold is NaN", i)
		}
		for _, child := range [2]int{n.Left, n.Right} {
			if child <= i || child >= len(nodes) {
				return fmt.Errorf("node %d: child index %d out of range", i, child)
			}
		}
	}
	return nil
}

// Kind returns "linear" or "tree_ensemble".
func (m *Model) Kind() string { return m.kind }

// Digest is the SHA-256 of the source document, empty for in-memory models.
func (m *Model) Digest() string { return m.digest }

// FeatureNames returns the training columns in order.
func (m *Model) FeatureNames() []string { return slices.Clone(m.features) }

// Predict scores one row given in FeatureNames order.
func (m *Model) Predict(features []float64) (float64, error) {
	if len(features) != len(m.features) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(m.features), len(features))
	}
	return m.reg.predict(features), nil
}

type linear struct {
	coef      []float64
	intercept float64
}

func (l linear) predict(x []float64) float64 {
	y := l.intercept
	for i, c := range l.coef {
		y += c * x[i]
	}
	return y
}

type ensemble struct {
	trees        [][]TreeNode
	mean         bool
	baseScore    float64
	learningRate float64
}

func (e ensemble) predict(x []float64) float64 {
	var total float64
	for _, nodes := range e.trees {
		total += walkTree(nodes, x)
	}
	if e.mean {
		total /= float64(len(e.trees))
	}
	return e.baseScore + e.learningRate*total
}

func walkTree(nodes []TreeNode, x []float64) float64 {
	i := 0
	for nodes[i].Feature != leafFeature {
		n := nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return nodes[i].Value
}
