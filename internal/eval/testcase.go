package eval

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// GoldSQL holds the acceptable gold formulations for one question. The
// JSON form is either a single string or an ordered array of strings; any
// one candidate matching is sufficient.
type GoldSQL []string

// UnmarshalJSON accepts both a bare string and an array of strings.
func (g *GoldSQL) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*g = GoldSQL{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.Wrap(err, "gold_sql must be a string or an array of strings")
	}
	*g = GoldSQL(many)
	return nil
}

// MarshalJSON keeps the compact form for a single candidate.
func (g GoldSQL) MarshalJSON() ([]byte, error) {
	if len(g) == 1 {
		return json.Marshal(g[0])
	}
	return json.Marshal([]string(g))
}

// TestCase is one question with its gold queries. Immutable once loaded.
type TestCase struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	GoldSQL  GoldSQL `json:"gold_sql"`
}

// Prediction is one model output, joined to a TestCase by id.
type Prediction struct {
	ID      string `json:"id"`
	PredSQL string `json:"pred_sql"`
}

// LoadTestCases reads a JSON array of test cases. Duplicate ids are fatal:
// the report is keyed on them.
func LoadTestCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read testcases")
	}
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, errors.Wrap(err, "decode testcases")
	}
	seen := make(map[string]struct{}, len(cases))
	for _, tc := range cases {
		if _, dup := seen[tc.ID]; dup {
			return nil, errors.Errorf("duplicate testcase id %q", tc.ID)
		}
		seen[tc.ID] = struct{}{}
	}
	return cases, nil
}

// LoadPredictions reads a JSON array of predictions into an id-keyed map.
// A test case with no prediction evaluates against the empty string.
func LoadPredictions(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read predictions")
	}
	var preds []Prediction
	if err := json.Unmarshal(data, &preds); err != nil {
		return nil, errors.Wrap(err, "decode predictions")
	}
	out := make(map[string]string, len(preds))
	for _, p := range preds {
		out[p.ID] = p.PredSQL
	}
	return out, nil
}
