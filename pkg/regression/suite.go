package regression

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SuiteConfig is the YAML description of a regression suite.
type SuiteConfig struct {
	Tests []TestConfig `yaml:"tests"`
}

// TestConfig describes one comparison: a simulation output directory,
// a reference directory, the result file to compare, and how to judge
// the difference.
type TestConfig struct {
	Name     string         `yaml:"name"`
	Sim      string         `yaml:"sim"`
	Ref      string         `yaml:"ref"`
	File     string         `yaml:"file"`
	Metric   string         `yaml:"metric"`
	PassFunc PassFuncConfig `yaml:"passfunc"`
	Plots    bool           `yaml:"plots"`
}

// PassFuncConfig selects and parameterizes a pass function.
type PassFuncConfig struct {
	Type     string  `yaml:"type"`
	Baseline float64 `yaml:"baseline"`
	Cutoff   float64 `yaml:"cutoff"`
}

// LoadSuiteConfig reads and validates a suite description.
func LoadSuiteConfig(path string) (*SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regression: failed to read suite config %s: %w", path, err)
	}
	var cfg SuiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("regression: failed to parse suite config %s: %w", path, err)
	}
	if len(cfg.Tests) == 0 {
		return nil, fmt.Errorf("regression: suite config %s defines no tests", path)
	}
	for i, tc := range cfg.Tests {
		if tc.Name == "" {
			return nil, fmt.Errorf("regression: test %d has no name", i)
		}
		if tc.Sim == "" || tc.Ref == "" {
			return nil, fmt.Errorf("regression: test %s needs sim and ref paths", tc.Name)
		}
	}
	return &cfg, nil
}

func (tc TestConfig) metric() (Metric, error) {
	switch tc.Metric {
	case "", "quality":
		return QualityMetric{}, nil
	case "tanh":
		return TanhErrorMetric{}, nil
	default:
		return nil, fmt.Errorf("regression: unknown metric %q", tc.Metric)
	}
}

func (tc TestConfig) passFunc() (PassFunc, error) {
	switch tc.PassFunc.Type {
	case "", "flat":
		return FlatPassFunc{Baseline: tc.PassFunc.Baseline}, nil
	case "linear-buffer":
		return LinearBufferPassFunc{Baseline: tc.PassFunc.Baseline, Cutoff: tc.PassFunc.Cutoff}, nil
	default:
		return nil, fmt.Errorf("regression: unknown pass function %q", tc.PassFunc.Type)
	}
}

// Suite is a set of built, runnable tests.
type Suite struct {
	Tests []*Test
	plots map[*Test]bool
}

// Build loads every configured test's data through the reader. A
// multi-species result file expands into one test per species.
func (cfg *SuiteConfig) Build(reader DataReader) (*Suite, error) {
	suite := &Suite{plots: make(map[*Test]bool)}
	for _, tc := range cfg.Tests {
		file := tc.File
		if file == "" {
			file = "simple_plot.dat"
		}
		simSeries, err := reader.Load(filepath.Join(tc.Sim, file))
		if err != nil {
			return nil, err
		}
		refSeries, err := reader.Load(filepath.Join(tc.Ref, file))
		if err != nil {
			return nil, err
		}
		if len(simSeries) != len(refSeries) {
			return nil, fmt.Errorf("regression: test %s: sim has %d series, ref has %d",
				tc.Name, len(simSeries), len(refSeries))
		}
		metric, err := tc.metric()
		if err != nil {
			return nil, err
		}
		passFunc, err := tc.passFunc()
		if err != nil {
			return nil, err
		}
		for i := range simSeries {
			name := tc.Name
			if label := simSeries[i].Label; label != "" {
				name = fmt.Sprintf("%s (%s)", name, label)
			}
			test := &Test{
				Name:   name,
				Sim:    simSeries[i],
				Ref:    refSeries[i],
				Metric: metric,
				Pass:   passFunc,
			}
			suite.Tests = append(suite.Tests, test)
			suite.plots[test] = tc.Plots
		}
	}
	return suite, nil
}

// Run evaluates every test, reporting through the logger and rendering
// plots for tests that requested them. It returns whether the whole
// suite passed; evaluation errors stop the run.
func (s *Suite) Run(logger Logger, plotter Plotter) (bool, error) {
	allPassed := true
	for _, test := range s.Tests {
		if err := test.Evaluate(); err != nil {
			return false, err
		}
		if logger != nil {
			logger.Log(test)
		}
		if plotter != nil && s.plots[test] {
			if err := plotter.Plot(test); err != nil {
				return false, err
			}
		}
		if !test.Results.AllPassed {
			allPassed = false
		}
	}
	return allPassed, nil
}
