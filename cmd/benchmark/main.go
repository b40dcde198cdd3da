package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/limaJavier/dpll/internal/cnfgen"
	"github.com/limaJavier/dpll/pkg/cnf"
	"github.com/limaJavier/dpll/pkg/dpll"
)

type ResultType int

const (
	satisfiable ResultType = iota
	unsatisfiable
	mismatch
)

var resultTypes = map[ResultType]string{
	satisfiable:   "satisfiable",
	unsatisfiable: "unsatisfiable",
	mismatch:      "mismatch",
}

// DirectorySuite points at a directory of DIMACS files sharing an
// expected verdict ("satisfiable", "unsatisfiable" or "unknown").
type DirectorySuite struct {
	Path     string
	Expected string
}

// RandomSuite describes generated instances. Width picks the clause
// shape: a positive value draws that many distinct variables per
// clause, zero draws mixed-width clauses.
type RandomSuite struct {
	Name      string
	Variables uint64
	Clauses   int
	Width     int
	Instances int
	Seed      uint64
}

type Config struct {
	Output       string
	Directories  []DirectorySuite
	RandomSuites []RandomSuite
}

type TestInstance struct {
	Suite     string
	Name      string
	Variables int
	Clauses   int
	Expected  *bool
	Formula   cnf.Formula
}

type BenchmarkResult struct {
	Test       TestInstance
	DurationUs int64
	Stats      dpll.Stats
	Result     ResultType
}

func main() {
	configPath := flag.String("config", "config.json", "Benchmark configuration file")
	flag.Parse()

	config := loadConfig(*configPath)
	instances := getInstances(config)
	solver := dpll.New()
	results := make([]BenchmarkResult, 0, len(instances))

	for _, instance := range instances {
		fmt.Printf("Benchmarking instance \"%v\" from suite \"%v\"\n", instance.Name, instance.Suite)

		durationUs, stats, sat := measure(solver, instance.Formula)

		results = append(results, BenchmarkResult{
			Test:       instance,
			DurationUs: durationUs,
			Stats:      stats,
			Result:     classify(instance.Expected, sat),
		})
	}

	toCsv(results, config.Output)
}

func loadConfig(path string) Config {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}

	var config Config
	if err := mapstructure.Decode(raw, &config); err != nil {
		log.Fatalf("cannot decode config file: %v", err)
	}
	if config.Output == "" {
		config.Output = "benchmark_results.csv"
	}
	return config
}

func getInstances(config Config) []TestInstance {
	instances := make([]TestInstance, 0)

	for _, directory := range config.Directories {
		expected := parseExpected(directory.Expected)
		files, err := os.ReadDir(directory.Path)
		if err != nil {
			log.Fatalf("cannot read directory: %v", err)
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}

			filename := filepath.Join(directory.Path, file.Name())
			reader, err := os.Open(filename)
			if err != nil {
				log.Fatalf("cannot open instance file: %v", err)
			}
			formula, _, err := cnf.ParseDIMACS(reader)
			reader.Close()
			if err != nil {
				log.Fatalf("cannot parse instance file %v: %v", filename, err)
			}

			instances = append(instances, newInstance(directory.Path, filename, expected, formula))
		}
	}

	for _, suite := range config.RandomSuites {
		rng := rand.New(rand.NewPCG(suite.Seed, suite.Seed))
		for i := range suite.Instances {
			var formula cnf.Formula
			if suite.Width > 0 {
				formula = cnfgen.RandomKCNF(rng, suite.Variables, suite.Clauses, suite.Width)
			} else {
				formula = cnfgen.Random(rng, suite.Variables, suite.Clauses)
			}

			instances = append(instances, newInstance(suite.Name, fmt.Sprintf("%v-%03d", suite.Name, i), nil, formula))
		}
	}

	return instances
}

func newInstance(suite, name string, expected *bool, formula cnf.Formula) TestInstance {
	return TestInstance{
		Suite:     suite,
		Name:      name,
		Variables: len(formula.Vars()),
		Clauses:   len(formula),
		Expected:  expected,
		Formula:   formula,
	}
}

func parseExpected(value string) *bool {
	switch value {
	case "satisfiable":
		return lo.ToPtr(true)
	case "unsatisfiable":
		return lo.ToPtr(false)
	case "", "unknown":
		return nil
	default:
		log.Fatalf("unknown expected verdict %q", value)
		return nil
	}
}

func measure(solver *dpll.Solver, formula cnf.Formula) (durationUs int64, stats dpll.Stats, sat bool) {
	start := time.Now()
	model, sat := solver.Solve(formula)
	duration := time.Since(start)

	if sat && !formula.SatisfiedBy(model) {
		log.Fatalf("solver returned a model that does not satisfy its formula")
	}
	return duration.Microseconds(), solver.Stats(), sat
}

func classify(expected *bool, sat bool) ResultType {
	if expected != nil && *expected != sat {
		return mismatch
	}
	if sat {
		return satisfiable
	}
	return unsatisfiable
}

func toCsv(results []BenchmarkResult, output string) {
	file, err := os.Create(output)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Suite", "Test", "Variables", "Clauses", "Result", "Duration(us)", "Decisions", "Propagations", "PureLiterals", "Conflicts", "MaxDepth"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Test.Suite,
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Variables),
			fmt.Sprintf("%d", result.Test.Clauses),
			resultTypes[result.Result],
			fmt.Sprintf("%d", result.DurationUs),
			fmt.Sprintf("%d", result.Stats.Decisions),
			fmt.Sprintf("%d", result.Stats.Propagations),
			fmt.Sprintf("%d", result.Stats.PureLiterals),
			fmt.Sprintf("%d", result.Stats.Conflicts),
			fmt.Sprintf("%d", result.Stats.MaxDepth),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
