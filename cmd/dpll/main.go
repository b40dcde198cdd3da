package main

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/limaJavier/dpll/pkg/cnf"
	"github.com/limaJavier/dpll/pkg/dpll"
)

// SAT-competition exit codes.
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
	exitVerifyFailed  = 15
)

const literalsPerLine = 20

func getFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "input-file, in",
			Usage: "Input CNF file in DIMACS format (required; .gz and .bz2 accepted)",
		},
		cli.BoolFlag{
			Name:  "model, m",
			Usage: "Print the satisfying assignment as v-lines",
		},
		cli.BoolFlag{
			Name:  "verify",
			Usage: "Re-check the assignment against the input formula before reporting",
		},
		cli.StringFlag{
			Name:  "check",
			Usage: "Verify a solution file against the formula instead of solving",
		},
		cli.BoolFlag{
			Name:  "stats, s",
			Usage: "Print search statistics as c-lines",
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "Trace every search step to stderr",
		},
	}
}

func validateFlags(c *cli.Context) error {
	if c.String("input-file") == "" {
		return fmt.Errorf("input-file is required")
	}
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("c [dpll] ")

	app := cli.NewApp()
	app.Name = "dpll"
	app.Usage = "A DPLL SAT solver for DIMACS CNF instances"
	app.Flags = getFlags()

	app.Action = func(c *cli.Context) error {
		if err := validateFlags(c); err != nil {
			fmt.Println(err)
			cli.ShowAppHelpAndExit(c, 1)
		}

		parseStart := time.Now()
		formula, header := loadFormula(c.String("input-file"))
		parseElapsed := time.Since(parseStart)
		log.Printf("parsed %v clauses over %v variables in %v", len(formula), len(formula.Vars()), parseElapsed)
		if header.Clauses != uint64(len(formula)) {
			log.Printf("header declares %v clauses, instance carries %v", header.Clauses, len(formula))
		}

		if solutionFile := c.String("check"); solutionFile != "" {
			checkSolution(formula, solutionFile)
			return nil
		}

		var options []dpll.Option
		if c.Bool("debug") {
			tracer := logrus.New()
			tracer.SetLevel(logrus.DebugLevel)
			options = append(options, dpll.WithTrace(tracer))
		}
		solver := dpll.New(options...)

		start := time.Now()
		model, satisfiable := solver.Solve(formula)
		elapsed := time.Since(start)
		log.Printf("solved in %v", elapsed)

		if c.Bool("stats") {
			printStats(solver.Stats(), parseElapsed, elapsed)
		}

		if !satisfiable {
			fmt.Println("s UNSATISFIABLE")
			os.Exit(exitUnsatisfiable)
		}

		if c.Bool("verify") && !formula.SatisfiedBy(model) {
			log.Printf("verification failed: model does not satisfy the formula")
			os.Exit(exitVerifyFailed)
		}

		fmt.Println("s SATISFIABLE")
		if c.Bool("model") {
			printModel(model)
		}
		os.Exit(exitSatisfiable)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadFormula(path string) (cnf.Formula, cnf.Header) {
	reader, cleanup := openInput(path)
	defer cleanup()

	formula, header, err := cnf.ParseDIMACS(reader)
	if err != nil {
		log.Fatalf("cannot parse %v: %v", path, err)
	}
	return formula, header
}

// openInput decompresses gzip and bzip2 inputs transparently based on
// the file extension.
func openInput(path string) (io.Reader, func()) {
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("cannot open input: %v", err)
	}

	switch filepath.Ext(path) {
	case ".gz":
		unzipped, err := gzip.NewReader(file)
		if err != nil {
			log.Fatalf("cannot read gzip input: %v", err)
		}
		return unzipped, func() {
			unzipped.Close()
			file.Close()
		}
	case ".bz2":
		return bzip2.NewReader(file), func() { file.Close() }
	default:
		return file, func() { file.Close() }
	}
}

func checkSolution(formula cnf.Formula, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("cannot read solution file: %v", err)
	}

	model, err := cnf.ParseSolution(string(content))
	if err != nil {
		log.Fatalf("cannot parse solution file: %v", err)
	}

	if !formula.SatisfiedBy(model) {
		log.Printf("solution does not satisfy the formula")
		os.Exit(exitVerifyFailed)
	}
	log.Printf("solution verified over %v assignments", len(model))
}

func printModel(model cnf.Model) {
	for _, chunk := range lo.Chunk(model.Literals(), literalsPerLine) {
		fields := lo.Map(chunk, func(l cnf.Literal, _ int) string {
			return strconv.FormatInt(int64(l), 10)
		})
		fmt.Printf("v %v\n", strings.Join(fields, " "))
	}
	fmt.Println("v 0")
}

func printStats(stats dpll.Stats, parseElapsed, solveElapsed time.Duration) {
	fmt.Printf("c decisions: %12d\n", stats.Decisions)
	fmt.Printf("c propagations: %12d\n", stats.Propagations)
	fmt.Printf("c pure literals: %12d\n", stats.PureLiterals)
	fmt.Printf("c conflicts: %12d\n", stats.Conflicts)
	fmt.Printf("c max depth: %12d\n", stats.MaxDepth)
	fmt.Printf("c parse time: %12v\n", parseElapsed)
	fmt.Printf("c solve time: %12v\n", solveElapsed)
}
