package cnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Header carries the dimensions declared by a DIMACS problem line. The
// values are informational only: parsing never checks them against the
// clauses actually read.
type Header struct {
	Variables uint64
	Clauses   uint64
}

// ParseDIMACS reads a formula in DIMACS CNF format. Parsing is
// deliberately tolerant: lines starting with "c" or "%" are comments,
// the problem line is captured but not enforced, a clause may span
// several lines, and a trailing clause missing its 0 terminator is
// accepted at end of input.
func ParseDIMACS(r io.Reader) (Formula, Header, error) {
	var (
		formula Formula
		header  Header
		pending []Literal
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "c") || strings.HasPrefix(text, "%") {
			continue
		}

		// Problem line
		if strings.HasPrefix(text, "p") {
			fields := strings.Fields(text)
			if len(fields) == 4 {
				header.Variables, _ = strconv.ParseUint(fields[2], 10, 64)
				header.Clauses, _ = strconv.ParseUint(fields[3], 10, 64)
			}
			continue
		}

		// Clause line
		for _, field := range strings.Fields(text) {
			value, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, header, errors.Wrapf(err, "invalid literal %q on line %d", field, line)
			}
			if value == 0 {
				formula = append(formula, NewClause(pending...))
				pending = nil
				continue
			}
			pending = append(pending, Literal(value))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, header, errors.Wrap(err, "reading DIMACS input")
	}

	if len(pending) > 0 {
		formula = append(formula, NewClause(pending...))
	}
	return formula, header, nil
}

// DIMACS renders the formula in DIMACS CNF format.
func (f Formula) DIMACS() string {
	var builder strings.Builder

	// Header
	fmt.Fprintf(&builder, "p cnf %d %d\n", f.MaxVar(), len(f))

	// Clauses
	for _, clause := range f {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}

	return builder.String()
}

// ParseSolution extracts a model from SAT-competition solver output:
// "v "-prefixed lines of signed literals terminated by 0. Contradictory
// assignments to the same variable are rejected.
func ParseSolution(output string) (Model, error) {
	model := Model{}
	valueLines := lo.Filter(strings.Split(output, "\n"), func(line string, _ int) bool {
		return strings.HasPrefix(line, "v")
	})

	for _, line := range valueLines {
		for _, field := range strings.Fields(line)[1:] {
			value, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid literal %q in solution line", field)
			}
			if value == 0 {
				return model, nil
			}
			literal := Literal(value)
			if assigned, ok := model[literal.Var()]; ok && assigned != literal.Positive() {
				return nil, errors.Errorf("contradictory assignment for variable %d", literal.Var())
			}
			model[literal.Var()] = literal.Positive()
		}
	}
	return model, nil
}
