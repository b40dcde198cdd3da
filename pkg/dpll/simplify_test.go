package dpll

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/dpll/internal/cnfgen"
	"github.com/limaJavier/dpll/pkg/cnf"
)

func TestSimplify(t *testing.T) {
	solver := New()

	t.Run("Unit propagation cascades to a fixed point", func(t *testing.T) {
		//** Arrange
		formula := cnf.Formula{{1}, {1, 2}, {-1, 3}}

		//** Act
		simplified, model, contradiction := solver.simplify(formula, cnf.Model{})

		//** Assert
		require.False(t, contradiction)
		assert.Empty(t, simplified)
		assert.Equal(t, cnf.Model{1: true, 3: true}, model)
	})

	t.Run("Produced empty clause is a contradiction", func(t *testing.T) {
		_, _, contradiction := solver.simplify(cnf.Formula{{1}, {-1}}, cnf.Model{})

		assert.True(t, contradiction)
	})

	t.Run("Pre-existing empty clause is a contradiction", func(t *testing.T) {
		_, _, contradiction := solver.simplify(cnf.Formula{{}, {1, 2}}, cnf.Model{})

		assert.True(t, contradiction)
	})

	t.Run("Pure literal eliminations cascade", func(t *testing.T) {
		//** Arrange
		formula := cnf.Formula{{1, 2}, {-2, 3}}

		//** Act
		simplified, model, contradiction := solver.simplify(formula, cnf.Model{})

		//** Assert
		require.False(t, contradiction)
		assert.Empty(t, simplified)
		assert.Equal(t, cnf.Model{1: true, 2: false}, model)
	})

	t.Run("Unit clauses take priority over pure literals", func(t *testing.T) {
		//** Arrange
		fresh := New()
		formula := cnf.Formula{{2, 3}, {-1}}

		//** Act
		_, model, contradiction := fresh.simplify(formula, cnf.Model{})

		//** Assert
		require.False(t, contradiction)
		value, assigned := model[1]
		require.True(t, assigned)
		assert.False(t, value)
		assert.Equal(t, uint64(1), fresh.stats.Propagations)
	})

	t.Run("Redundant unit clause dropped without overwriting", func(t *testing.T) {
		testCases := []struct {
			name    string
			formula cnf.Formula
		}{
			{name: "Same polarity", formula: cnf.Formula{{1}}},
			{name: "Opposite polarity", formula: cnf.Formula{{-1}}},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				//** Act
				simplified, model, contradiction := solver.simplify(testCase.formula, cnf.Model{1: true})

				//** Assert
				require.False(t, contradiction)
				assert.Empty(t, simplified)
				assert.Equal(t, cnf.Model{1: true}, model)
			})
		}
	})

	t.Run("Inputs survive untouched", func(t *testing.T) {
		//** Arrange
		formula := cnf.Formula{{1}, {-1, 2}, {3, 4}}
		snapshot := cloneFormula(formula)
		model := cnf.Model{}

		//** Act
		solver.simplify(formula, model)

		//** Assert
		assert.Equal(t, snapshot, formula)
		assert.Empty(t, model)
	})

	t.Run("Idempotent at the fixed point", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(5, 6))
		for range 50 {
			//** Arrange
			formula := cnfgen.RandomKCNF(rng, 10, 30, 3)

			//** Act
			once, onceModel, contradiction := solver.simplify(formula, cnf.Model{})
			if contradiction {
				continue
			}
			twice, twiceModel, contradiction := solver.simplify(once, onceModel)

			//** Assert
			require.False(t, contradiction)
			assert.Equal(t, once, twice)
			assert.Equal(t, onceModel, twiceModel)
		}
	})

	t.Run("Model only ever grows", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 8))
		for range 50 {
			//** Arrange
			formula := cnfgen.RandomKCNF(rng, 10, 30, 3)
			seed := cnf.Model{11: true, 12: false}

			//** Act
			_, model, _ := solver.simplify(formula, seed)

			//** Assert
			assert.True(t, model[11])
			value, assigned := model[12]
			assert.True(t, assigned)
			assert.False(t, value)
		}
	})
}

func TestAssign(t *testing.T) {
	t.Run("Satisfied clauses drop and negations strip", func(t *testing.T) {
		//** Arrange
		formula := cnf.Formula{{1, 2}, {-1, 3}, {4}}

		//** Act
		result := assign(formula, 1)

		//** Assert
		assert.Equal(t, cnf.Formula{{3}, {4}}, result)
	})

	t.Run("May produce an empty clause", func(t *testing.T) {
		result := assign(cnf.Formula{{-1}}, 1)

		require.Len(t, result, 1)
		assert.True(t, result[0].Empty())
	})

	t.Run("Input formula untouched", func(t *testing.T) {
		//** Arrange
		formula := cnf.Formula{{1, 2}, {-1, 3}}
		snapshot := cloneFormula(formula)

		//** Act
		assign(formula, 1)

		//** Assert
		assert.Equal(t, snapshot, formula)
	})
}

func TestPureLiteral(t *testing.T) {
	t.Run("First pure literal in scan order wins", func(t *testing.T) {
		literal, found := pureLiteral(cnf.Formula{{2, -3}, {-2, 4}}, cnf.Model{})

		require.True(t, found)
		assert.Equal(t, cnf.Literal(-3), literal)
	})

	t.Run("Assigned variables are skipped", func(t *testing.T) {
		literal, found := pureLiteral(cnf.Formula{{2, -3}, {-2, 4}}, cnf.Model{3: false})

		require.True(t, found)
		assert.Equal(t, cnf.Literal(4), literal)
	})

	t.Run("No pure literal", func(t *testing.T) {
		_, found := pureLiteral(cnf.Formula{{1, -2}, {-1, 2}}, cnf.Model{})

		assert.False(t, found)
	})
}

func cloneFormula(formula cnf.Formula) cnf.Formula {
	clone := make(cnf.Formula, len(formula))
	for i, clause := range formula {
		clone[i] = slices.Clone(clause)
	}
	return clone
}
