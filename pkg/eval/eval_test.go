package eval_test

import (
	"testing"

	"github.com/herohde/morlock-core/pkg/board/fen"
	"github.com/herohde/morlock-core/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	e := eval.NewEvaluator()
	assert.Zero(t, e.Evaluate(pos))
}

func TestEvaluatePerspectiveFlipsWithSideToMove(t *testing.T) {
	// White is up a queen; the same board scored from Black's perspective
	// must be the exact negation of White's.
	const material = "4k3/8/8/8/8/8/8/3QK3 w - - 0 1"

	white, err := fen.Decode(material)
	require.NoError(t, err)
	black, err := fen.Decode("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	require.NoError(t, err)

	e := eval.NewEvaluator()
	assert.Equal(t, e.Evaluate(white), -e.Evaluate(black))
	assert.Greater(t, e.Evaluate(white), int32(0))
}

func TestEvaluateRewardsMaterialAdvantage(t *testing.T) {
	up, err := fen.Decode("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	even, err := fen.Decode("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	e := eval.NewEvaluator()
	assert.Greater(t, e.Evaluate(up), e.Evaluate(even))
}

func TestSetParametersRoundTrips(t *testing.T) {
	e := eval.NewEvaluator()
	params := e.Parameters()
	require.NotEmpty(t, params)

	mutated := make([]int32, len(params))
	copy(mutated, params)
	mutated[0]++

	require.NoError(t, e.SetParameters(mutated))
	assert.Equal(t, mutated, e.Parameters())
}

func TestSetParametersRejectsWrongLength(t *testing.T) {
	e := eval.NewEvaluator()
	err := e.SetParameters([]int32{1, 2, 3})
	assert.Error(t, err)
}

func TestSetParametersInvalidatesCache(t *testing.T) {
	pos, err := fen.Decode("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	e := eval.NewEvaluator()
	before := e.Evaluate(pos)

	params := e.Parameters()
	mutated := make([]int32, len(params))
	copy(mutated, params)
	for i := range mutated {
		mutated[i] *= 2
	}
	require.NoError(t, e.SetParameters(mutated))

	assert.NotEqual(t, before, e.Evaluate(pos))
}
