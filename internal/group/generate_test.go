package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	params, err := Generate(DefaultGenerationAttempts)
	require.NoError(t, err)
	require.NotNil(t, params)

	assert.True(t, params.P.ProbablyPrime(20))
	assert.True(t, params.Q.ProbablyPrime(20))
	assert.True(t, IsPrimeOrderSubgroup(params.P, params.Q, params.G, params.H))
	assert.NoError(t, params.Validate())
}

func TestGenerate_DefaultsAttemptsWhenNonPositive(t *testing.T) {
	params, err := Generate(0)
	require.NoError(t, err)
	require.NotNil(t, params)
}

func TestErrGenerationExhausted_Error(t *testing.T) {
	err := &ErrGenerationExhausted{Attempts: 50}
	assert.Contains(t, err.Error(), "50 attempts")
}
