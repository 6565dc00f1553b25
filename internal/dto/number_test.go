package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseNumberAcceptsNumbersAndStrings(t *testing.T) {
	var req CreateTripRequest

	require.NoError(t, json.Unmarshal([]byte(`{"total_budget": 1250.5}`), &req))
	assert.Equal(t, LooseNumber("1250.5"), req.TotalBudget)

	require.NoError(t, json.Unmarshal([]byte(`{"total_budget": "900"}`), &req))
	assert.Equal(t, LooseNumber("900"), req.TotalBudget)

	require.NoError(t, json.Unmarshal([]byte(`{"total_budget": null}`), &req))
	assert.Equal(t, LooseNumber(""), req.TotalBudget)

	assert.Error(t, json.Unmarshal([]byte(`{"total_budget": true}`), &req))
}
