// Copyright (c) 2025 ryichk
// Licensed under the MIT License.

package tool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"-5 + +2", -3},
		{"7 / 2", 3.5},
		{"7 % 4", 3},
		{"1.5e2", 150},
		{"0x10", 16},
		{"sqrt(16) + abs(-2)", 6},
		{"pow(2, 10)", 1024},
		{"round(2.5)", 3},
		{"floor(pi)", 3},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr string
	}{
		{"", "empty expression"},
		{"2 +", "invalid expression"},
		{"1 / 0", "division by zero"},
		{"5 % 0", "division by zero"},
		{"x + 1", "unknown identifier x"},
		{"foo(1)", "unknown function foo"},
		{"pow(2)", "pow takes 2 arguments"},
		{"sqrt(1, 2)", "sqrt: takes 1 argument"},
		{"1 << 2", "unsupported operator"},
		{`"a"`, "unsupported literal"},
		{"sqrt(-1)", "no finite value"},
		{"a.b(1)", "unsupported function call"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCalculatorTool(t *testing.T) {
	calc := Calculator()

	assert.Equal(t, "calculator", calc.Name())
	assert.Equal(t, []string{"expression"}, calc.ParamsJSONSchema()["required"])

	result, err := calc.Invoke(context.Background(), `{"expression": "(2 + 3) * 4.5"}`)
	require.NoError(t, err)
	assert.Equal(t, "22.5", result)

	_, err = calc.Invoke(context.Background(), `{"expression": "1/0"}`)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestCurrentTimeTool(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	clock := currentTime(func() time.Time { return fixed })

	assert.Equal(t, "current_time", clock.Name())
	assert.Empty(t, clock.ParamsJSONSchema()["required"])

	result, err := clock.Invoke(context.Background(), `{}`)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14T15:09:26Z", result)

	result, err = clock.Invoke(context.Background(), `{"timezone": "Asia/Tokyo"}`)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15T00:09:26+09:00", result)

	_, err = clock.Invoke(context.Background(), `{"timezone": "Mars/Olympus"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown timezone")
}

func TestCurrentTimeUsesWallClock(t *testing.T) {
	result, err := CurrentTime().Invoke(context.Background(), "")
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, result)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}
