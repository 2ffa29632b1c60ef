package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (m *mockProcessor) Process(ctx context.Context, input string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if err, ok := m.fail[input]; ok {
		return "", err
	}
	return strings.ToUpper(input), nil
}

func TestRunKeepsInputOrder(t *testing.T) {
	inputs := []string{"a.psm1", "b.psm1", "c.psm1", "d.psm1"}
	mock := &mockProcessor{}

	results, err := Run[string](context.Background(), inputs, 3, mock)
	require.NoError(t, err)

	assert.Equal(t, []string{"A.PSM1", "B.PSM1", "C.PSM1", "D.PSM1"}, results)
	assert.ElementsMatch(t, inputs, mock.calls)
}

func TestRunWrapsFailureWithInput(t *testing.T) {
	boom := errors.New("boom")
	mock := &mockProcessor{fail: map[string]error{"bad.mof": boom}}

	_, err := Run[string](context.Background(), []string{"bad.mof"}, 1, mock)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "bad.mof")
}

func TestRunStopsAfterFailureWithSingleWorker(t *testing.T) {
	boom := errors.New("boom")
	mock := &mockProcessor{fail: map[string]error{"first": boom}}

	_, err := Run[string](context.Background(), []string{"first", "second", "third"}, 1, mock)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first"}, mock.calls)
}

func TestRunRespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	gate := make(chan struct{})

	p := ProcessorFunc[int](func(ctx context.Context, input string) (int, error) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		<-gate
		inFlight.Add(-1)
		return len(input), nil
	})

	inputs := make([]string, 8)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("input-%d", i)
	}

	done := make(chan error, 1)
	go func() {
		_, err := Run[int](context.Background(), inputs, 2, p)
		done <- err
	}()
	close(gate)

	require.NoError(t, <-done)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunNoInputs(t *testing.T) {
	_, err := Run[string](context.Background(), nil, 1, &mockProcessor{})
	assert.Error(t, err)
}
