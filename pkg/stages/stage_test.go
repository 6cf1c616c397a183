package stages

import (
	"context"
	"strconv"
	"testing"

	"github.com/sayedpfe/tenantctl/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doubleStage(ctx context.Context, opts []*types.Option, in <-chan int) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		for v := range in {
			out <- v * 2
		}
	}()
	return out
}

func stringifyStage(ctx context.Context, opts []*types.Option, in <-chan int) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for v := range in {
			out <- strconv.Itoa(v)
		}
	}()
	return out
}

func TestChainStages(t *testing.T) {
	pipeline, err := ChainStages[int, string](doubleStage, stringifyStage)
	require.NoError(t, err)

	var got []string
	for v := range pipeline(context.Background(), nil, Generator([]int{1, 2, 3})) {
		got = append(got, v)
	}

	assert.Equal(t, []string{"2", "4", "6"}, got)
}

func TestChainStagesSingleStage(t *testing.T) {
	pipeline, err := ChainStages[int, int](doubleStage)
	require.NoError(t, err)

	var got []int
	for v := range pipeline(context.Background(), nil, Generator([]int{5})) {
		got = append(got, v)
	}

	assert.Equal(t, []int{10}, got)
}

func TestChainStagesRejectsIncompatibleStages(t *testing.T) {
	_, err := ChainStages[int, int](stringifyStage, doubleStage)
	assert.Error(t, err)
}

func TestChainStagesRejectsWrongEndpointTypes(t *testing.T) {
	_, err := ChainStages[string, string](doubleStage, stringifyStage)
	assert.Error(t, err)

	_, err = ChainStages[int, int](doubleStage, stringifyStage)
	assert.Error(t, err)
}

func TestChainStagesRejectsNonStages(t *testing.T) {
	_, err := ChainStages[int, int]("not a function")
	assert.Error(t, err)

	_, err = ChainStages[int, int]()
	assert.Error(t, err)

	_, err = ChainStages[int, int](func(in <-chan int) <-chan int { return in })
	assert.Error(t, err)
}

func TestGenerator(t *testing.T) {
	var got []string
	for v := range Generator([]string{"a", "b"}) {
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}
