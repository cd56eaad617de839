package trip

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStage struct {
	name string
	err  error
	ran  bool
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Run(ctx context.Context, st *State) error {
	s.ran = true
	return s.err
}

func TestPipeline_RunsAllStagesInOrder(t *testing.T) {
	first := &recordingStage{name: "first"}
	second := &recordingStage{name: "second"}
	p := NewPipeline(testTripLogger(), first, second)

	st := p.Run(context.Background(), &State{})

	assert.True(t, first.ran)
	assert.True(t, second.ran)
	assert.Empty(t, st.Errors)
}

func TestPipeline_FailingStageDoesNotStopTheRun(t *testing.T) {
	failing := &recordingStage{name: "broken", err: errors.New("boom")}
	after := &recordingStage{name: "after"}
	p := NewPipeline(testTripLogger(), failing, after)

	st := p.Run(context.Background(), &State{})

	assert.True(t, after.ran)
	require.Len(t, st.Errors, 1)
	assert.Equal(t, "broken: boom", st.Errors[0])
}
