package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardStepOneGuard(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	err := w.Next(false, false)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepMarkets, verr.Step)
	assert.Equal(t, StateStep1, w.State())
	assert.NotEmpty(t, w.Errors()[StepMarkets])

	require.NoError(t, w.Next(true, false))
	assert.Equal(t, StateStep2, w.State())
	assert.Empty(t, w.Errors())
}

func TestWizardStepTwoGuard(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	require.NoError(t, w.Next(true, false))

	err := w.Next(true, false)
	require.Error(t, err)
	assert.Equal(t, StateStep2, w.State())
	assert.Equal(t, msgSelectChannel, w.Errors()[StepChannels])

	require.NoError(t, w.Next(true, true))
	assert.Equal(t, StateStep3Form, w.State())
}

func TestWizardBackDoesNotRevalidate(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	require.NoError(t, w.Next(true, false))
	require.NoError(t, w.Next(true, true))

	require.NoError(t, w.Back())
	assert.Equal(t, StateStep2, w.State())
	require.NoError(t, w.Back())
	assert.Equal(t, StateStep1, w.State())
	assert.Empty(t, w.Errors())

	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)
}

func TestWizardTerminalState(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	assert.ErrorIs(t, w.Succeed(), ErrInvalidTransition)

	require.NoError(t, w.Next(true, false))
	require.NoError(t, w.Next(true, true))
	assert.ErrorIs(t, w.Next(true, true), ErrInvalidTransition)

	w.SetError(StepContact, "boom")
	require.NoError(t, w.Succeed())
	assert.Equal(t, StateStep3Success, w.State())
	assert.Empty(t, w.Errors())

	assert.ErrorIs(t, w.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, w.Next(true, true), ErrInvalidTransition)

	require.NoError(t, w.Restart())
	assert.Equal(t, StateStep1, w.State())
}

func TestStateStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  Step
	}{
		{StateStep1, StepMarkets},
		{StateStep2, StepChannels},
		{StateStep3Form, StepContact},
		{StateStep3Success, StepContact},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.state.Step(), string(tc.state))
	}
}
