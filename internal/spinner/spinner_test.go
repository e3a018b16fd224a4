package spinner

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func TestNewSpinnerModel(t *testing.T) {
	model := NewSpinnerModel("Deploying instance...")

	assert.Equal(t, "Deploying instance...", model.message)
	assert.Equal(t, "", model.successMessage)
	assert.False(t, model.done)
	assert.Nil(t, model.err)
}

func TestNewSpinnerModelWithSuccess(t *testing.T) {
	model := NewSpinnerModelWithSuccess("Deploying instance...", "✓ Instance deployed")

	assert.Equal(t, "Deploying instance...", model.message)
	assert.Equal(t, "✓ Instance deployed", model.successMessage)
	assert.False(t, model.done)
}

func TestSpinnerModel_View(t *testing.T) {
	t.Run("spinning shows the message", func(t *testing.T) {
		model := NewSpinnerModel("Deploying instance...")

		view := model.View()
		assert.Contains(t, view, "Deploying instance...")
	})

	t.Run("done shows the custom success message", func(t *testing.T) {
		model := NewSpinnerModelWithSuccess("Deploying instance...", "✓ Instance deployed")
		model.done = true

		assert.Equal(t, "✓ Instance deployed", model.View())
	})

	t.Run("done falls back to the default success message", func(t *testing.T) {
		model := NewSpinnerModel("Deploying instance...")
		model.done = true

		assert.Equal(t, "✓ Operation completed", model.View())
	})

	t.Run("error shows the failure", func(t *testing.T) {
		model := NewSpinnerModel("Deploying instance...")
		model.done = true
		model.err = errors.New("500 - boom")

		view := model.View()
		assert.Contains(t, view, "✗ Operation failed")
		assert.Contains(t, view, "boom")
	})
}

func TestSpinnerModel_Update(t *testing.T) {
	t.Run("tick keeps spinning", func(t *testing.T) {
		model := NewSpinnerModel("Working...")

		updated, cmd := model.Update(spinner.TickMsg{})

		assert.NotNil(t, cmd)
		assert.False(t, updated.(SpinnerModel).done)
	})

	t.Run("complete message finishes", func(t *testing.T) {
		model := NewSpinnerModel("Working...")

		updated, cmd := model.Update(spinnerCompleteMsg{})

		assert.True(t, updated.(SpinnerModel).done)
		assert.NotNil(t, cmd)
	})

	t.Run("error message finishes and keeps the error", func(t *testing.T) {
		model := NewSpinnerModel("Working...")
		failure := errors.New("operation failed")

		updated, cmd := model.Update(spinnerErrorMsg{err: failure})

		assert.True(t, updated.(SpinnerModel).done)
		assert.Equal(t, failure, updated.(SpinnerModel).err)
		assert.NotNil(t, cmd)
	})
}

func TestRunWithSpinner(t *testing.T) {
	err := RunWithSpinner("Working...", func() error {
		return nil
	})
	assert.NoError(t, err)
}

func TestRunWithSpinner_PropagatesError(t *testing.T) {
	failure := errors.New("operation failed")
	err := RunWithSpinner("Working...", func() error {
		return failure
	})
	assert.Equal(t, failure, err)
}

func TestRunWithSpinnerAndSuccess(t *testing.T) {
	err := RunWithSpinnerAndSuccess("Working...", "✓ All good", func() error {
		return nil
	})
	assert.NoError(t, err)
}

func TestRunWithSpinnerAndSuccess_PropagatesError(t *testing.T) {
	failure := errors.New("operation failed")
	err := RunWithSpinnerAndSuccess("Working...", "✓ All good", func() error {
		return failure
	})
	assert.Equal(t, failure, err)
}
