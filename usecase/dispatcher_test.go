package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesToRegisteredHandler(t *testing.T) {
	d := NewDispatcher()
	d.RegisterCommand("test.echo", func(ctx context.Context, payload interface{}) (interface{}, error) {
		return payload, nil
	})

	result, err := d.ExecuteCommand(context.Background(), "test.echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestDispatcherUnknownNames(t *testing.T) {
	d := NewDispatcher()

	_, err := d.ExecuteCommand(context.Background(), "test.missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.missing")

	_, err = d.ExecuteQuery(context.Background(), "test.missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestDispatcherPropagatesHandlerError(t *testing.T) {
	d := NewDispatcher()
	boom := errors.New("boom")
	d.RegisterQuery("test.fail", func(ctx context.Context, params interface{}) (interface{}, error) {
		return nil, boom
	})

	_, err := d.ExecuteQuery(context.Background(), "test.fail", nil)
	assert.ErrorIs(t, err, boom)
}
