package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("test")
	m.AddResponse("halo", "Halo juga!")

	resp, err := m.Generate(context.Background(), Request{Prompt: "halo"})
	require.NoError(t, err)
	assert.Equal(t, "Halo juga!", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestMockModel_ScriptedBeforeCanned(t *testing.T) {
	m := NewMockModel("test")
	m.AddResponse("halo", "canned")
	m.QueueResponse("first")
	m.QueueError(errors.New("boom"))

	resp, err := m.Generate(context.Background(), Request{Prompt: "halo"})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Text)

	_, err = m.Generate(context.Background(), Request{Prompt: "halo"})
	assert.EqualError(t, err, "boom")

	resp, err = m.Generate(context.Background(), Request{Prompt: "halo"})
	require.NoError(t, err)
	assert.Equal(t, "canned", resp.Text)
	assert.Equal(t, 3, m.Calls())
}

func TestMockModel_Fallback(t *testing.T) {
	m := NewMockModel("test")
	resp, err := m.Generate(context.Background(), Request{Prompt: "apa saja"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "apa saja")
}

type slowModel struct{}

func (slowModel) Generate(ctx context.Context, _ Request) (Response, error) {
	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-time.After(time.Second):
		return Response{Text: "late"}, nil
	}
}

func (slowModel) Info() Info { return Info{Name: "slow", Provider: "mock"} }

func TestWithTimeout(t *testing.T) {
	m := WithTimeout(slowModel{}, 10*time.Millisecond)
	_, err := m.Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Non-positive duration is a no-op wrapper.
	assert.Equal(t, "slow", WithTimeout(slowModel{}, 0).Info().Name)
}
