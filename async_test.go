package cypherparse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse"
)

func TestParseAsync(t *testing.T) {
	t.Parallel()

	res, ok := <-cypherparse.ParseAsync(context.Background(), "RETURN 1")
	require.True(t, ok)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Outcome)
	assert.Len(t, res.Outcome.Directives, 1)
}

func TestParseAsyncChannelCloses(t *testing.T) {
	t.Parallel()

	ch := cypherparse.ParseAsync(context.Background(), "RETURN (")

	res := <-ch
	require.ErrorIs(t, res.Err, cypherparse.ErrSyntax)
	require.NotNil(t, res.Outcome)
	assert.Len(t, res.Outcome.Errors, 1)

	_, ok := <-ch
	assert.False(t, ok)
}

func TestParseAsyncCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := <-cypherparse.ParseAsync(ctx, "RETURN 1")
	require.ErrorIs(t, res.Err, context.Canceled)
	assert.Nil(t, res.Outcome)
}
