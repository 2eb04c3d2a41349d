//go:build unix

package file

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGivesUpWhenLockIsHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := Open(path)
	require.NoError(t, err)

	release, err := acquire(context.Background(), path+".lock")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = s.Set(ctx, "user-Alex", "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	require.NoError(t, s.Set(context.Background(), "user-Alex", "a"))
}
