package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounter_Increments(t *testing.T) {
	var c Counter
	c.Compare()
	c.Compare()
	c.Swap()

	require.Equal(t, int64(2), c.Comparisons)
	require.Equal(t, int64(1), c.Swaps)
	require.Equal(t, "comps=2 swaps=1", c.String())
}

func TestCounter_SnapshotIsDetached(t *testing.T) {
	c := &Counter{}
	c.Compare()
	snap := c.Snapshot()
	c.Compare()

	require.Equal(t, int64(1), snap.Comparisons)
	require.Equal(t, int64(2), c.Comparisons)
}
