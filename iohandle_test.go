package las

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySourceSeekVariants(t *testing.T) {
	src := NewMemorySource([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	pos, err := src.Seek(3, io.SeekStart)
	require.NoError(t, err)
	require.EqualValues(t, 3, pos)

	pos, err = src.Seek(2, io.SeekCurrent)
	require.NoError(t, err)
	require.EqualValues(t, 5, pos)

	pos, err = src.Seek(-1, io.SeekEnd)
	require.NoError(t, err)
	require.EqualValues(t, 9, pos)

	// Seeking past the end clamps to end rather than erroring.
	pos, err = src.Seek(100, io.SeekStart)
	require.NoError(t, err)
	require.EqualValues(t, 10, pos)
	require.True(t, src.EOF())

	_, err = src.Seek(-1, io.SeekStart)
	require.Error(t, err)
}

func TestMemorySourceReadTracksEOF(t *testing.T) {
	src := NewMemorySource([]byte{1, 2, 3})
	buf := make([]byte, 2)

	n, err := src.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.False(t, src.EOF())

	n, err = src.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, src.EOF())
}

func TestMemoryDestGrowsAndSeeks(t *testing.T) {
	dst := NewMemoryDest()

	n, err := dst.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{1, 2, 3}, dst.Bytes())

	_, err = dst.Seek(0, io.SeekStart)
	require.NoError(t, err)
	_, err = dst.Write([]byte{9})
	require.NoError(t, err)
	require.Equal(t, []byte{9, 2, 3}, dst.Bytes())

	_, err = dst.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	_, err = dst.Write([]byte{4, 5})
	require.NoError(t, err)
	require.Equal(t, []byte{9, 2, 3, 4, 5}, dst.Bytes())
}

func TestCustomCallbackSourceDelegates(t *testing.T) {
	var gotOffset int64
	src := &CustomCallbackSource{
		ReadFunc: func(dst []byte) (int, error) { return len(dst), nil },
		SeekFunc: func(offset int64, whence int) (int64, error) {
			gotOffset = offset
			return offset, nil
		},
		TellFunc: func() (int64, error) { return 42, nil },
	}

	n, err := src.Read(make([]byte, 5))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	_, err = src.Seek(7, io.SeekStart)
	require.NoError(t, err)
	require.EqualValues(t, 7, gotOffset)

	pos, err := src.Tell()
	require.NoError(t, err)
	require.EqualValues(t, 42, pos)

	require.False(t, src.EOF())
	require.NoError(t, src.Close())
}
