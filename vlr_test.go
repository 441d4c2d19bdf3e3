package las

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVLRRoundTrip(t *testing.T) {
	v := VLR{
		UserID:      "LASF_Spec",
		RecordID:    4,
		Description: "a test VLR",
		Data:        []byte{1, 2, 3, 4, 5},
	}

	dst := NewMemoryDest()
	require.NoError(t, writeVLR(dst, v))

	src := NewMemorySource(dst.Bytes())
	got, err := readVLR(src)
	require.NoError(t, err)

	require.Equal(t, v.UserID, got.UserID)
	require.Equal(t, v.RecordID, got.RecordID)
	require.Equal(t, v.Description, got.Description)
	require.Equal(t, v.Data, got.Data)
	require.Equal(t, v.Size(), got.Size())
}

func TestVLRZeroDataSize(t *testing.T) {
	v := VLR{UserID: "x", RecordID: 1}

	dst := NewMemoryDest()
	require.NoError(t, writeVLR(dst, v))
	require.Equal(t, vlrHeaderSize, len(dst.Bytes()))

	got, err := readVLR(NewMemorySource(dst.Bytes()))
	require.NoError(t, err)
	require.Empty(t, got.Data)
}

func TestVLRIsLaszip(t *testing.T) {
	v := VLR{UserID: LaszipUserID, RecordID: LaszipRecordID}
	require.True(t, v.IsLaszip())

	v.RecordID = 1
	require.False(t, v.IsLaszip())
}

func TestVLRClone(t *testing.T) {
	v := VLR{UserID: "x", RecordID: 1, Data: []byte{1, 2, 3}}
	clone := v.Clone()
	clone.Data[0] = 99
	require.Equal(t, byte(1), v.Data[0])
}
