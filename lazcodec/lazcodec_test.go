package lazcodec

import (
	"bytes"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, f Factory) {
	t.Helper()

	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 50)

	var compressed bytes.Buffer
	comp, err := f.NewCompressor(&compressed, len(payload))
	require.NoError(t, err)

	_, err = comp.Write(payload)
	require.NoError(t, err)
	require.NoError(t, comp.Close())

	dec, err := f.NewDecompressor(&compressed, comp.VLRData(), len(payload))
	require.NoError(t, err)

	got := make([]byte, len(payload))
	n, err := dec.Read(got)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, payload, got)
	require.NoError(t, dec.Close())
}

func TestNoopFactoryRoundTrip(t *testing.T) {
	roundTrip(t, NewNoopFactory())
}

func TestFlateFactoryRoundTrip(t *testing.T) {
	roundTrip(t, NewFlateFactory(-1))
}

func TestLZ4FactoryRoundTrip(t *testing.T) {
	roundTrip(t, NewLZ4Factory(lz4.Level1))
}

func TestDefaultIsNil(t *testing.T) {
	require.Nil(t, Default())
}
