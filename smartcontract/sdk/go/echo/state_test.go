package echo_test

import (
	"bytes"
	"testing"

	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
	"github.com/stretchr/testify/require"
)

func TestSDK_Echo_State_AuthorizedBuffer_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: []byte{}},
		{name: "text", data: []byte("hello world")},
		{name: "binary", data: []byte{0x00, 0xff, 0x10, 0x00}},
		{name: "large", data: bytes.Repeat([]byte{0xab}, 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &echo.AuthorizedBuffer{
				AuthorizedBufferHeader: echo.AuthorizedBufferHeader{BumpSeed: 254, BufferSeed: 123907},
				Data:                   tt.data,
			}
			raw, err := buf.Serialize()
			require.NoError(t, err)
			require.Len(t, raw, int(echo.RequiredAccountSize(uint64(len(tt.data)))))
			require.Equal(t, []byte{254, 0x03, 0xe4, 0x01, 0, 0, 0, 0, 0}, raw[:echo.AuthorizedBufferHeaderSize])

			payload, err := echo.ParseAccountData(raw)
			require.NoError(t, err)
			require.Equal(t, tt.data, payload)

			decoded, err := echo.DeserializeAuthorizedBuffer(raw)
			require.NoError(t, err)
			require.Equal(t, buf.AuthorizedBufferHeader, decoded.AuthorizedBufferHeader)
			require.Equal(t, tt.data, decoded.Data)
		})
	}
}

func TestSDK_Echo_State_ParseAccountData_ReturnsCopy(t *testing.T) {
	t.Parallel()

	raw := append(make([]byte, echo.AuthorizedBufferHeaderSize), []byte("abc")...)
	payload, err := echo.ParseAccountData(raw)
	require.NoError(t, err)

	payload[0] = 'z'
	require.Equal(t, byte('a'), raw[echo.AuthorizedBufferHeaderSize])
}

func TestSDK_Echo_State_Malformed(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, echo.AuthorizedBufferHeaderSize - 1} {
		raw := make([]byte, n)

		_, err := echo.ParseAccountData(raw)
		require.ErrorIs(t, err, echo.ErrMalformedAccount)

		_, err = echo.DeserializeAuthorizedBuffer(raw)
		require.ErrorIs(t, err, echo.ErrMalformedAccount)

		var header echo.AuthorizedBufferHeader
		require.ErrorIs(t, header.Deserialize(raw), echo.ErrMalformedAccount)
	}
}

func TestSDK_Echo_State_HeaderOnly(t *testing.T) {
	t.Parallel()

	payload, err := echo.ParseAccountData(make([]byte, echo.AuthorizedBufferHeaderSize))
	require.NoError(t, err)
	require.Empty(t, payload)
}
