package tx

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenID = "aa55aa55aa55aa55aa55aa55aa55aa55aa55aa55aa55aa55aa55aa55aa55aa55"

func TestBuildSendData(t *testing.T) {
	pushes, err := BuildSendData(testTokenID, []uint64{150000000, 50000000})
	require.NoError(t, err)
	require.Len(t, pushes, 6)

	assert.Equal(t, LokadIDBytes, pushes[0])
	assert.Equal(t, []byte{0x01}, pushes[1])
	assert.Equal(t, SendActionBytes, pushes[2])
	assert.Len(t, pushes[3], TokenIDLen)
	assert.Equal(t, uint64(150000000), binary.BigEndian.Uint64(pushes[4]))
	assert.Equal(t, uint64(50000000), binary.BigEndian.Uint64(pushes[5]))
}

func TestBuildSendData_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		tokenID    string
		quantities []uint64
		wantErr    error
	}{
		{"bad hex", "zznothex", []uint64{1}, ErrInvalidTokenID},
		{"short id", "aa55", []uint64{1}, ErrInvalidTokenID},
		{"no quantities", testTokenID, nil, ErrInvalidQuantities},
		{"too many quantities", testTokenID, make([]uint64, MaxSendQuantities+1), ErrInvalidQuantities},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSendData(tc.tokenID, tc.quantities)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBuildSendScript(t *testing.T) {
	s, err := BuildSendScript(testTokenID, []uint64{42})
	require.NoError(t, err)
	require.NotNil(t, s)

	// Must start with OP_RETURN so the output is provably unspendable.
	assert.Equal(t, byte(0x6a), []byte(*s)[0])

	// Size matches the fee model: MetadataPayloadSize minus the output
	// framing (value 8 bytes + script length 1 byte).
	assert.Equal(t, int(MetadataPayloadSize(1))-9, len(*s))
}

func TestSendDataRoundTrip(t *testing.T) {
	quantities := []uint64{150000000, 50000000}

	pushes, err := BuildSendData(testTokenID, quantities)
	require.NoError(t, err)

	gotID, gotQuantities, err := ParseSendData(pushes)
	require.NoError(t, err)
	assert.Equal(t, testTokenID, gotID)
	assert.Equal(t, quantities, gotQuantities)
}

func TestParseSendData_Rejects(t *testing.T) {
	good, err := BuildSendData(testTokenID, []uint64{1})
	require.NoError(t, err)

	t.Run("too few pushes", func(t *testing.T) {
		_, _, err := ParseSendData(good[:4])
		assert.ErrorIs(t, err, ErrInvalidOPReturn)
	})

	t.Run("wrong flag", func(t *testing.T) {
		pushes := clonePushes(good)
		pushes[0] = []byte("nope")
		_, _, err := ParseSendData(pushes)
		assert.ErrorIs(t, err, ErrNotTokenSend)
	})

	t.Run("wrong action", func(t *testing.T) {
		pushes := clonePushes(good)
		pushes[2] = []byte("MINT")
		_, _, err := ParseSendData(pushes)
		assert.ErrorIs(t, err, ErrNotTokenSend)
	})

	t.Run("short quantity", func(t *testing.T) {
		pushes := clonePushes(good)
		pushes[4] = []byte{0x01, 0x02}
		_, _, err := ParseSendData(pushes)
		assert.ErrorIs(t, err, ErrInvalidOPReturn)
	})
}

func clonePushes(pushes [][]byte) [][]byte {
	out := make([][]byte, len(pushes))
	for i, p := range pushes {
		out[i] = append([]byte{}, p...)
	}
	return out
}

func TestTokenIDCase(t *testing.T) {
	// Parse always returns lowercase hex regardless of input casing.
	upper := strings.ToUpper(testTokenID)
	pushes, err := BuildSendData(upper, []uint64{1})
	require.NoError(t, err)

	gotID, _, err := ParseSendData(pushes)
	require.NoError(t, err)
	assert.Equal(t, testTokenID, gotID)
}
