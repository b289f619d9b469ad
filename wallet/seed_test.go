package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMnemonic(t *testing.T) {
	m12, err := GenerateMnemonic(Mnemonic12Words)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(m12), 12)

	m24, err := GenerateMnemonic(Mnemonic24Words)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(m24), 24)

	_, err = GenerateMnemonic(160)
	assert.ErrorIs(t, err, ErrInvalidEntropy)
}

func TestSeedFromMnemonic(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)
	assert.Len(t, seed, 64)

	// A passphrase changes the derived seed.
	other, err := SeedFromMnemonic(testMnemonic, "hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, seed, other)

	_, err = SeedFromMnemonic("definitely not a mnemonic", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestSeedEncryptionRoundTrip(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	encrypted, err := EncryptSeed(seed, "correct horse")
	require.NoError(t, err)
	assert.NotContains(t, string(encrypted), string(seed))

	decrypted, err := DecryptSeed(encrypted, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, seed, decrypted)
}

func TestDecryptSeed_WrongPassword(t *testing.T) {
	seed, err := SeedFromMnemonic(testMnemonic, "")
	require.NoError(t, err)

	encrypted, err := EncryptSeed(seed, "right")
	require.NoError(t, err)

	_, err = DecryptSeed(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptSeed_Truncated(t *testing.T) {
	_, err := DecryptSeed([]byte{0x01, 0x02}, "pw")
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptSeed_EmptySeed(t *testing.T) {
	_, err := EncryptSeed(nil, "pw")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}
