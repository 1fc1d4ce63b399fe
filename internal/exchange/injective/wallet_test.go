package injective

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Standard BIP-39 test vector phrase; controls no funds.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

const testPrivKey = "af9b48c60663fca0e01e0a46b2743bb76e0871ab97b1c852a8dea4fb1f47f47b"

func TestIsHexPrivateKey(t *testing.T) {
	assert.True(t, isHexPrivateKey(testPrivKey))
	assert.True(t, isHexPrivateKey("0x"+testPrivKey))
	assert.False(t, isHexPrivateKey(testPrivKey[:63]), "63 hex chars is not a key")
	assert.False(t, isHexPrivateKey(strings.Repeat("z", 64)), "non-hex characters")
	assert.False(t, isHexPrivateKey(testMnemonic))
	assert.False(t, isHexPrivateKey(""))
}

func TestWalletFromMnemonic(t *testing.T) {
	w, err := newWallet(testMnemonic)
	require.NoError(t, err)

	addr := w.address.String()
	assert.True(t, strings.HasPrefix(addr, "inj1"), "got %q", addr)
	require.NotNil(t, w.keyring)

	// Derivation is deterministic.
	again, err := newWallet(testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, addr, again.address.String())
}

func TestWalletFromInvalidMnemonic(t *testing.T) {
	_, err := newWallet("definitely not a valid recovery phrase")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "definitely not a valid recovery phrase",
		"the credential must never surface in error messages")
}

func TestWalletFromPrivateKey(t *testing.T) {
	w, err := newWallet(testPrivKey)
	require.NoError(t, err)

	addr := w.address.String()
	assert.True(t, strings.HasPrefix(addr, "inj1"), "got %q", addr)

	// The 0x prefix is tolerated and yields the same wallet.
	prefixed, err := newWallet("0x" + testPrivKey)
	require.NoError(t, err)
	assert.Equal(t, addr, prefixed.address.String())
}

func TestAddressFromPrivateKeyRejectsGarbage(t *testing.T) {
	_, err := addressFromPrivateKey(strings.Repeat("0", 64))
	require.Error(t, err)
}
