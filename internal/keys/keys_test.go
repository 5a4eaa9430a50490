package keys

import (
	"strings"
	"testing"

	"tradewallet/internal/model"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known BIP-39 test phrase (hardhat/foundry account zero).
const testMnemonic = "test test test test test test test test test test test junk"

func TestDeriveFromMnemonicGolden(t *testing.T) {
	v, err := DeriveFromMnemonic(testMnemonic)
	require.NoError(t, err)

	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", v.EVMAddress)
	assert.Equal(t, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", v.EVMPrivateKey)
	assert.Equal(t, testMnemonic, v.Mnemonic)
	assert.NotEmpty(t, v.SolanaAddress)
	assert.NotEmpty(t, v.SolanaPrivateKey)
}

func TestDeriveFromMnemonicDeterministic(t *testing.T) {
	first, err := DeriveFromMnemonic(testMnemonic)
	require.NoError(t, err)
	second, err := DeriveFromMnemonic(testMnemonic)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDeriveFromMnemonicNormalizesWhitespace(t *testing.T) {
	messy := "  test  test test test test test\ttest test test test test junk "
	v, err := DeriveFromMnemonic(messy)
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", v.EVMAddress)
}

func TestDeriveFromMnemonicInvalid(t *testing.T) {
	cases := []string{
		"",
		"not a mnemonic",
		"test test test test test test test test test test test test", // bad checksum
		"abandon abandon banana",
	}
	for _, mnemonic := range cases {
		_, err := DeriveFromMnemonic(mnemonic)
		assert.ErrorIs(t, err, model.ErrInvalidMnemonic, "mnemonic %q", mnemonic)
	}
}

func TestDerivedSolanaKeyIsImportable(t *testing.T) {
	v, err := DeriveFromMnemonic(testMnemonic)
	require.NoError(t, err)

	// The derived secret must round-trip through the import path and agree
	// on the address.
	addr, normalized, err := ImportSolanaKey(v.SolanaPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, v.SolanaAddress, addr)
	assert.Equal(t, v.SolanaPrivateKey, normalized)

	decoded, err := base58.Decode(v.SolanaPrivateKey)
	require.NoError(t, err)
	assert.Len(t, decoded, 64)
}

func TestGenerateMnemonic(t *testing.T) {
	first, err := GenerateMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(first), 12)

	second, err := GenerateMnemonic()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// A generated phrase must itself derive.
	_, err = DeriveFromMnemonic(first)
	require.NoError(t, err)
}

func TestImportEVMKeyGolden(t *testing.T) {
	// EIP-155 example key.
	key := "0x4646464646464646464646464646464646464646464646464646464646464646"

	addr, normalized, err := ImportEVMKey(key)
	require.NoError(t, err)
	assert.Equal(t, "0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F", addr)
	assert.Equal(t, key, normalized)
}

func TestImportEVMKeyNormalization(t *testing.T) {
	want := "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

	for _, raw := range []string{
		"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		"0xAC0974BEC39A17E36BA4A6B4D238FF944BACB478CBED5EFCAE784D7BF4F2FF80",
		"  0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80  ",
	} {
		addr, normalized, err := ImportEVMKey(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, want, normalized)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", addr)
	}
}

func TestImportEVMKeyInvalid(t *testing.T) {
	cases := []string{
		"",
		"0x1234",       // too short
		"0x" + strings.Repeat("4", 63), // one nibble short
		"0x" + strings.Repeat("4", 66), // too long
		strings.Repeat("g", 64),        // bad charset
		"0x" + strings.Repeat("0", 64), // zero scalar
	}
	for _, raw := range cases {
		_, _, err := ImportEVMKey(raw)
		assert.ErrorIs(t, err, model.ErrInvalidKeyFormat, "raw %q", raw)
	}
}

func TestImportSolanaKeyInvalid(t *testing.T) {
	cases := []string{
		"",
		"0OIl",                          // not base58
		base58.Encode([]byte("short")),  // wrong length
		base58.Encode(make([]byte, 64)), // pubkey half does not match seed half
	}
	for _, raw := range cases {
		_, _, err := ImportSolanaKey(raw)
		assert.ErrorIs(t, err, model.ErrInvalidKeyFormat, "raw %q", raw)
	}
}

func TestImportPrivateKeyDispatch(t *testing.T) {
	addr, _, err := ImportPrivateKey("0x4646464646464646464646464646464646464646464646464646464646464646", ChainEVM)
	require.NoError(t, err)
	assert.Equal(t, "0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F", addr)

	_, _, err = ImportPrivateKey("anything", ChainKind("bitcoin"))
	assert.Error(t, err)
}

func TestBuildVault(t *testing.T) {
	v, err := BuildVault("0xkey", "0xaddr", "", "")
	require.NoError(t, err)
	assert.Equal(t, "0xaddr", v.EVMAddress)
	assert.Empty(t, v.SolanaAddress)
	assert.Empty(t, v.SolanaPrivateKey)

	_, err = BuildVault("", "", "", "")
	assert.ErrorIs(t, err, model.ErrInvalidKeyFormat)
}

func TestEd25519DerivationRequiresHardenedPath(t *testing.T) {
	seed := make([]byte, 64)
	_, err := deriveEd25519Seed(seed, []uint32{44})
	assert.Error(t, err)

	key, err := deriveEd25519Seed(seed, []uint32{hardened + 44, hardened + 501})
	require.NoError(t, err)
	assert.Len(t, key, 32)
}
