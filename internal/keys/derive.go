// Package keys derives chain-specific keypairs from a BIP-39 mnemonic and
// validates directly imported private keys. Pure CPU: no I/O, no
// persistence, no logging.
package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"tradewallet/internal/model"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"
)

const hardened = hdkeychain.HardenedKeyStart

// Standard derivation paths: m/44'/60'/0'/0/0 for EVM chains,
// m/44'/501'/0'/0' (SLIP-0010, all hardened) for Solana.
var (
	evmPath    = []uint32{hardened + 44, hardened + 60, hardened + 0, 0, 0}
	solanaPath = []uint32{hardened + 44, hardened + 501, hardened + 0, hardened + 0}
)

// chainDeriver derives one chain family's keypair from the master seed.
type chainDeriver func(seed []byte) (privateKey, address string, err error)

// chainDerivers is the capability table, selected by ChainKind.
var chainDerivers = map[ChainKind]chainDeriver{
	ChainEVM:    deriveEVM,
	ChainSolana: deriveSolana,
}

// GenerateMnemonic returns a fresh 12-word BIP-39 phrase from 128 bits of
// entropy.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NormalizeMnemonic trims and collapses whitespace between words.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

// DeriveFromMnemonic validates the phrase against the BIP-39 wordlist and
// checksum, then derives one EVM and one Solana keypair. The result is
// deterministic: the same phrase always yields the same keys and addresses.
func DeriveFromMnemonic(mnemonic string) (*model.DecryptedVault, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, model.ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, "")
	defer clear(seed)

	evmKey, evmAddr, err := chainDerivers[ChainEVM](seed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive EVM keypair: %w", err)
	}

	solKey, solAddr, err := chainDerivers[ChainSolana](seed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Solana keypair: %w", err)
	}

	return &model.DecryptedVault{
		Mnemonic:         mnemonic,
		EVMPrivateKey:    evmKey,
		SolanaPrivateKey: solKey,
		EVMAddress:       evmAddr,
		SolanaAddress:    solAddr,
	}, nil
}

// deriveEVM walks the BIP-44 path over the secp256k1 curve and returns the
// 0x-prefixed private key and the EIP-55 checksummed address.
func deriveEVM(seed []byte) (privateKey, address string, err error) {
	// Mainnet params only select HD key version bytes; they do not affect
	// the derived scalar or the address format.
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", "", fmt.Errorf("create master key: %w", err)
	}

	child := master
	for _, index := range evmPath {
		child, err = child.Derive(index)
		if err != nil {
			return "", "", fmt.Errorf("derive index %d: %w", index, err)
		}
	}

	ecPriv, err := child.ECPrivKey()
	if err != nil {
		return "", "", fmt.Errorf("extract private key: %w", err)
	}

	ecdsaKey := ecPriv.ToECDSA()
	keyBytes := ethcrypto.FromECDSA(ecdsaKey)
	defer clear(keyBytes)

	address = ethcrypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex()
	privateKey = "0x" + hex.EncodeToString(keyBytes)
	return privateKey, address, nil
}

// deriveSolana derives the ed25519 keypair on the SLIP-0010 path and
// returns the base58 secret key and base58 public key.
func deriveSolana(seed []byte) (privateKey, address string, err error) {
	keySeed, err := deriveEd25519Seed(seed, solanaPath)
	if err != nil {
		return "", "", err
	}
	defer clear(keySeed)

	edKey := ed25519.NewKeyFromSeed(keySeed)
	solKey := solana.PrivateKey(edKey)

	return solKey.String(), solKey.PublicKey().String(), nil
}
