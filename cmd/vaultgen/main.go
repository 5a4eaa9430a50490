// vaultgen creates a wallet vault file from the terminal: either derived
// from a BIP-39 mnemonic (generated when none is given) or assembled from
// imported private keys. The password is read without echoing.
//
// Usage:
//
//	vaultgen -db wallet.db [-mnemonic "..."] [-evm-key 0x...] [-solana-key ...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"tradewallet/internal/keys"
	"tradewallet/internal/model"
	"tradewallet/internal/session"
	"tradewallet/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

func main() {
	dbPath := flag.String("db", "wallet.db", "path to the wallet database")
	mnemonic := flag.String("mnemonic", "", "BIP-39 phrase to derive from (empty generates a new one)")
	evmKey := flag.String("evm-key", "", "EVM private key to import instead of deriving")
	solanaKey := flag.String("solana-key", "", "Solana private key to import instead of deriving")
	flag.Parse()

	if err := run(*dbPath, *mnemonic, *evmKey, *solanaKey); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(dbPath, mnemonic, evmKey, solanaKey string) error {
	importMode := evmKey != "" || solanaKey != ""

	var v *model.DecryptedVault
	var generated string
	var err error

	if importMode {
		var evmAddr, evmNorm, solAddr, solNorm string
		if evmKey != "" {
			evmAddr, evmNorm, err = keys.ImportPrivateKey(evmKey, keys.ChainEVM)
			if err != nil {
				return err
			}
		}
		if solanaKey != "" {
			solAddr, solNorm, err = keys.ImportPrivateKey(solanaKey, keys.ChainSolana)
			if err != nil {
				return err
			}
		}
		v, err = keys.BuildVault(evmNorm, evmAddr, solNorm, solAddr)
		if err != nil {
			return err
		}
	} else {
		if mnemonic == "" {
			mnemonic, err = keys.GenerateMnemonic()
			if err != nil {
				return err
			}
			generated = mnemonic
		}
		v, err = keys.DeriveFromMnemonic(mnemonic)
		if err != nil {
			return err
		}
	}
	defer v.Wipe()

	password, err := promptPassword()
	if err != nil {
		return err
	}
	defer clear(password)

	durable, err := store.OpenBolt(dbPath)
	if err != nil {
		return err
	}
	defer durable.Close()

	sessions := session.NewManager(durable, store.NewMemoryStore(), 0, zerolog.Nop())
	defer sessions.Close()

	if err := sessions.CreateVault(context.Background(), v, password); err != nil {
		return err
	}

	if generated != "" {
		fmt.Println("Mnemonic (write it down, it will not be shown again):")
		fmt.Println(" ", generated)
	}
	if v.EVMAddress != "" {
		fmt.Println("EVM address:   ", v.EVMAddress)
	}
	if v.SolanaAddress != "" {
		fmt.Println("Solana address:", v.SolanaAddress)
	}
	return nil
}

// promptPassword reads the password twice without echoing.
func promptPassword() ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run vaultgen interactively to enter password")
	}

	fmt.Fprint(os.Stderr, "Enter vault password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(first) < 8 {
		clear(first)
		return nil, errors.New("password must be at least 8 characters")
	}

	fmt.Fprint(os.Stderr, "Repeat vault password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		clear(first)
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	defer clear(second)

	if string(first) != string(second) {
		clear(first)
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}
