package injective

import (
	"encoding/hex"
	"strings"

	cryptohd "github.com/InjectiveLabs/sdk-go/chain/crypto/hd"
	chainclient "github.com/InjectiveLabs/sdk-go/client/chain"
	"github.com/btcsuite/btcutil/bech32"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/souravmenon1999/injective-bridge/internal/types"
)

// Injective derives accounts on the Ethereum coin type.
const ethHDPath = "m/44'/60'/0'/0/0"

// wallet binds a sender address to the keyring that signs for it. The
// credential itself is never stored and never logged.
type wallet struct {
	address sdk.AccAddress
	keyring keyring.Keyring
}

// newWallet builds a signing wallet from the credential. A 64-char hex
// string is treated as a raw private key, anything else as a BIP-39
// recovery phrase.
func newWallet(credential string) (*wallet, error) {
	if isHexPrivateKey(credential) {
		return walletFromPrivateKey(strings.TrimPrefix(credential, "0x"))
	}
	return walletFromMnemonic(credential)
}

func isHexPrivateKey(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func walletFromMnemonic(mnemonic string) (*wallet, error) {
	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	kr, err := keyring.New("injective", keyring.BackendMemory, "", nil, cdc, cryptohd.EthSecp256k1Option())
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to create keyring",
			Wrapped: err,
		}
	}

	record, err := kr.NewAccount("bridge", mnemonic, "", ethHDPath, cryptohd.EthSecp256k1)
	if err != nil {
		// The wrapped error may describe the phrase's shape but never its
		// content; the phrase itself stays out of the message.
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to derive wallet from recovery phrase",
			Wrapped: err,
		}
	}

	addr, err := record.GetAddress()
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to read wallet address",
			Wrapped: err,
		}
	}

	return &wallet{address: addr, keyring: kr}, nil
}

func walletFromPrivateKey(privKeyHex string) (*wallet, error) {
	derived, err := addressFromPrivateKey(privKeyHex)
	if err != nil {
		return nil, err
	}

	senderAddress, cosmosKeyring, err := chainclient.InitCosmosKeyring(
		"",          // keyringDir
		"injective", // appName
		"memory",    // backend
		"default",   // keyName
		"",          // passphrase
		privKeyHex,  // private key
		false,       // useLedger
	)
	if err != nil {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to init keyring from private key",
			Wrapped: err,
		}
	}

	// The keyring must control the address the key derives to.
	if senderAddress.String() != derived {
		return nil, types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Keyring address does not match the private key",
		}
	}

	return &wallet{address: senderAddress, keyring: cosmosKeyring}, nil
}

// addressFromPrivateKey derives the bech32 inj address the key controls.
func addressFromPrivateKey(privKeyHex string) (string, error) {
	privKey, err := crypto.HexToECDSA(privKeyHex)
	if err != nil {
		return "", types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to parse private key",
			Wrapped: err,
		}
	}

	addrBytes := crypto.PubkeyToAddress(privKey.PublicKey).Bytes()
	converted, err := bech32.ConvertBits(addrBytes, 8, 5, true)
	if err != nil {
		return "", types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to convert address bytes for Bech32 encoding",
			Wrapped: err,
		}
	}

	addr, err := bech32.Encode("inj", converted)
	if err != nil {
		return "", types.BridgeError{
			Code:    types.ErrConnectionFailed,
			Message: "Failed to encode Bech32 address",
			Wrapped: err,
		}
	}
	return addr, nil
}
