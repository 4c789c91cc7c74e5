// Package sign provides the cryptographic signing interfaces consumed by the
// transaction builder.
//
// The primary interfaces are:
//
//   - Signer: core interface for signing sign bytes
//   - PublicKey: interface for public key operations
//   - Address: interface for account addresses
//
// The interfaces never expose private key material, so implementations can
// back onto in-process keys, hardware security modules, or remote signing
// services interchangeably. Ed25519Signer is the in-process implementation;
// MockSigner supports tests.
//
// Usage
//
//	signer, err := sign.NewEd25519SignerFromHex(privateKeyHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signature, err := signer.Sign(ctx, signBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	address := signer.PublicKey().Address()
//	fmt.Println("Address:", address.String())
package sign
