// Command poktsend signs and broadcasts a token transfer from the command
// line. It is the smallest useful wiring of the SDK: one signer, one node,
// one transaction.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/poktfn/pocket-go/pkg/builder"
	"github.com/poktfn/pocket-go/pkg/codec"
	"github.com/poktfn/pocket-go/pkg/log"
	"github.com/poktfn/pocket-go/pkg/provider"
	"github.com/poktfn/pocket-go/pkg/sign"
	"github.com/poktfn/pocket-go/pkg/transaction"
)

func main() {
	var (
		toAddress = flag.String("to", "", "destination address (40-char hex)")
		amount    = flag.String("amount", "", "amount in upokt")
		memo      = flag.String("memo", "", "optional transaction memo")
		fee       = flag.String("fee", "", "fee in upokt (default "+builder.DefaultFee+")")
		timeout   = flag.Duration("timeout", 30*time.Second, "broadcast timeout")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger("poktsend", os.Getenv("POKTSEND_LOG_LEVEL"))
	if err := run(logger, *toAddress, *amount, *memo, *fee, *timeout); err != nil {
		logger.Error("send failed", "error", err)
		os.Exit(1)
	}
}

func run(logger log.Logger, toAddress, amount, memo, fee string, timeout time.Duration) error {
	config, err := LoadConfig(logger)
	if err != nil {
		return err
	}

	signer, err := sign.NewEd25519SignerFromHex(config.PrivateKeyHex)
	if err != nil {
		return err
	}
	logger.Info("signer initialized", "address", signer.PublicKey().Address().String())

	nodeProvider, err := provider.NewHTTPProvider(provider.HTTPProviderConfig{
		BaseURL: config.NodeURL,
		Logger:  logger,
		Metrics: provider.NewMetrics(),
	})
	if err != nil {
		return err
	}

	txBuilder, err := builder.NewTransactionBuilder(builder.Config{
		Signer:     signer,
		Provider:   nodeProvider,
		ChainID:    codec.ChainID(config.ChainID),
		ChainTable: config.chainTable,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	msg, err := transaction.NewSend("", toAddress, amount)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := txBuilder.Submit(ctx, builder.TxOptions{Msg: msg, Fee: fee, Memo: memo})
	if err != nil {
		return err
	}
	logger.Info("transaction broadcast", "txhash", resp.TxHash, "chainID", config.ChainID)
	return nil
}
