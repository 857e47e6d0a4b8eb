package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
)

func main() {
	fmt.Println("Fetching buffer from the echo program...")

	programID := solana.MustPublicKeyFromBase58("7CTniUa88iJKUHTrCkB4TjAoG6TD7AMivhQeuqN2LPtX")
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <authority-pubkey>", os.Args[0])
	}
	authority, err := solana.PublicKeyFromBase58(os.Args[1])
	if err != nil {
		log.Fatalf("invalid authority: %v", err)
	}
	rpcClient := rpc.New(rpc.LocalNet_RPC)
	client := echo.New(slog.Default(), echo.NewRPCLedger(slog.Default(), rpcClient), programID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := client.Read(ctx, authority, echo.DefaultBufferSeed)
	if err != nil {
		log.Fatalf("error while loading buffer: %v", err)
	}

	fmt.Printf("Buffer: %q\n", data)
}
