package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/novahq/nova-go/internal/api"
	"github.com/novahq/nova-go/internal/config"
	"github.com/novahq/nova-go/internal/monitor"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "nova",
		Usage:   "Nova exchange/custody operator CLI",
		Version: fmt.Sprintf("%s (build: %s, commit: %s)", Version, BuildTime, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "account",
				Usage:  "show account information",
				Action: cmdAccount,
			},
			{
				Name:  "balance",
				Usage: "show the balance for one currency",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "currency",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "currency code",
					},
				},
				Action: cmdBalance,
			},
			{
				Name:   "balances",
				Usage:  "show all balances",
				Action: cmdBalances,
			},
			{
				Name:  "addresses",
				Usage: "list deposit addresses for a currency",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "currency",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "currency code",
					},
				},
				Action: cmdAddresses,
			},
			{
				Name:  "new-address",
				Usage: "provision a new deposit address",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "currency",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "currency code",
					},
					&cli.StringFlag{
						Name:  "label",
						Usage: "optional address label",
					},
				},
				Action: cmdNewAddress,
			},
			{
				Name:  "validate",
				Usage: "validate a blockchain address",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "currency",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "currency code",
					},
					&cli.StringFlag{
						Name:     "address",
						Aliases:  []string{"a"},
						Required: true,
						Usage:    "address to validate",
					},
				},
				Action: cmdValidate,
			},
			{
				Name:  "withdraw",
				Usage: "withdraw funds to an external address",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "currency",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "currency code",
					},
					&cli.StringFlag{
						Name:     "amount",
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "amount to withdraw",
					},
					&cli.StringFlag{
						Name:     "address",
						Aliases:  []string{"a"},
						Required: true,
						Usage:    "destination address",
					},
					&cli.StringFlag{
						Name:  "memo",
						Usage: "optional destination memo/tag",
					},
				},
				Action: cmdWithdraw,
			},
			{
				Name:  "transfer",
				Usage: "transfer funds to another Nova user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "currency",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "currency code",
					},
					&cli.StringFlag{
						Name:     "amount",
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "amount to transfer",
					},
					&cli.StringFlag{
						Name:     "to",
						Required: true,
						Usage:    "recipient user id",
					},
				},
				Action: cmdTransfer,
			},
			{
				Name:  "transactions",
				Usage: "list ledger transactions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "currency",
						Aliases: []string{"u"},
						Usage:   "filter by currency",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "maximum records to return",
					},
				},
				Action: cmdTransactions,
			},
			{
				Name:  "orderbook",
				Usage: "show the order book for a pair",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "pair",
						Aliases: []string{"p"},
						Value:   "BTC-EUR",
						Usage:   "currency pair",
					},
				},
				Action: cmdOrderBook,
			},
			{
				Name:  "ticker",
				Usage: "show 24h market statistics for a pair",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "pair",
						Aliases: []string{"p"},
						Value:   "BTC-EUR",
						Usage:   "currency pair",
					},
				},
				Action: cmdTicker,
			},
			{
				Name:  "order",
				Usage: "place an order",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "pair",
						Aliases: []string{"p"},
						Value:   "BTC-EUR",
						Usage:   "currency pair",
					},
					&cli.StringFlag{
						Name:    "side",
						Aliases: []string{"d"},
						Value:   "buy",
						Usage:   "order side (buy/sell)",
					},
					&cli.StringFlag{
						Name:    "type",
						Aliases: []string{"t"},
						Value:   "limit",
						Usage:   "order type (market/limit)",
					},
					&cli.StringFlag{
						Name:     "amount",
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "order amount",
					},
					&cli.StringFlag{
						Name:  "price",
						Usage: "limit price (required for limit orders)",
					},
				},
				Action: cmdPlaceOrder,
			},
			{
				Name:  "orders",
				Usage: "list open orders for a pair",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "pair",
						Aliases: []string{"p"},
						Value:   "BTC-EUR",
						Usage:   "currency pair",
					},
				},
				Action: cmdOpenOrders,
			},
			{
				Name:  "history",
				Usage: "list settled orders for a pair",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "pair",
						Aliases: []string{"p"},
						Value:   "BTC-EUR",
						Usage:   "currency pair",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 10,
						Usage: "maximum records to return",
					},
				},
				Action: cmdOrderHistory,
			},
			{
				Name:  "cancel",
				Usage: "cancel an order",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "order-id",
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "order id to cancel",
					},
				},
				Action: cmdCancel,
			},
			{
				Name:   "smoke",
				Usage:  "run an end-to-end smoke flow against the configured environment",
				Action: cmdSmoke,
			},
		},
		Before: func(c *cli.Context) error {
			configPath := c.String("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if c.String("log-level") != "" {
				cfg.Log.Level = c.String("log-level")
			}

			c.App.Metadata["config"] = cfg
			c.App.Metadata["logger"] = monitor.NewLogger(cfg.Log.Level, cfg.Log.Output)

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getClient(c *cli.Context) (*api.Client, error) {
	cfg := c.App.Metadata["config"].(*config.Config)
	logger := c.App.Metadata["logger"].(*monitor.Logger)
	return api.New(cfg, logger)
}

func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(jsonData))
}

func parseAmount(c *cli.Context, flag string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(c.String(flag))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", flag, c.String(flag), err)
	}
	return amount, nil
}

func cmdAccount(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	info, err := client.GetAccountInfo()
	if err != nil {
		return fmt.Errorf("failed to get account info: %w", err)
	}

	printJSON(info)
	return nil
}

func cmdBalance(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	balance, err := client.GetBalance(c.String("currency"))
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}

	printJSON(balance)
	return nil
}

func cmdBalances(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	balances, err := client.GetBalances()
	if err != nil {
		return fmt.Errorf("failed to get balances: %w", err)
	}

	printJSON(balances)
	return nil
}

func cmdAddresses(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	addresses, err := client.GetStaticAddresses(c.String("currency"))
	if err != nil {
		return fmt.Errorf("failed to get addresses: %w", err)
	}

	printJSON(addresses)
	return nil
}

func cmdNewAddress(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	address, err := client.CreateStaticAddress(c.String("currency"), c.String("label"))
	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	printJSON(address)
	return nil
}

func cmdValidate(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	valid, err := client.ValidateBlockchainAddress(c.String("currency"), c.String("address"))
	if err != nil {
		return fmt.Errorf("failed to validate address: %w", err)
	}

	if valid {
		fmt.Println("address is valid")
	} else {
		fmt.Println("address is NOT valid")
	}
	return nil
}

func cmdWithdraw(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	amount, err := parseAmount(c, "amount")
	if err != nil {
		return err
	}

	req := &api.WithdrawRequest{
		Currency: c.String("currency"),
		Amount:   amount,
		Address:  c.String("address"),
	}
	if memo := c.String("memo"); memo != "" {
		req.Memo = &memo
	}

	txID, err := client.Withdraw(req)
	if err != nil {
		return fmt.Errorf("failed to withdraw: %w", err)
	}

	fmt.Printf("withdrawal accepted, transaction id: %s\n", txID.ID)
	return nil
}

func cmdTransfer(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	amount, err := parseAmount(c, "amount")
	if err != nil {
		return err
	}

	txID, err := client.Transfer(&api.TransferRequest{
		Currency: c.String("currency"),
		Amount:   amount,
		ToUser:   c.String("to"),
	})
	if err != nil {
		return fmt.Errorf("failed to transfer: %w", err)
	}

	fmt.Printf("transfer accepted, transaction id: %s\n", txID.ID)
	return nil
}

func cmdTransactions(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	filter := &api.TransactionFilter{}
	if currency := c.String("currency"); currency != "" {
		filter.Currency = &currency
	}
	if limit := c.Int("limit"); limit > 0 {
		filter.Limit = &limit
	}

	txs, err := client.GetTransactions(filter)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	printJSON(txs)
	return nil
}

func cmdOrderBook(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	book, err := client.GetOrderBook(c.String("pair"))
	if err != nil {
		return fmt.Errorf("failed to get order book: %w", err)
	}

	printJSON(book)
	return nil
}

func cmdTicker(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	ticker, err := client.GetTicker(c.String("pair"))
	if err != nil {
		return fmt.Errorf("failed to get ticker: %w", err)
	}

	printJSON(ticker)
	return nil
}

func cmdPlaceOrder(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	sideStr := c.String("side")
	var side api.OrderSide
	switch sideStr {
	case "buy":
		side = api.OrderSideBuy
	case "sell":
		side = api.OrderSideSell
	default:
		return fmt.Errorf("invalid side: %s (must be buy or sell)", sideStr)
	}

	amount, err := parseAmount(c, "amount")
	if err != nil {
		return err
	}

	var order *api.ExchangeOrder
	switch c.String("type") {
	case "limit":
		if c.String("price") == "" {
			return fmt.Errorf("price is required for limit orders")
		}
		price, err := parseAmount(c, "price")
		if err != nil {
			return err
		}
		order, err = client.PlaceLimitOrder(&api.LimitOrderRequest{
			Pair:   c.String("pair"),
			Side:   side,
			Amount: amount,
			Price:  price,
		})
		if err != nil {
			return fmt.Errorf("failed to place limit order: %w", err)
		}
	case "market":
		order, err = client.PlaceMarketOrder(&api.MarketOrderRequest{
			Pair:   c.String("pair"),
			Side:   side,
			Amount: amount,
		})
		if err != nil {
			return fmt.Errorf("failed to place market order: %w", err)
		}
	default:
		return fmt.Errorf("invalid order type: %s (must be market or limit)", c.String("type"))
	}

	printJSON(order)
	return nil
}

func cmdOpenOrders(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	orders, err := client.GetOpenOrders(c.String("pair"))
	if err != nil {
		return fmt.Errorf("failed to get open orders: %w", err)
	}

	printJSON(orders)
	return nil
}

func cmdOrderHistory(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	orders, err := client.GetOrderHistory(c.String("pair"), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to get order history: %w", err)
	}

	printJSON(orders)
	return nil
}

func cmdCancel(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	cancelled, err := client.CancelOrder(c.String("order-id"))
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	if cancelled {
		fmt.Println("order cancelled")
	} else {
		fmt.Println("order was not cancelled")
	}
	return nil
}

// cmdSmoke runs the common call paths in sequence against the configured
// environment: account, ticker, limit order far from the market, open
// orders, cancel.
func cmdSmoke(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return err
	}

	pair := "BTC-EUR"

	fmt.Println("[1/5] account info")
	info, err := client.GetAccountInfo()
	if err != nil {
		return fmt.Errorf("failed to get account info: %w", err)
	}
	printJSON(info)

	fmt.Printf("[2/5] ticker %s\n", pair)
	ticker, err := client.GetTicker(pair)
	if err != nil {
		return fmt.Errorf("failed to get ticker: %w", err)
	}
	printJSON(ticker)

	// Price the order at half the last trade so it rests on the book.
	price := ticker.LastPrice.Div(decimal.NewFromInt(2)).Round(2)

	fmt.Printf("[3/5] limit buy 0.0001 %s @ %s\n", pair, price)
	order, err := client.PlaceLimitOrder(&api.LimitOrderRequest{
		Pair:   pair,
		Side:   api.OrderSideBuy,
		Amount: decimal.RequireFromString("0.0001"),
		Price:  price,
	})
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}
	printJSON(order)

	fmt.Println("[4/5] open orders")
	orders, err := client.GetOpenOrders(pair)
	if err != nil {
		return fmt.Errorf("failed to get open orders: %w", err)
	}
	printJSON(orders)

	fmt.Println("[5/5] cancel")
	cancelled, err := client.CancelOrder(order.OrderID)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	fmt.Printf("cancelled: %v\n", cancelled)

	return nil
}
