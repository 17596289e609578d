// Command storefront is a terminal rendition of the customer experience:
// it logs in against the mock credential table, restores persisted state,
// and drives the cart/checkout flow against a running marketplace API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"simplemarket/internal/apiclient"
	"simplemarket/internal/cart"
	"simplemarket/internal/checkout"
	"simplemarket/internal/config"
	"simplemarket/internal/localstore"
	"simplemarket/internal/logger"
	"simplemarket/internal/session"
	"simplemarket/internal/storefront"
	"simplemarket/internal/view"

	"go.uber.org/zap"
)

func main() {
	username := flag.String("user", "", "username (prompts when omitted)")
	password := flag.String("pass", "", "password (prompts when omitted)")
	remember := flag.Bool("remember", false, "persist the session across restarts")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = "."
	}
	persistent, err := localstore.OpenFileStore(filepath.Join(stateDir, "simplemarket.json"))
	if err != nil {
		logger.L().Fatal("failed to open state file", zap.Error(err))
	}
	ephemeral := localstore.NewMemStore()

	gate := session.NewGate(session.NewMockAuthenticator(), persistent, ephemeral, cfg.JWTSecret)

	ctx := context.Background()
	stdin := bufio.NewScanner(os.Stdin)

	if s, ok := gate.CheckExistingSession(); ok {
		fmt.Printf("Welcome back, %s!\n", s.DisplayName)
	} else if err := login(ctx, gate, stdin, *username, *password, *remember); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	api := apiclient.New(cfg.APIBaseURL, apiclient.WithTokenSource(gate.Token))
	basket := cart.New(persistent)
	app := storefront.NewApp(gate, api, basket, persistent, os.Stdout)

	if err := app.Init(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	repl(ctx, app, gate, api, stdin)
}

func login(ctx context.Context, gate *session.Gate, stdin *bufio.Scanner, username, password string, remember bool) error {
	for {
		if username == "" {
			fmt.Print("Username: ")
			if !stdin.Scan() {
				return fmt.Errorf("no input")
			}
			username = strings.TrimSpace(stdin.Text())
		}
		if password == "" {
			fmt.Print("Password: ")
			if !stdin.Scan() {
				return fmt.Errorf("no input")
			}
			password = strings.TrimSpace(stdin.Text())
		}

		s, err := gate.Login(ctx, username, password, remember)
		if err == nil {
			fmt.Printf("Welcome, %s!\n", s.DisplayName)
			return nil
		}

		fmt.Println(err)
		// Keep the username, clear the password, as the login form does.
		password = ""
	}
}

func repl(ctx context.Context, app *storefront.App, gate *session.Gate, api *apiclient.Client, stdin *bufio.Scanner) {
	var lastResult *checkout.Result

	fmt.Println(`Commands: products, orders, cart, add <id>, remove <id>, qty <id> <n>, clear, buyer <name> / <address>, checkout, retry, revenue, theme, logout, quit`)

	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			return
		}

		fields := strings.Fields(stdin.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "products":
			if err := app.RefreshProducts(ctx); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(view.ProductList(app.Products()))

		case "orders":
			if err := app.RefreshOrders(ctx); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(view.OrderList(app.Orders()))

		case "cart":
			// Init and the mutation handlers already render; just nudge.
			fmt.Println("cart shown above after each change; use add/remove/qty")

		case "add":
			if len(fields) < 2 {
				fmt.Println("usage: add <product-id>")
				continue
			}
			if err := app.AddToCart(fields[1]); err != nil {
				fmt.Println(err)
			}

		case "remove":
			if len(fields) < 2 {
				fmt.Println("usage: remove <product-id>")
				continue
			}
			if err := app.RemoveFromCart(fields[1]); err != nil {
				fmt.Println(err)
			}

		case "qty":
			if len(fields) < 3 {
				fmt.Println("usage: qty <product-id> <quantity>")
				continue
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Println("quantity must be a number")
				continue
			}
			if err := app.SetCartQuantity(fields[1], n); err != nil {
				fmt.Println(err)
			}

		case "buyer":
			parts := strings.SplitN(strings.Join(fields[1:], " "), "/", 2)
			name := strings.TrimSpace(parts[0])
			address := ""
			if len(parts) > 1 {
				address = strings.TrimSpace(parts[1])
			}
			if err := app.SetBuyerInfo(name, address); err != nil {
				fmt.Println(err)
			}

		case "checkout":
			result, err := app.Checkout(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			lastResult = result
			fmt.Printf("checkout: %d succeeded, %d failed\n", result.Succeeded, result.Failed)
			for _, lr := range result.Lines {
				if lr.Err != nil {
					fmt.Printf("  failed: %s - %v\n", lr.Line.Name, lr.Err)
				}
			}

		case "retry":
			if lastResult == nil || lastResult.AllSucceeded() {
				fmt.Println("nothing to retry")
				continue
			}
			result, err := app.RetryFailedLines(ctx, lastResult)
			if err != nil {
				fmt.Println(err)
				continue
			}
			lastResult = result
			fmt.Printf("retry: %d succeeded, %d failed\n", result.Succeeded, result.Failed)

		case "revenue":
			revenue, err := api.TotalRevenue(ctx)
			fmt.Println("Total revenue:", view.RevenueBadge(revenue, err))

		case "theme":
			if err := app.ToggleTheme(); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("theme:", app.Theme())

		case "logout":
			gate.Logout()
			fmt.Println("logged out")
			return

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}
