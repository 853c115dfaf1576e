package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eshaffer321/ynab-mcp-go/internal/config"
	"github.com/eshaffer321/ynab-mcp-go/internal/store"
	"github.com/eshaffer321/ynab-mcp-go/pkg/ynab"
)

func main() {
	// A local .env file may carry YNAB_API_KEY; ignore when absent
	_ = godotenv.Load()

	// stdout belongs to the MCP stdio transport, so all logging goes to
	// stderr
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ynab-mcp",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", "error", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	client, err := ynab.NewClient(&ynab.ClientOptions{
		AccessToken: cfg.AccessToken,
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Logger:      clientLogger{logger},
		SentryDSN:   cfg.SentryDSN,
	})
	if err != nil {
		logger.Fatal("failed to initialize YNAB client", "error", err)
	}
	defer client.Close()

	prefs, err := store.NewPreferenceStore(cfg.PreferredBudgetFile())
	if err != nil {
		// A broken preference file should not keep the server from starting
		logger.Warn("failed to load preferred budget", "error", err)
	}
	cache := store.NewCategoryCache(cfg.CategoryCacheFile(), clientLogger{logger})

	impl := &mcp.Implementation{
		Name:    "ynab",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	tools := &ynabTools{
		client: client,
		prefs:  prefs,
		cache:  cache,
	}

	registerTools(server, tools)
	registerResources(server, tools)

	logger.Info("starting server", "dataDir", cfg.DataDir)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Fatal("server error", "error", err)
	}
}

func registerTools(server *mcp.Server, tools *ynabTools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_transaction",
		Description: "Create a new transaction. Amount is in dollars (negative for outflows); the category may be given by name and is resolved against the budget's categories.",
	}, tools.CreateTransaction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_account_balance",
		Description: "Get the current balance of an account in dollars.",
	}, tools.GetAccountBalance)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_budgets",
		Description: "List all budgets with their ids.",
	}, tools.GetBudgets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_accounts",
		Description: "List the open accounts in a budget, grouped by type with asset, liability and net worth totals.",
	}, tools.GetAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transactions",
		Description: "List an account's transactions since the start of the current month.",
	}, tools.GetTransactions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transactions_needing_attention",
		Description: "List transactions that are uncategorized, unapproved, or both, within a recent window.",
	}, tools.GetTransactionsNeedingAttention)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "categorize_transaction",
		Description: "Assign a category to a transaction, looked up by its id or an alternate identifier (import id, transfer or matched transaction id).",
	}, tools.CategorizeTransaction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_categories",
		Description: "List a budget's categories organized by group, with budgeted, activity and balance amounts.",
	}, tools.GetCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_preferred_budget_id",
		Description: "Set the preferred budget id used when a tool does not specify one.",
	}, tools.SetPreferredBudgetID)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cache_categories",
		Description: "Fetch a budget's categories and cache them locally for faster name lookups.",
	}, tools.CacheCategories)
}

// clientLogger adapts the charmbracelet logger to the client's Logger
// interface
type clientLogger struct {
	logger *log.Logger
}

func (l clientLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l clientLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l clientLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l clientLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}
