package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/eshaffer321/ynab-mcp-go/internal/report"
	"github.com/eshaffer321/ynab-mcp-go/pkg/ynab"
)

// budgetsMarkdown renders a bullet list of budgets
func budgetsMarkdown(budgets []*ynab.Budget) string {
	if len(budgets) == 0 {
		return "No budgets found."
	}

	var b strings.Builder
	b.WriteString("# Budgets\n\n")
	for _, budget := range budgets {
		fmt.Fprintf(&b, "- **%s** (id: `%s`)", budget.Name, budget.ID)
		if budget.LastModifiedOn != nil {
			fmt.Fprintf(&b, ", last modified %s", budget.LastModifiedOn.Format(time.RFC3339))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// accountsMarkdown renders the grouped account summary with per-group tables
// and the asset/liability/net-worth rollup
func accountsMarkdown(summary *report.AccountSummary) (string, error) {
	var b strings.Builder
	b.WriteString("# Accounts\n")

	for _, group := range summary.Groups {
		fmt.Fprintf(&b, "\n## %s\n\n", group.Label)

		tbl := report.NewTable(
			[]string{"Account", "Balance", "ID"},
			[]report.Alignment{report.AlignLeft, report.AlignRight, report.AlignLeft},
		)
		for _, account := range group.Accounts {
			if err := tbl.AddRow(account.Name, account.Balance, account.ID); err != nil {
				return "", err
			}
		}
		b.WriteString(tbl.Render())
		fmt.Fprintf(&b, "\n\nTotal: %s\n", group.Total)
	}

	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- Total assets: %s\n", summary.Summary.TotalAssets)
	fmt.Fprintf(&b, "- Total liabilities: %s\n", summary.Summary.TotalLiabilities)
	fmt.Fprintf(&b, "- Net worth: %s\n", summary.Summary.NetWorth)

	return b.String(), nil
}

// transactionsMarkdown renders a transaction table
func transactionsMarkdown(transactions []*ynab.Transaction) (string, error) {
	tbl := report.NewTable(
		[]string{"Date", "Payee", "Category", "Amount", "Memo"},
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignLeft},
	)

	for _, tx := range transactions {
		if tx.Deleted {
			continue
		}
		category := tx.CategoryName
		if tx.CategoryID == nil {
			category = "(none)"
		}
		if err := tbl.AddRow(tx.Date.String(), tx.PayeeName, category, report.FormatMilliunits(tx.Amount), tx.Memo); err != nil {
			return "", err
		}
	}

	return tbl.Render(), nil
}

// attentionMarkdown renders the needing-attention table, including the ids
// needed to categorize or approve afterwards
func attentionMarkdown(transactions []*ynab.Transaction) (string, error) {
	tbl := report.NewTable(
		[]string{"Date", "Payee", "Amount", "Category", "Approved", "ID"},
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignLeft, report.AlignLeft, report.AlignLeft},
	)

	for _, tx := range transactions {
		category := tx.CategoryName
		if tx.CategoryID == nil {
			category = "(none)"
		}
		approved := "no"
		if tx.Approved {
			approved = "yes"
		}
		if err := tbl.AddRow(tx.Date.String(), tx.PayeeName, report.FormatMilliunits(tx.Amount), category, approved, tx.ID); err != nil {
			return "", err
		}
	}

	return tbl.Render(), nil
}

// categoriesMarkdown renders one table per visible category group and returns
// the number of categories listed
func categoriesMarkdown(groups []*ynab.CategoryGroup) (string, int, error) {
	var b strings.Builder
	b.WriteString("# Categories\n")

	count := 0
	for _, group := range groups {
		if group.Hidden || group.Deleted {
			continue
		}

		tbl := report.NewTable(
			[]string{"Category", "Budgeted", "Activity", "Balance", "ID"},
			[]report.Alignment{report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignRight, report.AlignLeft},
		)

		visible := 0
		for _, category := range group.Categories {
			if category.Hidden || category.Deleted {
				continue
			}
			if err := tbl.AddRow(
				category.Name,
				report.FormatMilliunits(category.Budgeted),
				report.FormatMilliunits(category.Activity),
				report.FormatMilliunits(category.Balance),
				category.ID,
			); err != nil {
				return "", 0, err
			}
			visible++
		}
		if visible == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n\n", group.Name)
		b.WriteString(tbl.Render())
		b.WriteString("\n")
		count += visible
	}

	if count == 0 {
		return "No categories found.", 0, nil
	}

	return b.String(), count, nil
}
