package report

import (
	"sort"

	"github.com/eshaffer321/ynab-mcp-go/pkg/ynab"
)

// typeOrder is the fixed display order for account groups. Accounts whose
// type is not listed here are excluded from the summary.
var typeOrder = []string{
	ynab.AccountTypeChecking,
	ynab.AccountTypeSavings,
	ynab.AccountTypeCreditCard,
	ynab.AccountTypeMortgage,
	ynab.AccountTypeAutoLoan,
	ynab.AccountTypeStudentLoan,
	ynab.AccountTypeOtherAsset,
	ynab.AccountTypeOtherLiability,
}

// typeLabels maps account types to human-readable group headings
var typeLabels = map[string]string{
	ynab.AccountTypeChecking:       "Checking Accounts",
	ynab.AccountTypeSavings:        "Savings Accounts",
	ynab.AccountTypeCreditCard:     "Credit Cards",
	ynab.AccountTypeMortgage:       "Mortgages",
	ynab.AccountTypeAutoLoan:       "Auto Loans",
	ynab.AccountTypeStudentLoan:    "Student Loans",
	ynab.AccountTypeOtherAsset:     "Other Assets",
	ynab.AccountTypeOtherLiability: "Other Liabilities",
}

// assetTypes contribute their signed balance to total assets; every other
// listed type contributes its absolute balance to total liabilities.
var assetTypes = map[string]bool{
	ynab.AccountTypeChecking:   true,
	ynab.AccountTypeSavings:    true,
	ynab.AccountTypeOtherAsset: true,
}

// GroupedAccount is one account row inside a group
type GroupedAccount struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Balance    string  `json:"balance"`
	BalanceRaw float64 `json:"balance_raw"`
}

// AccountGroup is an ordered bucket of accounts of one type
type AccountGroup struct {
	Type     string           `json:"type"`
	Label    string           `json:"label"`
	Accounts []GroupedAccount `json:"accounts"`
	Total    string           `json:"total"`
	TotalRaw float64          `json:"total_raw"`
}

// SummaryTotals rolls up assets, liabilities and net worth
type SummaryTotals struct {
	TotalAssets         string  `json:"total_assets"`
	TotalLiabilities    string  `json:"total_liabilities"`
	NetWorth            string  `json:"net_worth"`
	TotalAssetsRaw      float64 `json:"total_assets_raw"`
	TotalLiabilitiesRaw float64 `json:"total_liabilities_raw"`
	NetWorthRaw         float64 `json:"net_worth_raw"`
}

// AccountSummary is the grouped-and-ordered output of Summarize
type AccountSummary struct {
	Groups  []*AccountGroup `json:"accounts"`
	Summary SummaryTotals   `json:"summary"`
}

// Summarize partitions accounts into ordered type buckets, dropping closed
// and deleted accounts, sorting each bucket by descending absolute balance
// (stable, so balance ties keep the API's order), and rolling up totals.
func Summarize(accounts []*ynab.Account) *AccountSummary {
	buckets := make(map[string][]*ynab.Account)
	for _, account := range accounts {
		if account.Closed || account.Deleted {
			continue
		}
		buckets[account.Type] = append(buckets[account.Type], account)
	}

	summary := &AccountSummary{}

	var totalAssets, totalLiabilities float64
	for _, acctType := range typeOrder {
		bucket := buckets[acctType]
		if len(bucket) == 0 {
			continue
		}

		sort.SliceStable(bucket, func(i, j int) bool {
			bi := FromMilliunits(bucket[i].Balance)
			bj := FromMilliunits(bucket[j].Balance)
			return abs(bi) > abs(bj)
		})

		group := &AccountGroup{
			Type:  acctType,
			Label: typeLabels[acctType],
		}

		for _, account := range bucket {
			balance := FromMilliunits(account.Balance)
			group.Accounts = append(group.Accounts, GroupedAccount{
				ID:         account.ID,
				Name:       account.Name,
				Balance:    FormatAmount(balance),
				BalanceRaw: balance,
			})
			group.TotalRaw += balance
		}
		group.Total = FormatAmount(group.TotalRaw)

		if assetTypes[acctType] {
			totalAssets += group.TotalRaw
		} else {
			totalLiabilities += abs(group.TotalRaw)
		}

		summary.Groups = append(summary.Groups, group)
	}

	netWorth := totalAssets - totalLiabilities
	summary.Summary = SummaryTotals{
		TotalAssets:         FormatAmount(totalAssets),
		TotalLiabilities:    FormatAmount(totalLiabilities),
		NetWorth:            FormatAmount(netWorth),
		TotalAssetsRaw:      totalAssets,
		TotalLiabilitiesRaw: totalLiabilities,
		NetWorthRaw:         netWorth,
	}

	return summary
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
