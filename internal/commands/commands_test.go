package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard-dev/finboard/internal/activity"
	"github.com/finboard-dev/finboard/internal/commands"
	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/storage"
)

func runFinboard(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// initProject creates a seeded project and returns its config path.
func initProject(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	args := append([]string{"init", dir, "--name", "Test Biz", "--config", cfgPath}, extra...)
	_, err := runFinboard(t, args...)
	require.NoError(t, err)
	return cfgPath
}

func loadLedger(t *testing.T, cfgPath string) []model.Transaction {
	t.Helper()
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.ResolvePaths(filepath.Dir(cfgPath))
	repo, err := storage.Open(cfg.Storage)
	require.NoError(t, err)
	defer repo.Close()
	txns, err := repo.Load(context.Background())
	require.NoError(t, err)
	return txns
}

func loadActivity(t *testing.T, cfgPath string) []activity.Entry {
	t.Helper()
	entries, err := activity.Read(filepath.Join(filepath.Dir(cfgPath), "activity.csv"))
	require.NoError(t, err)
	return entries
}

func TestInit_CreatesProject(t *testing.T) {
	cfgPath := initProject(t)
	dir := filepath.Dir(cfgPath)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "driver: csv")
	assert.Contains(t, contents, "activity_log: activity.csv")

	_, err = os.Stat(filepath.Join(dir, "ledger.csv"))
	require.NoError(t, err)
	assert.Len(t, loadLedger(t, cfgPath), 10)
}

func TestInit_Empty(t *testing.T) {
	cfgPath := initProject(t, "--empty")
	txns := loadLedger(t, cfgPath)
	assert.NotNil(t, txns)
	assert.Empty(t, txns)

	out, err := runFinboard(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions found.")
}

func TestInit_RefusesExisting(t *testing.T) {
	cfgPath := initProject(t)
	_, err := runFinboard(t, "init", filepath.Dir(cfgPath), "--name", "Again", "--config", cfgPath)
	assert.Error(t, err)
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinboard(t, "init", dir, "--config", filepath.Join(dir, config.FileName))
	require.Error(t, err, "init without --name should fail")
}

func TestInit_SQLite(t *testing.T) {
	cfgPath := initProject(t, "--storage", "sqlite")
	_, err := os.Stat(filepath.Join(filepath.Dir(cfgPath), "ledger.db"))
	require.NoError(t, err)
	assert.Len(t, loadLedger(t, cfgPath), 10)

	_, err = runFinboard(t, "delete", "1", "--config", cfgPath)
	require.NoError(t, err)
	assert.Len(t, loadLedger(t, cfgPath), 9)
}

func TestInit_UnknownStorage(t *testing.T) {
	dir := t.TempDir()
	_, err := runFinboard(t, "init", dir, "--name", "X", "--storage", "mongo", "--config", filepath.Join(dir, config.FileName))
	assert.Error(t, err)
}

func TestList_Filters(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Salary Payment")
	assert.Contains(t, out, "Internet & Phone Bill")
	assert.NotContains(t, out, "Showing")

	out, err = runFinboard(t, "list", "--config", cfgPath, "--category", "income")
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Salary Payment")
	assert.Contains(t, out, "Freelance Project Payment")
	assert.NotContains(t, out, "Office Supplies Purchase")
	assert.Contains(t, out, "Showing 3 of 10 transactions")

	out, err = runFinboard(t, "list", "--config", cfgPath, "--account", "bank-hdfc", "--min", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "Electricity Bill Payment")
	assert.Contains(t, out, "Freelance Project Payment")
	assert.NotContains(t, out, "Internet & Phone Bill")

	_, err = runFinboard(t, "list", "--config", cfgPath, "--category", "groceries")
	assert.Error(t, err)
	_, err = runFinboard(t, "list", "--config", cfgPath, "--sort", "colour")
	assert.Error(t, err)
}

func TestList_Sort(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "list", "--config", cfgPath, "--sort", "amount", "--desc")
	require.NoError(t, err)
	salary := strings.Index(out, "Monthly Salary Payment")
	internet := strings.Index(out, "Internet & Phone Bill")
	require.True(t, salary >= 0 && internet >= 0)
	assert.Less(t, salary, internet, "largest amount first")

	out, err = runFinboard(t, "list", "--config", cfgPath, "--sort", "amount")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Internet & Phone Bill"), strings.Index(out, "Monthly Salary Payment"))
}

func TestSummary(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "summary", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "₹1,58,000.00")
	assert.Contains(t, out, "₹68,000.00")
	assert.Contains(t, out, "+₹90,000.00")

	out, err = runFinboard(t, "summary", "--config", cfgPath, "--category", "utilities")
	require.NoError(t, err)
	assert.Contains(t, out, "₹5,000.00")
	assert.Contains(t, out, "-₹5,000.00")
	assert.Contains(t, out, "Showing 2 of 10 transactions")
}

func TestAdd_SuggestsFromDescription(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "add", "--config", cfgPath,
		"-d", "Office chair", "-a", "7500", "--date", "2024-09-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "-₹7,500.00")
	assert.Contains(t, out, "Office Supplies")

	txns := loadLedger(t, cfgPath)
	require.Len(t, txns, 11)
	added := txns[0]
	assert.Equal(t, "Office chair", added.Description)
	assert.Equal(t, model.CategoryOffice, added.Category)
	assert.Equal(t, model.TypeDebit, added.Type)
	assert.Equal(t, "Petty Cash", added.Account)
	assert.Equal(t, "2024-09-15", added.DateString())

	entries := loadActivity(t, cfgPath)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionAdd, entries[0].Action)
	assert.Equal(t, []int64{added.ID}, entries[0].TransactionIDs)
}

func TestAdd_ExplicitFields(t *testing.T) {
	cfgPath := initProject(t)

	_, err := runFinboard(t, "add", "--config", cfgPath,
		"-d", "Consulting retainer", "-a", "12000.50", "--date", "2024-09-16",
		"--type", "credit", "-c", "Income", "--account", "Business Checking", "--reference", "INV-77")
	require.NoError(t, err)

	added := loadLedger(t, cfgPath)[0]
	assert.Equal(t, model.TypeCredit, added.Type)
	assert.Equal(t, model.CategoryIncome, added.Category)
	assert.Equal(t, "Business Checking", added.Account)
	assert.Equal(t, "INV-77", added.Reference)
	assert.Equal(t, "12000.5", added.Amount.String())
}

func TestAdd_Validation(t *testing.T) {
	cfgPath := initProject(t)

	tests := []struct {
		name string
		args []string
	}{
		{"negative amount", []string{"-d", "Office chair", "--amount=-5"}},
		{"no category", []string{"-d", "Misc thing", "-a", "10"}},
		{"bad date", []string{"-d", "Office chair", "-a", "10", "--date", "15/09/2024"}},
		{"bad amount", []string{"-d", "Office chair", "-a", "ten"}},
		{"blank description", []string{"-d", "   ", "-a", "10", "-c", "expense"}},
		{"bad type", []string{"-d", "Office chair", "-a", "10", "--type", "refund"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"add", "--config", cfgPath}, tt.args...)
			_, err := runFinboard(t, args...)
			assert.Error(t, err)
		})
	}
	assert.Len(t, loadLedger(t, cfgPath), 10, "failed adds change nothing")
}

func TestEdit(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "edit", "2", "--config", cfgPath, "--amount", "3000", "-c", "expense")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2")

	txns := loadLedger(t, cfgPath)
	require.Len(t, txns, 10)
	assert.Equal(t, "3000", txns[1].Amount.String())
	assert.Equal(t, model.CategoryExpense, txns[1].Category)
	assert.Equal(t, "Office Supplies Purchase", txns[1].Description)

	entries := loadActivity(t, cfgPath)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionEdit, entries[0].Action)
	assert.Equal(t, "amount=3000 category=expense", entries[0].Details)

	_, err = runFinboard(t, "edit", "999", "--config", cfgPath, "-d", "x")
	assert.Error(t, err)
	_, err = runFinboard(t, "edit", "2", "--config", cfgPath)
	assert.Error(t, err, "edit without fields")
}

func TestDelete(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "delete", "3", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 3")

	txns := loadLedger(t, cfgPath)
	assert.Len(t, txns, 9)
	for _, txn := range txns {
		assert.NotEqual(t, int64(3), txn.ID)
	}

	_, err = runFinboard(t, "delete", "3", "--config", cfgPath)
	assert.Error(t, err)
	_, err = runFinboard(t, "delete", "abc", "--config", cfgPath)
	assert.Error(t, err)
}

func TestBulkDelete_AllMatching(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "bulk", "delete", "--config", cfgPath, "--category", "utilities", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 transactions")

	txns := loadLedger(t, cfgPath)
	assert.Len(t, txns, 8)
	for _, txn := range txns {
		assert.NotEqual(t, model.CategoryUtilities, txn.Category)
	}

	entries := loadActivity(t, cfgPath)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionBulkDelete, entries[0].Action)
	assert.ElementsMatch(t, []int64{3, 10}, entries[0].TransactionIDs)
}

func TestBulkDelete_EmptyMatch(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "bulk", "delete", "--config", cfgPath, "--search", "no such thing", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions selected.")
	assert.Len(t, loadLedger(t, cfgPath), 10)
}

func TestBulk_DryRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "delete matching",
			args: []string{"bulk", "delete", "--category", "utilities", "--all", "--dry-run"},
			want: []string{"*", "Dry run: 2 transactions selected; nothing changed"},
		},
		{
			name: "categorize hidden id",
			args: []string{"bulk", "categorize", "travel", "--category", "utilities", "--id", "1", "--dry-run"},
			want: []string{"Dry run: 1 transactions selected (1 hidden by filters); nothing changed"},
		},
		{
			name: "edit all",
			args: []string{"bulk", "edit", "--all", "--dry-run"},
			want: []string{"Dry run: 10 transactions selected; nothing changed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := initProject(t)
			before := loadLedger(t, cfgPath)

			out, err := runFinboard(t, append(tt.args, "--config", cfgPath)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}

			after := loadLedger(t, cfgPath)
			require.Len(t, after, len(before))
			for i := range before {
				assert.Equal(t, before[i].Category, after[i].Category)
			}
			assert.Empty(t, loadActivity(t, cfgPath))
		})
	}
}

func TestFilters_RejectMalformedBounds(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
	}{
		{"bulk delete min", []string{"bulk", "delete", "--all", "--min", "5O000"}, "--min"},
		{"bulk categorize max", []string{"bulk", "categorize", "travel", "--all", "--max", "ten"}, "--max"},
		{"list from", []string{"list", "--from", "2024-13-40"}, "--from"},
		{"export to", []string{"export", "--to", "31/01/2024"}, "--to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := initProject(t)

			_, err := runFinboard(t, append(tt.args, "--config", cfgPath)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.flag)
			assert.Len(t, loadLedger(t, cfgPath), 10)
			assert.Empty(t, loadActivity(t, cfgPath))
		})
	}
}

func TestBulk_RequiresSelection(t *testing.T) {
	cfgPath := initProject(t)

	_, err := runFinboard(t, "bulk", "delete", "--config", cfgPath)
	assert.Error(t, err)
	_, err = runFinboard(t, "bulk", "delete", "--config", cfgPath, "--id", "999")
	assert.Error(t, err)
	assert.Len(t, loadLedger(t, cfgPath), 10)
}

func TestBulkCategorize(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "bulk", "categorize", "Travel", "--config", cfgPath, "--id", "5", "--id", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Categorized 2 transactions as Travel")

	for _, txn := range loadLedger(t, cfgPath) {
		if txn.ID == 5 || txn.ID == 6 {
			assert.Equal(t, model.CategoryTravel, txn.Category)
		}
	}

	_, err = runFinboard(t, "bulk", "categorize", "groceries", "--config", cfgPath, "--all")
	assert.Error(t, err)
}

func TestBulkEdit_ChangesNothing(t *testing.T) {
	cfgPath := initProject(t)
	before := loadLedger(t, cfgPath)

	out, err := runFinboard(t, "bulk", "edit", "--config", cfgPath, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Bulk edit requested for 10 transactions")

	after := loadLedger(t, cfgPath)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Category, after[i].Category)
		assert.True(t, before[i].Amount.Equal(after[i].Amount))
	}

	entries := loadActivity(t, cfgPath)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionBulkEdit, entries[0].Action)
	assert.Len(t, entries[0].TransactionIDs, 10)
}

func TestImport_Chase(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "import", "../../testdata/chase_checking.csv", "--config", cfgPath,
		"--format", "chase", "--account", "bank-hdfc")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 6 transactions")

	txns := loadLedger(t, cfgPath)
	require.Len(t, txns, 16)
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", txns[0].Description)
	assert.Equal(t, "HDFC Savings Account", txns[0].Account)
	assert.Equal(t, model.TypeDebit, txns[0].Type)
	assert.Equal(t, "GOOGLE ADS MARKETING", txns[5].Description)
	assert.Equal(t, model.CategoryMarketing, txns[5].Category)
	assert.Equal(t, "Monthly Salary Payment", txns[6].Description)

	entries := loadActivity(t, cfgPath)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionImport, entries[0].Action)
	assert.Equal(t, "chase_checking.csv", entries[0].Details)
	assert.Len(t, entries[0].TransactionIDs, 6)
}

func TestImport_Errors(t *testing.T) {
	cfgPath := initProject(t)

	_, err := runFinboard(t, "import", "../../testdata/chase_checking.csv", "--config", cfgPath, "--format", "ofx")
	assert.Error(t, err)
	_, err = runFinboard(t, "import", "../../testdata/chase_checking.csv", "--config", cfgPath, "--format", "finboard")
	assert.Error(t, err, "chase file is not a finboard ledger")
	assert.Len(t, loadLedger(t, cfgPath), 10)
}

func TestImport_SuggestedAccountStoredAsLabel(t *testing.T) {
	cfgPath := initProject(t)
	csvPath := filepath.Join(t.TempDir(), "salary.csv")
	data := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n" +
		"CREDIT,01/31/2025,MONTHLY SALARY,85000.00,ACH_CREDIT,100000.00,\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))

	_, err := runFinboard(t, "import", csvPath, "--config", cfgPath)
	require.NoError(t, err)

	txns := loadLedger(t, cfgPath)
	require.Len(t, txns, 11)
	assert.Equal(t, "MONTHLY SALARY", txns[0].Description)
	assert.Equal(t, "SBI Current Account", txns[0].Account)

	out, err := runFinboard(t, "list", "--config", cfgPath, "--account", "bank-sbi", "--search", "MONTHLY SALARY")
	require.NoError(t, err)
	assert.Contains(t, out, "MONTHLY SALARY")
}

func TestExportImport_KeepsCategories(t *testing.T) {
	cfgPath := initProject(t)
	outPath := filepath.Join(t.TempDir(), "office.csv")

	_, err := runFinboard(t, "bulk", "categorize", "marketing", "--config", cfgPath, "--id", "2")
	require.NoError(t, err)
	_, err = runFinboard(t, "export", "--config", cfgPath, "--search", "Office Supplies Purchase", "--out", outPath)
	require.NoError(t, err)

	_, err = runFinboard(t, "import", outPath, "--config", cfgPath, "--format", "finboard")
	require.NoError(t, err)

	txns := loadLedger(t, cfgPath)
	require.Len(t, txns, 11)
	assert.Equal(t, "Office Supplies Purchase", txns[0].Description)
	assert.Equal(t, model.CategoryMarketing, txns[0].Category, "exported category survives import")
}

func TestExportImport_RoundTrip(t *testing.T) {
	cfgPath := initProject(t)
	outPath := filepath.Join(t.TempDir(), "income.csv")

	out, err := runFinboard(t, "export", "--config", cfgPath, "--category", "income", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 transactions")

	f, err := os.Open(outPath)
	require.NoError(t, err)
	exported, err := storage.ReadTransactions(f)
	f.Close()
	require.NoError(t, err)
	require.Len(t, exported, 3)
	for _, txn := range exported {
		assert.Equal(t, model.CategoryIncome, txn.Category)
	}

	_, err = runFinboard(t, "import", outPath, "--config", cfgPath, "--format", "finboard", "--suggest=false")
	require.NoError(t, err)
	txns := loadLedger(t, cfgPath)
	require.Len(t, txns, 13)
	assert.Equal(t, "Monthly Salary Payment", txns[0].Description)
	assert.NotEqual(t, int64(1), txns[0].ID, "imported rows get fresh IDs")
}

func TestExport_Stdout(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "export", "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, storage.Header+"\n"))
	txns, err := storage.ReadTransactions(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, txns, 10)
}

func TestSuggest(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "suggest", "Electricity", "bill", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Utilities")
	assert.Contains(t, out, "HDFC Savings Account")
	assert.Contains(t, out, "debit")

	out, err = runFinboard(t, "suggest", "xyz", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No suggestion.")
}

func TestAccounts(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "accounts", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "bank-sbi")
	assert.Contains(t, out, "SBI Current Account")
}

func TestActivity(t *testing.T) {
	cfgPath := initProject(t)

	out, err := runFinboard(t, "activity", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No activity recorded.")

	_, err = runFinboard(t, "delete", "4", "--config", cfgPath)
	require.NoError(t, err)

	out, err = runFinboard(t, "activity", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "delete")
}

func TestMemoryStorage_WithoutConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)

	out, err := runFinboard(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Salary Payment")

	_, err = runFinboard(t, "delete", "1", "--config", cfgPath)
	require.NoError(t, err)

	out, err = runFinboard(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Salary Payment", "memory storage does not persist")
}

func TestEnvOverridesStorage(t *testing.T) {
	cfgPath := initProject(t)
	dir := filepath.Dir(cfgPath)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("FINBOARD_STORAGE_DRIVER=memory\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(config.EnvStorageDriver) })

	_, err := runFinboard(t, "delete", "1", "--config", cfgPath)
	require.NoError(t, err)
	assert.Len(t, loadLedger(t, cfgPath), 10, "csv ledger untouched while env selects memory")
}

func TestBadLogLevel(t *testing.T) {
	cfgPath := initProject(t)
	_, err := runFinboard(t, "list", "--config", cfgPath, "--log-level", "loud")
	assert.Error(t, err)
}
