package ledger_test

import (
	"github.com/OuterCloud/family-account-book/pkg/ledger"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) seedTransactions() {
	for _, in := range []struct {
		income bool
		tc     ledger.TransactionCreate
	}{
		{false, ledger.TransactionCreate{Date: date(2023, 10, 5), Amount: decimal.NewFromInt(100), Description: "Hotpot dinner", CategoryName: "餐饮", PersonName: "Alice"}},
		{false, ledger.TransactionCreate{Date: date(2023, 10, 15), Amount: decimal.NewFromInt(50), Description: "Lunch", CategoryName: "餐饮", PersonName: "Bob"}},
		{false, ledger.TransactionCreate{Date: date(2023, 10, 20), Amount: decimal.NewFromInt(30), Description: "Metro card", CategoryName: "交通", PersonName: "Alice"}},
		{true, ledger.TransactionCreate{Date: date(2023, 10, 31), Amount: decimal.NewFromInt(8000), Description: "Salary October", PersonName: "Bob"}},
		{false, ledger.TransactionCreate{Date: date(2023, 11, 1), Amount: decimal.NewFromInt(12), Description: "Taxi", CategoryName: "交通"}},
	} {
		var err error
		if in.income {
			_, err = suite.service.CreateIncome(suite.ctx, in.tc)
		} else {
			_, err = suite.service.CreateExpense(suite.ctx, in.tc)
		}
		suite.Require().Nil(err)
	}
}

func descriptions(transactions []models.Transaction) []string {
	d := make([]string, 0, len(transactions))
	for _, t := range transactions {
		d = append(d, t.Description)
	}
	return d
}

func (suite *TestSuiteStandard) TestListTransactions() {
	suite.seedTransactions()

	tests := []struct {
		name   string
		filter ledger.TransactionFilter
		want   []string
	}{
		{"All, newest first", ledger.TransactionFilter{}, []string{"Taxi", "Salary October", "Metro card", "Lunch", "Hotpot dinner"}},
		{"Inclusive date range", ledger.TransactionFilter{From: date(2023, 10, 15), Until: date(2023, 10, 31)}, []string{"Salary October", "Metro card", "Lunch"}},
		{"Until includes whole day", ledger.TransactionFilter{Until: date(2023, 10, 5)}, []string{"Hotpot dinner"}},
		{"Type", ledger.TransactionFilter{Type: models.TransactionTypeIncome}, []string{"Salary October"}},
		{"Category", ledger.TransactionFilter{CategoryName: "餐饮"}, []string{"Lunch", "Hotpot dinner"}},
		{"Unknown category is ignored", ledger.TransactionFilter{CategoryName: "Nope", Type: models.TransactionTypeIncome}, []string{"Salary October"}},
		{"Person", ledger.TransactionFilter{PersonName: "Alice"}, []string{"Metro card", "Hotpot dinner"}},
		{"Description glob", ledger.TransactionFilter{Description: "*dinner"}, []string{"Hotpot dinner"}},
		{"Description glob with limit", ledger.TransactionFilter{Description: "*a*", Offset: 1, Limit: 2}, []string{"Salary October", "Metro card"}},
		{"Offset and limit", ledger.TransactionFilter{Offset: 1, Limit: 2}, []string{"Salary October", "Metro card"}},
		{"Offset beyond results", ledger.TransactionFilter{Description: "*", Offset: 10}, []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			transactions, err := suite.service.ListTransactions(suite.ctx, tt.filter)
			suite.Require().Nil(err)
			suite.Assert().Equal(tt.want, descriptions(transactions))
		})
	}
}

func (suite *TestSuiteStandard) TestListTransactionsDatabaseError() {
	suite.DisconnectDB()

	_, err := suite.service.ListTransactions(suite.ctx, ledger.TransactionFilter{})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
