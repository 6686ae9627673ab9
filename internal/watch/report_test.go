package watch

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/wchain-tools/wco-alertbot/internal/config"
	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
)

type fakeOracle struct {
	price  *big.Rat
	supply model.SupplyInfo
}

func (o fakeOracle) Price(ctx context.Context) (*big.Rat, error) { return o.price, nil }

func (o fakeOracle) Supply(ctx context.Context) (model.SupplyInfo, error) { return o.supply, nil }

func reportConfig() config.DailyReportConfig {
	return config.DailyReportConfig{Enabled: true, Channel: "@daily", Hour: 9}
}

func TestDailyReportSendsAndSnapshots(t *testing.T) {
	ctx := context.Background()
	ex := &fakeExplorer{stats: model.NetworkStats{
		TotalTransactions: 1_500_000,
		TotalAddresses:    42_000,
		TotalBlocks:       900_000,
	}}
	oracle := fakeOracle{
		price:  big.NewRat(1, 50),
		supply: model.SupplyInfo{Circulating: format.WCOToWei(10_000_000_000)},
	}
	sender := &fakeSender{}
	st := testStore(t)

	r := NewDailyReport(reportConfig(), ex, oracle, sender, st, testLogger())
	r.Run(ctx)

	msgs := sender.messages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	text := msgs[0].Text
	for _, want := range []string{
		"W-Chain Daily Report",
		"WCO price: $0.0200",
		"Circulating supply: 10,000,000,000.00 WCO",
		"Transactions: 1,500,000",
		"Addresses: 42,000",
		"Blocks: 900,000",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	var snap reportSnapshot
	if ok, err := st.Load("daily_report", &snap); err != nil || !ok {
		t.Fatalf("snapshot load = %v, %v", ok, err)
	}
	if snap.TotalTransactions != 1_500_000 {
		t.Errorf("snapshot TotalTransactions = %d, want 1500000", snap.TotalTransactions)
	}
}

func TestDailyReportDayOverDayDeltas(t *testing.T) {
	ctx := context.Background()
	ex := &fakeExplorer{stats: model.NetworkStats{
		TotalTransactions: 1_000_000,
		TotalAddresses:    40_000,
		TotalBlocks:       800_000,
	}}
	oracle := fakeOracle{price: big.NewRat(1, 50)}
	sender := &fakeSender{}
	st := testStore(t)

	r := NewDailyReport(reportConfig(), ex, oracle, sender, st, testLogger())
	r.Run(ctx)

	ex.stats = model.NetworkStats{
		TotalTransactions: 1_012_345,
		TotalAddresses:    40_100,
		TotalBlocks:       801_000,
	}
	oracle.price = big.NewRat(1, 40) // $0.02 to $0.025, up 25%
	r2 := NewDailyReport(reportConfig(), ex, oracle, sender, st, testLogger())
	r2.Run(ctx)

	msgs := sender.messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	text := msgs[1].Text
	for _, want := range []string{
		"(+25.00%)",
		"Transactions: 1,012,345 (+12,345 today)",
		"Addresses: 40,100 (+100 today)",
		"Blocks: 801,000 (+1,000 today)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}

func TestDailyReportDisabled(t *testing.T) {
	sender := &fakeSender{}
	r := NewDailyReport(config.DailyReportConfig{Enabled: false}, &fakeExplorer{}, nil, sender, testStore(t), testLogger())
	r.Run(context.Background())

	if got := len(sender.messages()); got != 0 {
		t.Errorf("messages = %d, want 0", got)
	}
}

func TestDailyReportSurvivesMissingOracle(t *testing.T) {
	ctx := context.Background()
	ex := &fakeExplorer{stats: model.NetworkStats{TotalTransactions: 10}}
	sender := &fakeSender{}

	r := NewDailyReport(reportConfig(), ex, nil, sender, testStore(t), testLogger())
	r.Run(ctx)

	msgs := sender.messages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if strings.Contains(msgs[0].Text, "price") {
		t.Errorf("report without an oracle mentions price:\n%s", msgs[0].Text)
	}
}
