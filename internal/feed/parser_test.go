package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahendraputra/idx-radar/internal/models"
)

const sampleHeader = "Stock Code,Company Name,Last Trading Date,Close,Previous,Change,Volume,Value,Foreign Buy,Foreign Sell,Frequency,Signal,Foreign Flow,Unusual Volume,Week,VWAP"

func TestParseRecords_FullRow(t *testing.T) {
	csv := sampleHeader + "\n" +
		"BBCA,Bank Central Asia,2024-03-04,9950,9900,50,1500000,14925000000,400000,300000,5200,Akumulasi,Inflow,true,2024-W10,9930"

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "BBCA", r.StockCode)
	assert.Equal(t, "Bank Central Asia", r.CompanyName)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, 9950.0, r.Close)
	assert.Equal(t, 9900.0, r.Previous)
	assert.Equal(t, 50.0, r.Change)
	assert.Equal(t, int64(1500000), r.Volume)
	assert.Equal(t, 14925000000.0, r.Value)
	assert.Equal(t, int64(400000), r.ForeignBuy)
	assert.Equal(t, int64(300000), r.ForeignSell)
	assert.Equal(t, int64(5200), r.Frequency)
	assert.Equal(t, models.SignalAccumulation, r.Signal)
	assert.Equal(t, models.FlowInflow, r.ForeignFlow)
	assert.True(t, r.UnusualVolume)
	assert.Equal(t, "2024-W10", r.Week)
	assert.Equal(t, 9930.0, r.VWAP)
}

func TestParseRecords_MalformedNumericsBecomeZero(t *testing.T) {
	csv := sampleHeader + "\n" +
		"TLKM,Telkom,2024-03-04,n/a,,abc,-,??,,,x,,,,,"

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Zero(t, r.Close)
	assert.Zero(t, r.Previous)
	assert.Zero(t, r.Change)
	assert.Zero(t, r.Volume)
	assert.Zero(t, r.Value)
	assert.Zero(t, r.Frequency)
	assert.False(t, r.UnusualVolume)
}

func TestParseRecords_ThousandSeparators(t *testing.T) {
	csv := sampleHeader + "\n" +
		`ASII,"Astra",2024-03-04,"5,150","5,100",50,"12,345,678","63,580,241,700",0,0,100,,,,,`

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 5150.0, records[0].Close)
	assert.Equal(t, int64(12345678), records[0].Volume)
}

func TestParseRecords_DropsRowsWithoutKeyFields(t *testing.T) {
	csv := sampleHeader + "\n" +
		",Nameless,2024-03-04,100,0,0,0,0,0,0,0,,,,,\n" +
		"GOTO,GoTo,not-a-date,100,0,0,0,0,0,0,0,,,,,\n" +
		"BMRI,Mandiri,2024-03-04,6000,5950,50,100,600000,0,0,10,,,,,"

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BMRI", records[0].StockCode)
}

func TestParseRecords_DropsRowsFailingValidation(t *testing.T) {
	csv := sampleHeader + "\n" +
		"NEGV,Negative,2024-03-04,100,0,0,-500,0,0,0,0,,,,,\n" +
		"BMRI,Mandiri,2024-03-04,6000,5950,50,100,600000,0,0,10,,,,,"

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BMRI", records[0].StockCode)
}

func TestParseRecords_LowercaseCodeNormalized(t *testing.T) {
	csv := sampleHeader + "\n" +
		"bbri,BRI,2024-03-04,4500,4400,100,100,450000,0,0,10,,,,,"

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BBRI", records[0].StockCode)
}

func TestParseRecords_MissingRequiredColumn(t *testing.T) {
	csv := "Company Name,Close\nBank,100"

	_, err := ParseRecords(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMissingColumn)
}

func TestParseRecords_MissingOptionalColumnsDefault(t *testing.T) {
	// Only the required columns plus close: every other field defaults.
	csv := "Stock Code,Last Trading Date,Close\nBBCA,2024-03-04,9950"

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 9950.0, r.Close)
	assert.Zero(t, r.Volume)
	assert.Empty(t, r.Signal)
	assert.Empty(t, r.Week)
}

func TestParseRecords_AlternateDateLayout(t *testing.T) {
	csv := "Stock Code,Last Trading Date\nBBCA,04/03/2024"

	records, err := ParseRecords(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), records[0].Date)
}

func TestParseSectors(t *testing.T) {
	csv := "Stock Code,Sector\nBBCA,Finance\nbbri,Finance\nTLKM,Infrastructure\nUNMAPPED,\n"

	sectors, err := ParseSectors(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "Finance", sectors["BBCA"])
	assert.Equal(t, "Finance", sectors["BBRI"])
	assert.Equal(t, "Infrastructure", sectors["TLKM"])
	assert.NotContains(t, sectors, "UNMAPPED")
}

func TestParseSectors_MissingColumns(t *testing.T) {
	_, err := ParseSectors(strings.NewReader("Code,Industry\nBBCA,Finance"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMissingColumn)
}

func TestParseRecords_EmptyBody(t *testing.T) {
	records, err := ParseRecords(strings.NewReader(sampleHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
