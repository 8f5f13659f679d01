package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bikeshare-dashboard/internal/dataset"
	"bikeshare-dashboard/internal/models"
)

const testCSV = `date,season,year,month,weekday,holiday,workingday,weather,total_user
2011-01-01,Spring,2011,Jan,Sat,0,0,Mist,985
2011-01-02,Spring,2011,Jan,Sun,0,0,Mist,801
2011-07-01,Summer,2011,Jul,Fri,0,1,Clear,4000
2012-01-01,Spring,2012,Jan,Sun,0,0,Clear,2294
2012-07-01,Summer,2012,Jul,Sun,0,0,Clear,5531
2012-07-02,Summer,2012,Jul,Mon,0,1,Light Rain,3000
`

func date(s string) time.Time {
	return dataset.ParseDate(s)
}

func rental(d, season string, total int) models.Rental {
	r := models.Rental{Date: date(d), Season: season, TotalUser: total}
	if !r.Date.IsZero() {
		r.Year = r.Date.Format("2006")
		r.Month = r.Date.Format("Jan")
	}
	return r
}

func loadTestDataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(context.Background(), strings.NewReader(testCSV))
	require.NoError(t, err)
	return ds
}

// scenario is the three-day example used across the aggregation tests.
func scenario() []models.Rental {
	return []models.Rental{
		rental("2024-01-01", "spring", 10),
		rental("2024-01-02", "spring", 20),
		rental("2024-01-03", "summer", 5),
	}
}
