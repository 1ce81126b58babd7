package metricsstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Counts is the set of totals shown on the admin and volunteer dashboards.
type Counts struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalRequests int64 `json:"totalRequests"`
	TotalFunding  int64 `json:"totalFunding"`
}

// FetchDashboardCounts returns the high-level counts used by dashboards.
// Intentionally tolerant: on error it logs and returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database, log *zap.Logger) Counts {
	var out Counts

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{}); err == nil {
		out.TotalUsers = n
	} else {
		log.Warn("count users failed", zap.Error(err))
	}

	if n, err := db.Collection("donation_requests").CountDocuments(ctx, bson.M{}); err == nil {
		out.TotalRequests = n
	} else {
		log.Warn("count requests failed", zap.Error(err))
	}

	if n, err := sumFundings(ctx, db); err == nil {
		out.TotalFunding = n
	} else {
		log.Warn("sum fundings failed", zap.Error(err))
	}

	return out
}

func sumFundings(ctx context.Context, db *mongo.Database) (int64, error) {
	cur, err := db.Collection("fundings").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// DonationCounts is how many blood requests were created in the current
// day, week and month.
type DonationCounts struct {
	Daily   int64 `json:"daily"`
	Weekly  int64 `json:"weekly"`
	Monthly int64 `json:"monthly"`
}

// Windows returns local midnight today, the most recent Sunday at 00:00,
// and the first of the month at 00:00, all in loc.
func Windows(now time.Time, loc *time.Location) (day, week, month time.Time) {
	n := now.In(loc)
	day = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	week = day.AddDate(0, 0, -int(day.Weekday()))
	month = time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
	return day, week, month
}

// FetchDonationCounts counts requests created since each window start.
// Tolerant like FetchDashboardCounts.
func FetchDonationCounts(ctx context.Context, db *mongo.Database, now time.Time, loc *time.Location, log *zap.Logger) DonationCounts {
	var out DonationCounts
	day, week, month := Windows(now, loc)
	c := db.Collection("donation_requests")

	count := func(label string, since time.Time, dst *int64) {
		n, err := c.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since.UTC()}})
		if err != nil {
			log.Warn("count requests since window failed", zap.String("window", label), zap.Error(err))
			return
		}
		*dst = n
	}
	count("daily", day, &out.Daily)
	count("weekly", week, &out.Weekly)
	count("monthly", month, &out.Monthly)

	return out
}
