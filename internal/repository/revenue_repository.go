package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// RevenueRepo derives monthly revenue figures for a coach.  Revenue is
// never stored: it is recomputed from the bookings that were ACTIVE and
// created inside the requested month, priced at the blended per-credit
// rate across all credit packages.
type RevenueRepo struct{ DB *sql.DB }

func NewRevenueRepo(db *sql.DB) *RevenueRepo { return &RevenueRepo{DB: db} }

// MonthlyRevenue is the aggregate returned for one coach and month.
type MonthlyRevenue struct {
	Month        string  `json:"month"`
	Revenue      float64 `json:"revenue"`
	Participants uint64  `json:"participants"`
	Bookings     uint64  `json:"bookings"`
}

var monthIndex = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// monthWindow resolves a lowercase English month name to the [start, end)
// window in the current UTC year.
func monthWindow(name string, now time.Time) (time.Time, time.Time, error) {
	m, ok := monthIndex[strings.ToLower(name)]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, name)
	}
	start := time.Date(now.UTC().Year(), m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// perCreditPrice computes the blended price of a single credit across every
// credit package: total package price divided by total package credits.
func perCreditPrice(totalPrice, totalCredits uint64) float64 {
	if totalCredits == 0 {
		return 0
	}
	return float64(totalPrice) / float64(totalCredits)
}

// MonthlyStats returns the coach's revenue, distinct participants and
// booking count for the named month of the current year.  A coach without
// courses gets all-zero figures without touching the bookings table.
func (r *RevenueRepo) MonthlyStats(ctx context.Context, coachUserID uint64, month string) (MonthlyRevenue, error) {
	out := MonthlyRevenue{Month: strings.ToLower(month)}

	start, end, err := monthWindow(month, time.Now())
	if err != nil {
		return out, err
	}

	rows, err := r.DB.QueryContext(ctx, "SELECT id FROM courses WHERE user_id=?", coachUserID)
	if err != nil {
		return out, err
	}
	courseIDs := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return out, err
		}
		courseIDs = append(courseIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return out, err
	}
	rows.Close()
	if len(courseIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(courseIDs)), ",")
	args := make([]interface{}, 0, len(courseIDs)+2)
	for _, id := range courseIDs {
		args = append(args, id)
	}
	args = append(args, start, end)

	var bookings, participants uint64
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT user_id) FROM course_bookings "+
			"WHERE course_id IN ("+placeholders+") AND status='ACTIVE' AND created_at >= ? AND created_at < ?",
		args...).Scan(&bookings, &participants)
	if err != nil {
		return out, err
	}

	var totalPrice, totalCredits uint64
	err = r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(price),0), COALESCE(SUM(credit_amount),0) FROM credit_packages").
		Scan(&totalPrice, &totalCredits)
	if err != nil {
		return out, err
	}

	out.Bookings = bookings
	out.Participants = participants
	out.Revenue = float64(bookings) * perCreditPrice(totalPrice, totalCredits)
	return out, nil
}
