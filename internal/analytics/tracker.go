// Package analytics records page views and unique visitors in Redis day
// buckets. Counters are approximate by design: visits from bots, test
// runners, and the site owner are filtered out before counting.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olukareem/portfolio/internal/kv"
)

// KV is the Redis surface the tracker needs. *kv.Client satisfies it.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Incr(ctx context.Context, key string) (int64, error)
	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SCard(ctx context.Context, key string) (int64, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

const (
	viewsPrefix    = "views:"
	visitorsPrefix = "visitors:"
)

// Visit describes one incoming page view.
type Visit struct {
	IP        string
	UserAgent string
	Referer   string
}

// DayStats holds one day's counters.
type DayStats struct {
	Day            string `json:"day"`
	Views          int64  `json:"views"`
	UniqueVisitors int64  `json:"uniqueVisitors"`
}

// Tracker records visits and reads back per-day stats.
type Tracker struct {
	kv          KV
	excludedIPs map[string]struct{}
	production  bool
	retention   time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// NewTracker creates a Tracker. excludedIPs are never counted (typically the
// owner's addresses). retentionDays <= 0 keeps day keys forever.
func NewTracker(backend KV, excludedIPs []string, production bool, retentionDays int, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	excluded := make(map[string]struct{}, len(excludedIPs))
	for _, ip := range excludedIPs {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			excluded[ip] = struct{}{}
		}
	}
	var retention time.Duration
	if retentionDays > 0 {
		retention = time.Duration(retentionDays) * 24 * time.Hour
	}
	return &Tracker{
		kv:          backend,
		excludedIPs: excluded,
		production:  production,
		retention:   retention,
		now:         time.Now,
		logger:      logger,
	}
}

// RecordView counts one visit under today's bucket. It returns whether the
// visit was actually counted; filtered traffic returns (false, nil).
func (t *Tracker) RecordView(ctx context.Context, v Visit) (bool, error) {
	if t.isFiltered(v) {
		t.logger.Debug("skipping filtered visit", "ip", v.IP, "user_agent", v.UserAgent)
		return false, nil
	}

	day := dayKey(t.now())
	viewsKey := viewsPrefix + day
	visitorsKey := visitorsPrefix + day

	if _, err := t.kv.Incr(ctx, viewsKey); err != nil {
		return false, fmt.Errorf("failed to increment views: %w", err)
	}

	ip := v.IP
	if ip == "" {
		ip = "unknown"
	}
	if _, err := t.kv.SAdd(ctx, visitorsKey, ip); err != nil {
		return false, fmt.Errorf("failed to record visitor: %w", err)
	}

	if t.retention > 0 {
		// refresh both keys so a day's counters expire together
		if err := t.kv.Expire(ctx, viewsKey, t.retention); err != nil {
			t.logger.Warn("failed to set views ttl", "error", err)
		}
		if err := t.kv.Expire(ctx, visitorsKey, t.retention); err != nil {
			t.logger.Warn("failed to set visitors ttl", "error", err)
		}
	}

	return true, nil
}

// Today returns the current day's stats.
func (t *Tracker) Today(ctx context.Context) (DayStats, error) {
	return t.statsFor(ctx, dayKey(t.now()))
}

// AllDays returns stats for every day with recorded views, newest first.
func (t *Tracker) AllDays(ctx context.Context) ([]DayStats, error) {
	keys, err := t.kv.Keys(ctx, viewsPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list view keys: %w", err)
	}

	stats := make([]DayStats, 0, len(keys))
	for _, key := range keys {
		day := strings.TrimPrefix(key, viewsPrefix)
		s, err := t.statsFor(ctx, day)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		return dayLess(stats[j].Day, stats[i].Day)
	})
	return stats, nil
}

func (t *Tracker) statsFor(ctx context.Context, day string) (DayStats, error) {
	views, err := t.viewCount(ctx, viewsPrefix+day)
	if err != nil {
		return DayStats{}, fmt.Errorf("failed to read views for %s: %w", day, err)
	}
	visitors, err := t.kv.SCard(ctx, visitorsPrefix+day)
	if err != nil {
		return DayStats{}, fmt.Errorf("failed to read visitors for %s: %w", day, err)
	}
	return DayStats{Day: day, Views: views, UniqueVisitors: visitors}, nil
}

// viewCount reads a views counter, treating a missing key as zero.
func (t *Tracker) viewCount(ctx context.Context, key string) (int64, error) {
	raw, err := t.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed counter at %s: %w", key, err)
	}
	return n, nil
}

// isFiltered reports whether a visit is test traffic or an excluded address.
func (t *Tracker) isFiltered(v Visit) bool {
	if !t.production {
		return true
	}
	if _, ok := t.excludedIPs[v.IP]; ok {
		return true
	}
	ua := strings.ToLower(v.UserAgent)
	for _, marker := range []string{"postman", "playwright", "cypress"} {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	ref := strings.ToLower(v.Referer)
	for _, marker := range []string{"localhost", "127.0.0.1", ".vercel.app"} {
		if strings.Contains(ref, marker) {
			return true
		}
	}
	return false
}

// dayKey formats the local date as year-month-day without zero padding,
// matching the historical key format already in Redis.
func dayKey(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

// dayLess compares two unpadded day keys chronologically.
func dayLess(a, b string) bool {
	pa, okA := parseDay(a)
	pb, okB := parseDay(b)
	if !okA || !okB {
		return a < b
	}
	return pa.Before(pb)
}

func parseDay(s string) (time.Time, bool) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}
