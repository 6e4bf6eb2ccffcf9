// Package history 设备传感器读数的只读查询。
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"plantya-platform/internal/core/apperr"
	"plantya-platform/internal/core/logger"
	"plantya-platform/internal/repo"
)

const (
	dateLayout = "2006-01-02"
	// MaxRangeDays from、to 两端都计入
	MaxRangeDays = 30
)

type Service struct {
	logs *repo.HistoryRepo
	loc  *time.Location
	log  *zap.Logger
}

// NewService loc 决定自然日的起止；nil 时按 UTC
func NewService(db *gorm.DB, loc *time.Location, l *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{logs: repo.NewHistoryRepo(db), loc: loc, log: l.Named("history")}
}

// Range 返回 [from 00:00, to 23:59:59.999999999] 内的读数，升序
func (s *Service) Range(ctx context.Context, q RangeQuery) ([]Reading, error) {
	deviceID := strings.TrimSpace(q.DeviceID)
	if deviceID == "" {
		return nil, apperr.BadRequest(CodeFieldRequired, "deviceId is required")
	}
	if strings.TrimSpace(q.From) == "" || strings.TrimSpace(q.To) == "" {
		return nil, apperr.BadRequest(CodeFieldRequired, "from and to are required")
	}
	from, err := s.parseDate("from", q.From)
	if err != nil {
		return nil, err
	}
	to, err := s.parseDate("to", q.To)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, apperr.BadRequest(CodeRangeInvalid, "from cannot be after to")
	}
	end := to.AddDate(0, 0, 1)
	if days := int(end.Sub(from).Round(24*time.Hour) / (24 * time.Hour)); days > MaxRangeDays {
		return nil, apperr.BadRequest(CodeRangeTooLong, fmt.Sprintf("range cannot exceed %d days", MaxRangeDays))
	}

	logger.For(ctx, s.log).Debug("history range",
		zap.String("deviceId", deviceID), zap.Time("from", from), zap.Time("to", end))
	rows, err := s.logs.Range(ctx, deviceID, from, end.Add(-time.Nanosecond))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(CodeNotFound, "no sensor data for device "+deviceID+" in range")
	}
	out := make([]Reading, len(rows))
	for i, r := range rows {
		out[i] = toReading(r, s.loc)
	}
	return out, nil
}

func (s *Service) Latest(ctx context.Context, deviceID string) (Reading, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return Reading{}, apperr.BadRequest(CodeFieldRequired, "deviceId is required")
	}
	row, err := s.logs.Latest(ctx, deviceID)
	if err != nil {
		return Reading{}, apperr.Internal(err)
	}
	if row == nil {
		return Reading{}, apperr.NotFound(CodeNotFound, "no sensor data for device "+deviceID)
	}
	return toReading(*row, s.loc), nil
}

func (s *Service) parseDate(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), s.loc)
	if err != nil {
		return time.Time{}, apperr.BadRequest(CodeInvalidDate, field+" must be a date in YYYY-MM-DD format")
	}
	return t, nil
}
