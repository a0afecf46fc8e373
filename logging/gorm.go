package logging

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 500 * time.Millisecond

// GormLogger routes gorm messages through logrus
type GormLogger struct {
	Level logger.LogLevel
}

func NewGormLogger() *GormLogger {
	return &GormLogger{Level: logger.Warn}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &GormLogger{Level: level}
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= logger.Info {
		log.WithContext(ctx).Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= logger.Warn {
		log.WithContext(ctx).Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= logger.Error {
		log.WithContext(ctx).Errorf(msg, args...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.Level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.WithContext(ctx).WithFields(log.Fields{"rows": rows, "elapsed": elapsed}).WithError(err).Error(sql)
	case elapsed > slowQueryThreshold && l.Level >= logger.Warn:
		sql, rows := fc()
		log.WithContext(ctx).WithFields(log.Fields{"rows": rows, "elapsed": elapsed}).Warn("slow query: " + sql)
	case l.Level >= logger.Info:
		sql, rows := fc()
		log.WithContext(ctx).WithFields(log.Fields{"rows": rows, "elapsed": elapsed}).Debug(sql)
	}
}
