package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObserved(level gormlogger.LogLevel) (*zapGormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return newGormLogger(zap.New(core), level), logs
}

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_Trace(t *testing.T) {
	t.Run("执行失败按 Error 记录", func(t *testing.T) {
		l, logs := newObserved(gormlogger.Warn)
		l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))
		if logs.FilterMessage("SQL 执行失败").Len() != 1 {
			t.Errorf("期望 1 条错误日志，实际 %v", logs.All())
		}
	})

	t.Run("记录不存在不记录", func(t *testing.T) {
		l, logs := newObserved(gormlogger.Warn)
		l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
		if logs.Len() != 0 {
			t.Errorf("不应记录日志，实际 %v", logs.All())
		}
	})

	t.Run("慢查询按 Warn 记录", func(t *testing.T) {
		l, logs := newObserved(gormlogger.Warn)
		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)
		if logs.FilterMessage("慢查询").Len() != 1 {
			t.Errorf("期望 1 条慢查询日志，实际 %v", logs.All())
		}
	})

	t.Run("Warn 级别不记录普通 SQL", func(t *testing.T) {
		l, logs := newObserved(gormlogger.Warn)
		l.Trace(context.Background(), time.Now(), sqlFn, nil)
		if logs.Len() != 0 {
			t.Errorf("不应记录日志，实际 %v", logs.All())
		}
	})

	t.Run("Info 级别记录全部 SQL", func(t *testing.T) {
		l, logs := newObserved(gormlogger.Info)
		l.Trace(context.Background(), time.Now(), sqlFn, nil)
		if logs.FilterMessage("SQL").Len() != 1 {
			t.Errorf("期望 1 条 SQL 日志，实际 %v", logs.All())
		}
	})

	t.Run("Silent 不记录", func(t *testing.T) {
		l, logs := newObserved(gormlogger.Info)
		l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))
		if logs.Len() != 0 {
			t.Errorf("不应记录日志，实际 %v", logs.All())
		}
	})
}

func TestPositiveOr(t *testing.T) {
	if positiveOr(0, 25) != 25 || positiveOr(-1, 10) != 10 || positiveOr(5, 25) != 5 {
		t.Error("连接池默认值回退不符")
	}
}
