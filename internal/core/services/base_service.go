package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// LogIssues reports every skipped or degraded record of a pass at warn level.
func (s *BaseService) LogIssues(ctx context.Context, operation string, workplaceID string, issues []domain.Issue) {
	if len(issues) == 0 {
		return
	}
	logger := s.GetLogger(ctx).With(
		slog.String("operation", operation),
		slog.String("workplace_id", workplaceID),
	)
	for _, is := range issues {
		logger.Warn("Record issue",
			slog.String("kind", string(is.Kind)),
			slog.String("transaction_id", is.TransactionID),
			slog.String("account_id", is.AccountID),
			slog.String("member_id", is.MemberID),
			slog.String("message", is.Message))
	}
}
