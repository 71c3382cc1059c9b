package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesdash/internal/repository"
	"github.com/andresuchdata/salesdash/internal/sheets"
)

// RowWriter appends a row to a spreadsheet tab.
type RowWriter interface {
	Configured() bool
	AppendRow(ctx context.Context, sheetName string, row []string) (string, error)
}

// WriteResult reports what happened to a row write.
type WriteResult struct {
	IdempotencyKey string `json:"idempotency_key"`
	Duplicate      bool   `json:"duplicate"`
}

// SheetService sends rows to the spreadsheet once per idempotency key.
type SheetService struct {
	writer RowWriter
	log    repository.WriteLog
}

func NewSheetService(writer RowWriter, writeLog repository.WriteLog) *SheetService {
	if writeLog == nil {
		writeLog = repository.NewMemoryWriteLog()
	}
	return &SheetService{writer: writer, log: writeLog}
}

// Enabled reports whether rows can be sent at all.
func (s *SheetService) Enabled() bool {
	return s != nil && s.writer != nil && s.writer.Configured()
}

// AppendRow sends row unless the same row was already sent to sheetName.
func (s *SheetService) AppendRow(ctx context.Context, sheetName string, row []string) (WriteResult, error) {
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		return WriteResult{}, fmt.Errorf("%w: sheet name is required", ErrInvalidInput)
	}
	if len(row) == 0 {
		return WriteResult{}, fmt.Errorf("%w: row is empty", ErrInvalidInput)
	}
	if !s.Enabled() {
		return WriteResult{}, fmt.Errorf("%w: sheet writes are not configured", ErrInvalidInput)
	}

	key := sheets.IdempotencyKey(sheetName, row)
	claimed, err := s.log.Claim(ctx, key, sheetName)
	if err != nil {
		return WriteResult{}, err
	}
	if !claimed {
		log.Info().Str("sheet", sheetName).Str("idempotency_key", key).Msg("duplicate row ignored")
		return WriteResult{IdempotencyKey: key, Duplicate: true}, nil
	}

	if _, err := s.writer.AppendRow(ctx, sheetName, row); err != nil {
		if relErr := s.log.Release(ctx, key); relErr != nil {
			log.Error().Err(relErr).Str("idempotency_key", key).Msg("failed to release write claim")
		}
		return WriteResult{}, err
	}
	return WriteResult{IdempotencyKey: key}, nil
}
