package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/salesdash/internal/sheets"
)

func TestSheetServiceDeduplicates(t *testing.T) {
	ctx := context.Background()
	writer := &recordingWriter{}
	svc := NewSheetService(writer, nil)

	row := []string{"C001", "visit"}
	first, err := svc.AppendRow(ctx, "Activities", row)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)
	assert.Equal(t, sheets.IdempotencyKey("Activities", row), first.IdempotencyKey)

	second, err := svc.AppendRow(ctx, "Activities", row)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)

	assert.Len(t, writer.rows["Activities"], 1)
}

func TestSheetServiceReleasesClaimOnFailure(t *testing.T) {
	ctx := context.Background()
	writer := &recordingWriter{err: errors.New("offline")}
	svc := NewSheetService(writer, nil)

	_, err := svc.AppendRow(ctx, "Samples", []string{"x"})
	require.Error(t, err)

	writer.err = nil
	res, err := svc.AppendRow(ctx, "Samples", []string{"x"})
	require.NoError(t, err)
	assert.False(t, res.Duplicate)
}

func TestSheetServiceValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewSheetService(&recordingWriter{}, nil)

	_, err := svc.AppendRow(ctx, " ", []string{"x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AppendRow(ctx, "Samples", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	disabled := NewSheetService(sheets.NewWriter("", "", nil), nil)
	assert.False(t, disabled.Enabled())
	_, err = disabled.AppendRow(ctx, "Samples", []string{"x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
