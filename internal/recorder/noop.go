package recorder

import "QuoteChart/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuotes(_ []model.Quote) error               { return nil }
func (n *NoopRecorder) RecordSnapshot(_ *model.ChartSnapshot) error      { return nil }
func (n *NoopRecorder) LatestSnapshot(_ string) (*SnapshotRecord, error) { return nil, ErrNoSnapshot }
func (n *NoopRecorder) Close() error                                     { return nil }
