package models

import "errors"

var (
	ErrInvalidStockCode = errors.New("invalid stock code")
	ErrInvalidDate      = errors.New("invalid trading date")
	ErrInvalidVolume    = errors.New("invalid volume")
	ErrInvalidMetric    = errors.New("invalid ranking metric")
	ErrEmptyDataset     = errors.New("dataset is empty")
	ErrFeedUnavailable  = errors.New("feed unavailable")
	ErrMissingColumn    = errors.New("required column missing")
)
