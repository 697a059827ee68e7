package game

import "errors"

var (
	ErrStopped            = errors.New("session stopped")
	ErrNoSelection        = errors.New("no piece selected")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrIllegalPromotion   = errors.New("illegal promotion piece")
)
