package services

import "errors"

// Ошибки валидации, используемые в сервисах и маппинге HTTP.
var (
	ErrPinRequired        = errors.New("enter referee PIN")
	ErrMatchIDRequired    = errors.New("select a match")
	ErrInvalidStatus      = errors.New("status must be one of Scheduled, Live, Completed")
	ErrInvalidStage       = errors.New("unknown stage")
	ErrUnknownAdminAction = errors.New("unknown admin action")

	// Ошибки публикации таблиц
	ErrPublishingDisabled = errors.New("leaderboard publishing is not configured")
	ErrPublishFailed      = errors.New("failed to publish leaderboard")
)
