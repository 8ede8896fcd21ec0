package app

import (
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

// TickMsg is sent on a regular interval to drive time-based updates.
type TickMsg time.Time

// TabSwitchMsg requests a switch to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// GenerateRequestMsg asks the application to start a draft generation.
type GenerateRequestMsg struct {
	Request models.DraftRequest
}

// GenerateResultMsg carries the outcome of a draft generation.
type GenerateResultMsg struct {
	Article *models.Article
	Err     error
}

// RefreshRequestMsg asks for an immediate server sync.
type RefreshRequestMsg struct{}

// RefreshDoneMsg reports the outcome of a manual sync.
type RefreshDoneMsg struct {
	Err error
}

// MagicLinkRequestMsg asks for a sign-in email to be sent.
type MagicLinkRequestMsg struct {
	Email string
}

// MagicLinkSentMsg reports the outcome of a magic-link request.
type MagicLinkSentMsg struct {
	Email string
	Err   error
}

// SignOutRequestMsg asks the application to clear the session.
type SignOutRequestMsg struct{}

// DeleteArticleRequestMsg asks for an article to be deleted.
type DeleteArticleRequestMsg struct {
	ID string
}

// DeleteArticleDoneMsg reports the outcome of an article deletion.
type DeleteArticleDoneMsg struct {
	ID  string
	Err error
}

// ExportArticleRequestMsg asks for an article to be exported as HTML.
type ExportArticleRequestMsg struct {
	ID string
}

// ExportArticleDoneMsg reports the outcome of an article export.
type ExportArticleDoneMsg struct {
	Path string
	Err  error
}

// ShowNotificationMsg displays a toast notification.
type ShowNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// DismissNotificationMsg removes a notification by ID.
type DismissNotificationMsg struct {
	ID string
}
