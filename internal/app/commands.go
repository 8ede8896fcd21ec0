package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/quota"
	"github.com/frank-couchman/seoscribe-tui/internal/render"
	"github.com/frank-couchman/seoscribe-tui/internal/services"
	"github.com/frank-couchman/seoscribe-tui/internal/services/generator"
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// notifyCmd emits a toast notification.
func notifyCmd(notifType NotificationType, message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ShowNotificationMsg{Type: notifType, Message: message, Duration: duration}
	}
}

func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, 4*time.Second)
}

func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, 6*time.Second)
}

func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, 3*time.Second)
}

// clearNotificationCmd dismisses a notification after its duration.
func clearNotificationCmd(id string, duration time.Duration) tea.Cmd {
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return DismissNotificationMsg{ID: id}
	})
}

// generateCmd runs a draft generation through the generator service.
func generateCmd(mgr *services.Manager, req models.DraftRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		article, err := mgr.Generator().Generate(ctx, req)
		return GenerateResultMsg{Article: article, Err: err}
	}
}

// refreshCmd triggers an immediate server sync.
func refreshCmd(mgr *services.Manager, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return RefreshDoneMsg{Err: mgr.RefreshNow(ctx)}
	}
}

// magicLinkCmd requests a sign-in email.
func magicLinkCmd(mgr *services.Manager, email string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := mgr.Session().SendMagicLink(ctx, email, "")
		return MagicLinkSentMsg{Email: email, Err: err}
	}
}

// signOutCmd clears the local session.
func signOutCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Session().SignOut()
		return ShowNotificationMsg{
			Type:     NotificationInfo,
			Message:  "Signed out",
			Duration: 3 * time.Second,
		}
	}
}

// deleteArticleCmd deletes an article on the server and locally.
func deleteArticleCmd(mgr *services.Manager, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if mgr.Session().SignedIn() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if err := mgr.Client().DeleteArticle(ctx, id); err != nil {
				return DeleteArticleDoneMsg{ID: id, Err: err}
			}
		}
		mgr.Cache().Remove(id)
		return DeleteArticleDoneMsg{ID: id}
	}
}

// exportArticleCmd writes an article as a standalone HTML file in the
// current directory.
func exportArticleCmd(mgr *services.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		article := mgr.Cache().Get(id)
		if article == nil {
			return ExportArticleDoneMsg{Err: errors.New("article not found")}
		}

		doc, err := render.ExportDocument(article)
		if err != nil {
			return ExportArticleDoneMsg{Err: err}
		}
		path := filepath.Join(".", exportFilename(article))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return ExportArticleDoneMsg{Err: err}
		}
		return ExportArticleDoneMsg{Path: path}
	}
}

// exportFilename builds a safe filename from an article title.
func exportFilename(a *models.Article) string {
	name := strings.ToLower(strings.TrimSpace(a.Title))
	if name == "" {
		name = a.ID
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "article"
	}
	if len(out) > 60 {
		out = out[:60]
	}
	return out + ".html"
}

// generateFailureMessage maps a generation error to a user-facing message.
func generateFailureMessage(err error) string {
	var quotaErr *generator.ErrQuotaLocked
	if errors.As(err, &quotaErr) {
		period := "today"
		if quotaErr.Lock.Window == quota.WindowMonth {
			period = "this month"
		}
		return "Generation limit reached " + period + ". Upgrade for more."
	}
	var demoErr *generator.ErrDemoUsed
	if errors.As(err, &demoErr) {
		return "Demo generation already used. Sign in to continue."
	}
	return "Generation failed: " + err.Error()
}
