// Package main is the entry point for the SEOScribe terminal client.
// The bare command runs the Bubble Tea TUI; subcommands cover one-shot
// operations like generating a draft or listing cached articles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/config"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/render"
	"github.com/frank-couchman/seoscribe-tui/internal/services"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/tabs/account"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/tabs/articles"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/tabs/dashboard"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/tabs/writer"
	"github.com/frank-couchman/seoscribe-tui/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sst",
	Short: "SEOScribe terminal client",
	Long: `SEOScribe terminal client - generate, browse and export SEO articles.

Running sst with no arguments opens the interactive TUI. Subcommands
perform one-shot operations against the same local store and cache.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

var (
	generateKeyword string
	generateTone    string
	generateWords   int
	generateOutput  string
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a single article draft",
	Long: `Generate an article draft for the given topic and cache it locally.

Unset fields are filled from the generation defaults file. The draft is
printed as markdown, or written as a standalone HTML document with -o.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		defaults, err := config.LoadGenerationDefaults(mgr.Config().DefaultsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		req := models.DraftRequest{
			Topic:           args[0],
			Keyword:         generateKeyword,
			Tone:            generateTone,
			TargetWordCount: generateWords,
			Region:          defaults.Region,
			Research:        defaults.Research,
			GenerateSocial:  defaults.GenerateSocial,
		}
		if req.Tone == "" {
			req.Tone = defaults.Tone
		}
		if req.TargetWordCount <= 0 {
			req.TargetWordCount = defaults.TargetWordCount
		}

		ctx, cancel := context.WithTimeout(context.Background(), mgr.Config().GenerateTimeout)
		defer cancel()

		article, err := mgr.Generator().Generate(ctx, req)
		if err != nil {
			return err
		}

		if generateOutput != "" {
			doc, err := render.ExportDocument(article)
			if err != nil {
				return err
			}
			if err := os.WriteFile(generateOutput, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", generateOutput, err)
			}
			fmt.Printf("Wrote %s (%d words)\n", generateOutput, article.WordCount)
			return nil
		}

		fmt.Println(render.Markdown(article))
		return nil
	},
}

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List cached articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		list := mgr.Cache().List()
		if len(list) == 0 {
			fmt.Println("No cached articles.")
			return nil
		}

		for _, a := range list {
			title := a.Title
			if title == "" {
				title = "(untitled)"
			}
			created := a.CreatedAt
			if len(created) >= 10 {
				created = created[:10]
			}
			fmt.Printf("%-36s  %-10s  %5d words  %s\n", a.ID, created, a.WordCount, title)
		}
		return nil
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show local generation usage and quota state",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		isPro := mgr.Session().IsPro()
		lock := mgr.Tracker().Locked(isPro)
		resetAt := mgr.Tracker().NextResetAt(isPro)

		plan := "free"
		if isPro {
			plan = "pro"
		}
		if !mgr.Session().SignedIn() {
			plan = "anonymous (demo)"
		}

		fmt.Printf("Plan:       %s\n", plan)
		fmt.Printf("Used:       %d of %d this %s\n", lock.Count, lock.Limit, lock.Window)
		if lock.Locked {
			fmt.Printf("Status:     locked until %s\n", resetAt.Format(time.RFC1123))
		} else {
			fmt.Printf("Status:     %d generations remaining\n", lock.Limit-lock.Count)
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Request a magic sign-in link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])
		if !strings.Contains(email, "@") {
			return fmt.Errorf("invalid email address: %q", email)
		}

		mgr, err := newManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		ctx, cancel := mgr.RequestContext()
		defer cancel()

		if err := mgr.Session().SendMagicLink(ctx, email, ""); err != nil {
			return err
		}
		fmt.Printf("Magic link sent to %s. Check your inbox.\n", email)
		return nil
	},
}

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <article-id>",
	Short: "Export a cached article as a standalone HTML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		article := mgr.Cache().Get(args[0])
		if article == nil {
			return fmt.Errorf("no cached article with id %q", args[0])
		}

		doc, err := render.ExportDocument(article)
		if err != nil {
			return err
		}

		if exportOutput == "" || exportOutput == "-" {
			fmt.Println(doc)
			return nil
		}
		if err := os.WriteFile(exportOutput, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		fmt.Printf("Wrote %s\n", exportOutput)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateKeyword, "keyword", "k", "", "target keyword")
	generateCmd.Flags().StringVarP(&generateTone, "tone", "t", "", "writing tone")
	generateCmd.Flags().IntVarP(&generateWords, "words", "w", 0, "target word count")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write HTML document to file instead of printing markdown")

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(articlesCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(exportCmd)
}

func newManager() (*services.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	mgr, err := services.NewManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return mgr, nil
}

// runTUI starts the interactive Bubble Tea program.
func runTUI() error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := mgr.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(mgr)

	// Each tab receives the shared application state for consistent data access.
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state, mgr),
		articles.New(state),
		writer.New(state),
		account.New(state, mgr),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
