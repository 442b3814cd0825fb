package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yomu-dev/yomu/internal/config"
	"github.com/yomu-dev/yomu/internal/history"
	"github.com/yomu-dev/yomu/internal/log"
	"github.com/yomu-dev/yomu/internal/repository/rest"
	"github.com/yomu-dev/yomu/internal/service"
	"github.com/yomu-dev/yomu/internal/session"
	"github.com/yomu-dev/yomu/internal/ui/tui/models"
)

// Run wires the HTTP client, repositories and services together and starts
// the Bubble Tea program.
func Run(cfg *config.Config) error {
	client := rest.NewClient(cfg.API.BaseURL)

	authRepo := rest.NewAuthRepository(client)
	mangaRepo := rest.NewMangaRepository(client)
	chapterRepo := rest.NewChapterRepository(client)
	genreRepo := rest.NewGenreRepository(client)
	commentRepo := rest.NewCommentRepository(client)
	accountRepo := rest.NewAccountRepository(client)
	adminRepo := rest.NewAdminRepository(client)

	store, err := history.Open(cfg.History.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open reading history: %w", err)
	}

	sess := session.New(client, authRepo, config.TokenStore{})

	// Try to resume the previous session from the persisted token.  Failure
	// here just means starting logged out.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if sess.Restore(ctx, cfg.Auth.AccessToken) {
		log.Info("Resumed previous session", "username", sess.User().Username)
	}
	cancel()

	svcs := &models.Services{
		Config:       cfg,
		Client:       client,
		Session:      sess,
		Catalog:      service.NewCatalog(mangaRepo, genreRepo),
		Reader:       service.NewReader(mangaRepo, chapterRepo, accountRepo, store, sess),
		Interactions: service.NewInteractions(accountRepo, genreRepo, commentRepo),
		Admin:        service.NewAdmin(adminRepo, mangaRepo, chapterRepo),
		History:      store,
	}

	p := tea.NewProgram(models.NewAppModel(svcs), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
