package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/communitykitchen/eventdesk/internal/config"
	"github.com/communitykitchen/eventdesk/pkg/clients/gmailclient"
	"github.com/communitykitchen/eventdesk/pkg/clients/sheetsclient"
	"github.com/communitykitchen/eventdesk/pkg/db"
	"github.com/communitykitchen/eventdesk/pkg/utils"
)

// Store is the persistence surface shared by every command
type Store interface {
	db.EventRequestStore
	db.ReferenceStore
}

// AppContext holds the application dependencies shared across all commands.
// The Google clients are created lazily so commands that never touch Sheets
// or Gmail do not trigger the OAuth flow.
type AppContext struct {
	Cfg      *config.Config
	OAuthCfg *config.OAuthClientConfig
	Store    Store
	Logger   *zap.Logger
	Ctx      context.Context

	sheetsClient *sheetsclient.Client
	gmailClient  *gmailclient.Client
}

// Sheets returns the Google Sheets client, running the OAuth flow on first use
func (a *AppContext) Sheets() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	client, err := sheetsclient.NewClient(a.Ctx, a.OAuthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.sheetsClient = client
	return client, nil
}

// Gmail returns the Gmail client, reusing the token from the shared OAuth flow
func (a *AppContext) Gmail() (*gmailclient.Client, error) {
	if a.gmailClient != nil {
		return a.gmailClient, nil
	}

	oauthConfig, err := utils.GetOAuthConfig(a.OAuthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}
	token, err := utils.GetTokenWithFlow(a.Ctx, oauthConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	client, err := gmailclient.NewClient(a.Ctx, a.OAuthCfg, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	a.gmailClient = client
	return client, nil
}
