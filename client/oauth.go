package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Mail/calendar sync providers supported by the connect wizard.
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
)

// providerEndpoints maps each provider to its OAuth2 authorization endpoints.
var providerEndpoints = map[string]oauth2.Endpoint{
	ProviderGoogle: {
		AuthURL:  "https://accounts.google.com/o/oauth2/auth",
		TokenURL: "https://oauth2.googleapis.com/token",
	},
	ProviderMicrosoft: {
		AuthURL:  "https://login.microsoftonline.com/common/oauth2/v2.0/authorize",
		TokenURL: "https://login.microsoftonline.com/common/oauth2/v2.0/token",
	},
}

// providerScopes are the sync scopes LexiBel requests per provider.
var providerScopes = map[string][]string{
	ProviderGoogle: {
		"https://www.googleapis.com/auth/gmail.readonly",
		"https://www.googleapis.com/auth/calendar",
	},
	ProviderMicrosoft: {
		"offline_access",
		"https://graph.microsoft.com/Mail.Read",
		"https://graph.microsoft.com/Calendars.ReadWrite",
	},
}

// ConnectSettings is the per-tenant OAuth app registration returned by the
// API before a connect flow starts.
type ConnectSettings struct {
	ClientID    string `json:"client_id"`
	RedirectURI string `json:"redirect_uri"`
}

// IsValidProvider reports whether name is a supported sync provider.
func IsValidProvider(name string) bool {
	_, ok := providerEndpoints[strings.ToLower(name)]
	return ok
}

// GetConnectSettings fetches the OAuth app registration for a provider.
func (c *Client) GetConnectSettings(ctx context.Context, provider string) (*ConnectSettings, error) {
	var out ConnectSettings
	if err := c.Get(ctx, "/integrations/"+url.PathEscape(provider)+"/settings", &out); err != nil {
		return nil, fmt.Errorf("failed to get connect settings for %s: %w", provider, err)
	}
	return &out, nil
}

// ConsentURL builds the provider consent page URL for the wizard.
func ConsentURL(provider string, settings *ConnectSettings, state string) (string, error) {
	endpoint, ok := providerEndpoints[strings.ToLower(provider)]
	if !ok {
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}
	cfg := &oauth2.Config{
		ClientID:    settings.ClientID,
		RedirectURL: settings.RedirectURI,
		Scopes:      providerScopes[strings.ToLower(provider)],
		Endpoint:    endpoint,
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// AuthorizeInBrowser opens the consent page in a Chrome window and waits for
// the provider to redirect back with an authorization code. Consent needs a
// human, so the window is always visible.
func AuthorizeInBrowser(parent context.Context, consentURL, redirectPrefix string) (string, error) {
	ctx, cancel := createChromeContext()
	if ctx == nil {
		cancel()
		return "", errors.New("neither Google Chrome nor Chromium is available in the path")
	}
	defer cancel()

	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, 4*time.Minute)
	defer cancelTimeout()

	var finalURL string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(consentURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for {
				select {
				case <-parent.Done():
					return parent.Err()
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(500 * time.Millisecond):
				}
				var currentURL string
				if err := chromedp.Location(&currentURL).Do(ctx); err != nil {
					return err
				}
				if strings.HasPrefix(currentURL, redirectPrefix) && strings.Contains(currentURL, "code=") {
					finalURL = currentURL
					return nil
				}
				if strings.Contains(currentURL, "error=") {
					return fmt.Errorf("consent failed: detected error in URL: %s", currentURL)
				}
			}
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to complete consent flow: %w", err)
	}
	return ExtractAuthCode(finalURL)
}

// ExtractAuthCode extracts the authorization code from the redirect URL.
func ExtractAuthCode(redirectURL string) (string, error) {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return "", errors.New("authorization code not found in the URL")
	}
	return code, nil
}

// CompleteMailboxConnect submits the authorization code so the backend can
// exchange it and start syncing mail and calendar for the tenant.
func (c *Client) CompleteMailboxConnect(ctx context.Context, provider, code, state string) error {
	if err := c.Post(ctx, "/integrations/"+url.PathEscape(provider)+"/connect", map[string]string{
		"code":  code,
		"state": state,
	}, nil); err != nil {
		return fmt.Errorf("failed to complete %s connect: %w", provider, err)
	}
	return nil
}

// createChromeContext creates a ChromeDP context with a visible window.
func createChromeContext() (context.Context, context.CancelFunc) {
	var execPath string
	if path, err := exec.LookPath("google-chrome"); err == nil {
		execPath = path
	} else if path, err := exec.LookPath("chromium"); err == nil {
		execPath = path
	} else if path, err := exec.LookPath("chrome"); err == nil {
		execPath = path
	} else {
		log.Error().Msg("Neither Google Chrome nor Chromium is available in the path. Please install one of them.")
		return nil, func() {}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("headless", false),
		chromedp.Flag("disable-gpu", false),
		chromedp.Flag("start-maximized", true),
	)

	allocatorCtx, cancelAllocator := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelContext := chromedp.NewContext(allocatorCtx, chromedp.WithLogf(log.Info().Msgf))
	return ctx, func() {
		cancelContext()
		cancelAllocator()
	}
}
