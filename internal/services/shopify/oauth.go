package shopify

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopsync/internal/config"
	"shopsync/internal/logger"
)

type OAuthService struct {
	config *config.Config
	logger *logger.Logger
}

func NewOAuthService(cfg *config.Config, logger *logger.Logger) *OAuthService {
	return &OAuthService{
		config: cfg,
		logger: logger,
	}
}

// GenerateAuthURL creates the Shopify OAuth authorization URL for the
// install flow.
func (s *OAuthService) GenerateAuthURL(shopDomain string, redirectURI string) (string, string, error) {
	state, err := s.generateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}

	// The bridge only reads the catalog.
	scopes := "read_products"

	cleanDomain := strings.TrimSuffix(shopDomain, ".myshopify.com")

	authURL := fmt.Sprintf(
		"https://%s.myshopify.com/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		cleanDomain,
		s.config.ShopifyClientID,
		scopes,
		url.QueryEscape(redirectURI),
		state,
	)

	return authURL, state, nil
}

// ExchangeCodeForToken exchanges the authorization code for an access token.
func (s *OAuthService) ExchangeCodeForToken(shopDomain, code string) (*TokenResponse, error) {
	tokenURL := fmt.Sprintf("https://%s.myshopify.com/admin/oauth/access_token", shopDomain)

	data := url.Values{}
	data.Set("client_id", s.config.ShopifyClientID)
	data.Set("client_secret", s.config.ShopifyClientSecret)
	data.Set("code", code)

	req, err := http.NewRequest("POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed with status: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	return &tokenResp, nil
}

// generateState generates a cryptographically secure random state.
func (s *OAuthService) generateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}
