package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Profile is the slice of a provider's userinfo response the wiki cares about.
// Every provider returns far more; we normalize down to the fields needed to
// upsert an account.
type Profile struct {
	ID    string // provider-scoped identifier, stable per account
	Email string // may be empty if the user hides it on the provider
	Name  string
}

// Provider wraps golang.org/x/oauth2 for one delegated identity provider.
//
// AUTHORIZATION CODE FLOW:
//  1. /auth/{provider}/login redirects to the provider's consent page
//  2. the provider redirects back to the callback with a short-lived code
//  3. Exchange trades the code for an access token (server-to-server)
//  4. the access token fetches the userinfo endpoint for a Profile
//
// The client secret and the access token never touch the browser.
type Provider struct {
	name        string
	config      *oauth2.Config
	userInfoURL string
	parse       func([]byte) (*Profile, error)
}

// Endpoints for the providers x/oauth2 does not ship presets for.
var (
	naverEndpoint = oauth2.Endpoint{
		AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
		TokenURL: "https://nid.naver.com/oauth2.0/token",
	}
	discordEndpoint = oauth2.Endpoint{
		AuthURL:  "https://discord.com/api/oauth2/authorize",
		TokenURL: "https://discord.com/api/oauth2/token",
	}
)

// NewProvider creates a Provider for one of: google, github, naver, discord.
//
// callbackURL must exactly match the redirect URI registered with the
// provider, e.g. "http://localhost:8080/auth/github/callback".
func NewProvider(name, clientID, clientSecret, callbackURL string) (*Provider, error) {
	p := &Provider{
		name: name,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
		},
	}

	switch name {
	case "google":
		p.config.Endpoint = google.Endpoint
		p.config.Scopes = []string{"openid", "email", "profile"}
		p.userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
		p.parse = parseGoogleProfile
	case "github":
		p.config.Endpoint = github.Endpoint
		p.config.Scopes = []string{"read:user", "user:email"}
		p.userInfoURL = "https://api.github.com/user"
		p.parse = parseGitHubProfile
	case "naver":
		p.config.Endpoint = naverEndpoint
		p.userInfoURL = "https://openapi.naver.com/v1/nid/me"
		p.parse = parseNaverProfile
	case "discord":
		p.config.Endpoint = discordEndpoint
		p.config.Scopes = []string{"identify", "email"}
		p.userInfoURL = "https://discord.com/api/users/@me"
		p.parse = parseDiscordProfile
	default:
		return nil, fmt.Errorf("auth: unknown OAuth provider %q", name)
	}

	return p, nil
}

// Name returns the provider's route segment ("google", "github", ...).
func (p *Provider) Name() string {
	return p.name
}

// AuthURL returns the provider consent URL to redirect the user to.
//
// The state is a random value the caller stores in a short-lived cookie and
// verifies on callback — the CSRF check for the whole flow.
func (p *Provider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange completes the flow: trades the authorization code for a normalized
// Profile by calling the provider's userinfo endpoint with the fresh token.
func (p *Provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	oauthToken, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging %s OAuth code: %w", p.name, err)
	}

	// oauth2.Config.Client returns an *http.Client that adds the
	// "Authorization: Bearer <token>" header to every request.
	client := p.config.Client(ctx, oauthToken)

	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("auth: calling %s userinfo API: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: %s userinfo API returned status %d", p.name, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("auth: decoding %s userinfo response: %w", p.name, err)
	}

	profile, err := p.parse(raw)
	if err != nil {
		return nil, fmt.Errorf("auth: %s: %w", p.name, err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("auth: %s returned a profile without an id", p.name)
	}

	return profile, nil
}

func parseGoogleProfile(data []byte) (*Profile, error) {
	var v struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &Profile{ID: v.ID, Email: v.Email, Name: v.Name}, nil
}

func parseGitHubProfile(data []byte) (*Profile, error) {
	var v struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	name := v.Name
	if name == "" {
		name = v.Login
	}
	var id string
	if v.ID != 0 {
		id = strconv.FormatInt(v.ID, 10)
	}
	return &Profile{ID: id, Email: v.Email, Name: name}, nil
}

// Naver nests the profile under a "response" object.
func parseNaverProfile(data []byte) (*Profile, error) {
	var v struct {
		Response struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"response"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &Profile{ID: v.Response.ID, Email: v.Response.Email, Name: v.Response.Name}, nil
}

func parseDiscordProfile(data []byte) (*Profile, error) {
	var v struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &Profile{ID: v.ID, Email: v.Email, Name: v.Username}, nil
}
