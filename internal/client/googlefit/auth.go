package googlefit

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/Lucov/healthcard/internal/config"
	"github.com/Lucov/healthcard/internal/paths"
)

const (
	authURL  = "https://accounts.google.com/o/oauth2/auth"
	tokenURL = "https://oauth2.googleapis.com/token" //nolint:gosec // not credentials, just endpoint URL

	callbackPath = "/callback"
	shutdownTime = 5 * time.Second
)

var scopes = []string{
	"https://www.googleapis.com/auth/fitness.sleep.read",
	"https://www.googleapis.com/auth/fitness.heart_rate.read",
	"https://www.googleapis.com/auth/fitness.activity.read",
}

var ErrNoToken = errors.New("no stored token: run `healthcard fetch --login` first")

func NewOAuthConfig(google config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     google.ClientID,
		ClientSecret: google.ClientSecret,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}
}

var (
	_ oauth2.TokenSource = (*FileTokenSource)(nil)
)

// FileTokenSource keeps the Google Fit token cached on disk under the
// config dir and writes refreshed tokens back.
type FileTokenSource struct {
	config *oauth2.Config
	mu     sync.Mutex
	token  *oauth2.Token
}

func NewFileTokenSource(config *oauth2.Config) *FileTokenSource {
	return &FileTokenSource{config: config}
}

func (s *FileTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != nil && s.token.Valid() {
		return s.token, nil
	}

	stored, err := LoadToken()
	if err != nil {
		return nil, err
	}

	if stored.Valid() {
		s.token = stored
		return stored, nil
	}

	refreshed, err := s.config.TokenSource(context.Background(), stored).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if err := SaveToken(refreshed); err != nil {
		return nil, err
	}

	s.token = refreshed
	return refreshed, nil
}

func (s *FileTokenSource) HasToken() bool {
	path, err := paths.Token()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func LoadToken() (*oauth2.Token, error) {
	path, err := paths.Token()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	var token oauth2.Token
	if err := go_json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return &token, nil
}

func SaveToken(token *oauth2.Token) error {
	if _, err := paths.EnsureDir(); err != nil {
		return err
	}

	path, err := paths.Token()
	if err != nil {
		return err
	}

	data, err := go_json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

type tokenResult struct {
	token *oauth2.Token
	err   error
}

// RunLoginFlow opens the browser for Google consent, receives the
// callback on a loopback listener, exchanges the code, and stores the
// resulting token on disk.
func RunLoginFlow(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener: %w", err)
	}
	_, port, _ := net.SplitHostPort(listener.Addr().String())

	// the exchange must present the same redirect URI the consent
	// request carried
	flowCfg := *cfg
	flowCfg.RedirectURL = fmt.Sprintf("http://127.0.0.1:%s%s", port, callbackPath)

	resultCh := make(chan tokenResult, 1)
	server := startCallbackServer(&flowCfg, state, resultCh, listener)

	url := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)

	fmt.Printf("Opening browser for authorization...\n")
	fmt.Printf("If the browser doesn't open, visit:\n%s\n\n", url)

	if err := openBrowser(url); err != nil {
		fmt.Printf("Failed to open browser: %v\n", err)
	}

	select {
	case result := <-resultCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTime)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Warning: failed to shutdown server: %v\n", err)
		}

		if result.err != nil {
			return nil, result.err
		}

		if err := SaveToken(result.token); err != nil {
			return nil, err
		}

		return result.token, nil

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTime)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)

		return nil, ctx.Err()
	}
}

func startCallbackServer(cfg *oauth2.Config, state string, resultCh chan<- tokenResult, listener net.Listener) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		token, err := handleCallback(cfg, state, w, r)
		if err != nil {
			resultCh <- tokenResult{err: err}
			return
		}
		fmt.Fprintln(w, "Authorized. You can close this tab and return to the terminal.")
		resultCh <- tokenResult{token: token}
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			resultCh <- tokenResult{err: fmt.Errorf("server error: %w", err)}
		}
	}()

	return server
}

func handleCallback(cfg *oauth2.Config, state string, w http.ResponseWriter, r *http.Request) (*oauth2.Token, error) {
	if r.URL.Query().Get("state") != state {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return nil, errors.New("invalid state parameter")
	}

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		errDesc := r.URL.Query().Get("error_description")
		http.Error(w, fmt.Sprintf("OAuth error: %s", errDesc), http.StatusBadRequest)
		return nil, fmt.Errorf("oauth error: %s - %s", errParam, errDesc)
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return nil, errors.New("missing authorization code")
	}

	token, err := cfg.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange authorization code", http.StatusInternalServerError)
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	return token, nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
