package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"pinkmint/models"
)

const identityToolkitEndpoint = "https://identitytoolkit.googleapis.com/v1"

// FirebaseAuthClient implements AuthClient against Firebase Authentication.
// Sign-in goes through the Identity Toolkit REST API (the Admin SDK has no
// client-side sign-in); the Admin SDK verifies the resulting ID token.
type FirebaseAuthClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	verifier   *auth.Client
	logger     *zap.Logger
}

// NewFirebaseAuthClient builds an auth client from the shared Firebase app.
func NewFirebaseAuthClient(ctx context.Context, app *firebase.App, apiKey string, logger *zap.Logger) (*FirebaseAuthClient, error) {
	verifier, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirebaseAuthClient{
		apiKey:     apiKey,
		endpoint:   identityToolkitEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		verifier:   verifier,
		logger:     logger,
	}, nil
}

// SignInAnonymously mints a new anonymous Firebase user.
func (c *FirebaseAuthClient) SignInAnonymously(ctx context.Context) (models.Identity, error) {
	var res struct {
		LocalID string `json:"localId"`
	}
	body := map[string]any{"returnSecureToken": true}
	if err := c.post(ctx, "accounts:signUp", body, &res); err != nil {
		return models.Identity{}, fmt.Errorf("anonymous sign-up failed: %w", err)
	}
	if res.LocalID == "" {
		return models.Identity{}, fmt.Errorf("anonymous sign-up returned no uid")
	}
	return models.Identity{UID: res.LocalID, IsAnonymous: true}, nil
}

// SignInWithToken exchanges a custom token for a signed-in identity.
func (c *FirebaseAuthClient) SignInWithToken(ctx context.Context, token string) (models.Identity, error) {
	var res struct {
		IDToken string `json:"idToken"`
	}
	body := map[string]any{"token": token, "returnSecureToken": true}
	if err := c.post(ctx, "accounts:signInWithCustomToken", body, &res); err != nil {
		return models.Identity{}, fmt.Errorf("custom token sign-in failed: %w", err)
	}

	decoded, err := c.verifier.VerifyIDToken(ctx, res.IDToken)
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to verify signed-in token: %w", err)
	}
	return models.Identity{UID: decoded.UID, IsAnonymous: false}, nil
}

func (c *FirebaseAuthClient) post(ctx context.Context, action string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", action, err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.endpoint, action, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", action, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("identity toolkit call rejected",
			zap.String("action", action), zap.Int("status", resp.StatusCode))
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%s rejected: %s", action, apiErr.Error.Message)
		}
		return fmt.Errorf("%s rejected with status %d", action, resp.StatusCode)
	}
	return json.Unmarshal(data, out)
}
