package identity

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/sirpyerre/account-portal/internal/core/domain"
)

var ErrCredentialsNotSet = errors.New("GOOGLE_APPLICATION_CREDENTIALS is not set")

// FirebaseConfig captures the settings needed to initialise the Admin SDK.
type FirebaseConfig struct {
	CredentialsFile string
	// ProjectID overrides the project id read from the credentials file.
	ProjectID string
	// CheckRevoked additionally asks Firebase whether the token was revoked.
	// This costs one RPC per verification.
	CheckRevoked bool
}

// idTokenVerifier is the part of *auth.Client used here.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client       idTokenVerifier
	checkRevoked bool
}

// NewFirebaseVerifier initialises the Firebase app once at startup. It fails
// when the credentials path is unset or the file does not exist.
func NewFirebaseVerifier(ctx context.Context, cfg FirebaseConfig) (*FirebaseVerifier, error) {
	if cfg.CredentialsFile == "" {
		return nil, ErrCredentialsNotSet
	}
	if _, err := os.Stat(cfg.CredentialsFile); err != nil {
		return nil, fmt.Errorf("firebase credentials file not found: %s: %w", cfg.CredentialsFile, err)
	}

	var conf *firebase.Config
	if cfg.ProjectID != "" {
		conf = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	return newFirebaseVerifier(client, cfg.CheckRevoked), nil
}

func newFirebaseVerifier(client idTokenVerifier, checkRevoked bool) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, checkRevoked: checkRevoked}
}

// Verify returns the uid, email and name claims of a valid ID token. The SDK
// error is returned unchanged so its message can be reported to the caller.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*domain.Identity, error) {
	var (
		token *auth.Token
		err   error
	)
	if v.checkRevoked {
		token, err = v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	} else {
		token, err = v.client.VerifyIDToken(ctx, idToken)
	}
	if err != nil {
		return nil, err
	}

	return &domain.Identity{
		UID:   token.UID,
		Email: claimString(token.Claims, "email"),
		Name:  claimString(token.Claims, "name"),
	}, nil
}

func claimString(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}
