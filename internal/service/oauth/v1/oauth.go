// Package oauth provides the Discord authorization-code flow with stateless
// CSRF state and signed session minting.
package oauth

import (
	"context"
	"crypto/hmac"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	serviceErrors "github.com/dcslol/dcs_go_invite_shortener/internal/service/errors"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelsession"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/oauth"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/session"
	"github.com/dcslol/dcs_go_invite_shortener/internal/storage"
)

const (
	defaultAuthorizeEndpoint = "https://discord.com/api/oauth2/authorize"
	defaultTokenEndpoint     = "https://discord.com/api/oauth2/token"
	defaultUserEndpoint      = "https://discord.com/api/users/@me"

	// MaxStateAge bounds the embedded issue time independently of the cookie's
	// own Max-Age.
	MaxStateAge = 10 * time.Minute

	exchangeTimeout = 10 * time.Second
)

// Check interface implementation explicitly
var (
	_ oauth.Flow = (*Flow)(nil)
)

// State is the single-use anti-forgery value carried in the short-lived cookie.
type State struct {
	IssuedAtMillis int64  `json:"t"`
	Nonce          string `json:"nonce"`
}

// Flow struct defines data structure handling and provides support for adding new implementations.
type Flow struct {
	cfg         *config.OAuthConfig
	codec       session.Codec
	userStorage storage.UserStorage
	client      *resty.Client
	now         func() time.Time

	authorizeEndpoint string
	tokenEndpoint     string
	userEndpoint      string
}

// InitFlow initializes a Flow object and sets its attributes.
func InitFlow(cfg *config.OAuthConfig, codec session.Codec, s storage.UserStorage) (*Flow, error) {
	if codec == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil session codec was passed to service initializer"}
	}
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	f := &Flow{
		cfg:               cfg,
		codec:             codec,
		userStorage:       s,
		client:            resty.New().SetTimeout(exchangeTimeout),
		now:               time.Now,
		authorizeEndpoint: defaultAuthorizeEndpoint,
		tokenEndpoint:     defaultTokenEndpoint,
		userEndpoint:      defaultUserEndpoint,
	}
	if cfg.AuthorizeEndpoint != "" {
		f.authorizeEndpoint = cfg.AuthorizeEndpoint
	}
	if cfg.TokenEndpoint != "" {
		f.tokenEndpoint = cfg.TokenEndpoint
	}
	if cfg.UserEndpoint != "" {
		f.userEndpoint = cfg.UserEndpoint
	}
	return f, nil
}

// BeginLogin mints a fresh state value and builds the provider authorize URL
// carrying it.
func (f *Flow) BeginLogin() (string, string, error) {
	state, err := f.encodeState()
	if err != nil {
		return "", "", err
	}
	params := url.Values{
		"client_id":     {f.cfg.ClientID},
		"redirect_uri":  {f.cfg.RedirectURI},
		"response_type": {"code"},
		"scope":         {f.cfg.Scopes},
		"state":         {state},
	}
	return f.authorizeEndpoint + "?" + params.Encode(), state, nil
}

// HandleCallback validates the callback, exchanges the code, fetches the
// profile, upserts the identity and returns a signed session token. The state
// comparison happens before any network call.
func (f *Flow) HandleCallback(ctx context.Context, query url.Values, cookieState string) (string, error) {
	if query.Get("error") != "" {
		return "", &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonProviderDenied}
	}
	queryState := query.Get("state")
	if cookieState == "" || !hmac.Equal([]byte(queryState), []byte(cookieState)) {
		return "", &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonStateMismatch}
	}
	if err := f.checkStateAge(cookieState); err != nil {
		return "", err
	}
	code := query.Get("code")
	if code == "" {
		return "", &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonMissingCode}
	}
	accessToken, err := f.exchangeCode(ctx, code)
	if err != nil {
		log.Warn().Err(err).Msg("OAuth code exchange failed")
		return "", &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonTokenExchangeFailed, Err: err}
	}
	profile, err := f.fetchUser(ctx, accessToken)
	if err != nil {
		log.Warn().Err(err).Msg("OAuth user fetch failed")
		return "", &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonUserFetchFailed, Err: err}
	}
	localID, err := f.userStorage.UpsertByExternalID(ctx, profile.ID, profile.displayName(), profile.avatarURL())
	if err != nil {
		log.Error().Err(err).Msg("identity upsert failed")
		return "", &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonUserFetchFailed, Err: err}
	}
	token, err := f.codec.Sign(modelsession.Payload{
		UserID:    localID,
		Username:  profile.displayName(),
		AvatarURL: profile.avatarURL(),
	})
	if err != nil {
		return "", &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonUserFetchFailed, Err: err}
	}
	return token, nil
}

func (f *Flow) encodeState() (string, error) {
	data, err := json.Marshal(State{
		IssuedAtMillis: f.now().UnixMilli(),
		Nonce:          uuid.New().String(),
	})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// checkStateAge enforces the embedded issue time so that a cookie with a
// tampered expiry is still bounded by MaxStateAge.
func (f *Flow) checkStateAge(state string) error {
	data, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonStateMismatch, Err: err}
	}
	var decoded State
	if err := json.Unmarshal(data, &decoded); err != nil {
		return &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonStateMismatch, Err: err}
	}
	issuedAt := time.UnixMilli(decoded.IssuedAtMillis)
	if decoded.Nonce == "" || f.now().Sub(issuedAt) > MaxStateAge {
		return &serviceErrors.OAuthFlowError{Reason: serviceErrors.ReasonStateMismatch}
	}
	return nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (f *Flow) exchangeCode(ctx context.Context, code string) (string, error) {
	var tokenRes tokenResponse
	res, err := f.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     f.cfg.ClientID,
			"client_secret": f.cfg.ClientSecret,
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  f.cfg.RedirectURI,
		}).
		SetResult(&tokenRes).
		Post(f.tokenEndpoint)
	if err != nil {
		return "", err
	}
	if res.StatusCode() != 200 {
		return "", fmt.Errorf("token endpoint returned status %d", res.StatusCode())
	}
	if tokenRes.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}
	return tokenRes.AccessToken, nil
}

type discordProfile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

func (p *discordProfile) displayName() string {
	if p.GlobalName != "" {
		return p.GlobalName
	}
	return p.Username
}

func (p *discordProfile) avatarURL() string {
	if p.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", p.ID, p.Avatar)
}

func (f *Flow) fetchUser(ctx context.Context, accessToken string) (*discordProfile, error) {
	var profile discordProfile
	res, err := f.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&profile).
		Get(f.userEndpoint)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("user endpoint returned status %d", res.StatusCode())
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("user endpoint returned no user id")
	}
	return &profile, nil
}
