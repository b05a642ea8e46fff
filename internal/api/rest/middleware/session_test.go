package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dcslol/dcs_go_invite_shortener/internal/config"
	"github.com/dcslol/dcs_go_invite_shortener/internal/service/modelsession"
	sessionService "github.com/dcslol/dcs_go_invite_shortener/internal/service/session/v1"
)

func TestSessionHandle(t *testing.T) {
	cfg := &config.SecretConfig{SessionKey: "test-signing-key", AuthCookie: "dcs_session"}
	codec, err := sessionService.NewSessionCodec(cfg)
	assert.NoError(t, err)
	sessionHandler, err := NewSessionHandler(codec, cfg)
	assert.NoError(t, err)

	var observed *modelsession.Payload
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observed = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	ts := httptest.NewServer(sessionHandler.SessionHandle(next))
	defer ts.Close()

	token, err := codec.Sign(modelsession.Payload{UserID: "someUserID", Username: "someUser"})
	assert.NoError(t, err)

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   *modelsession.Payload
	}{
		{
			name:   "Valid session cookie",
			cookie: &http.Cookie{Name: "dcs_session", Value: token},
			want:   &modelsession.Payload{UserID: "someUserID", Username: "someUser"},
		},
		{
			name:   "Tampered session cookie",
			cookie: &http.Cookie{Name: "dcs_session", Value: token + "x"},
			want:   nil,
		},
		{
			name:   "No session cookie",
			cookie: nil,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			observed = nil
			client := resty.New()
			req := client.R()
			if tt.cookie != nil {
				req.SetCookie(tt.cookie)
			}
			res, err := req.Get(ts.URL)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, res.StatusCode())
			assert.Equal(t, tt.want, observed)
		})
	}
}
