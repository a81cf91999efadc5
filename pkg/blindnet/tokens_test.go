package blindnet_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/blindnet/pkg/blindnet"
	"github.com/aussiebroadwan/blindnet/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func decodeSegment(t *testing.T, seg string) map[string]any {
	t.Helper()

	raw, err := base64.RawURLEncoding.DecodeString(seg)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestTokenShapes(t *testing.T) {
	t.Parallel()

	clock := fixedClock()
	now := clock()
	client, pub := newTestClient(t, "https://api.example.com", blindnet.WithClock(clock))

	tempToken, err := client.CreateTempUserToken("group-7")
	require.NoError(t, err)
	userToken, err := client.CreateUserToken("user-3", "group-7")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		typ     jwtx.TokenType
		payload map[string]any // tid is checked separately
		hasTID  bool
	}{
		{
			name:    "client credential",
			token:   client.ClientToken(),
			typ:     jwtx.TypeClient,
			payload: map[string]any{"app": testAppID, "exp": float64(now.Add(24 * time.Hour).Unix())},
			hasTID:  true,
		},
		{
			name:  "temporary user",
			token: tempToken,
			typ:   jwtx.TypeTempUser,
			payload: map[string]any{
				"app": testAppID,
				"gid": "group-7",
				"exp": float64(now.Add(30 * time.Minute).Unix()),
			},
			hasTID: true,
		},
		{
			name:  "registered user",
			token: userToken,
			typ:   jwtx.TypeUser,
			payload: map[string]any{
				"uid": "user-3",
				"app": testAppID,
				"gid": "group-7",
				"exp": float64(now.Add(12 * time.Hour).Unix()),
			},
		},
	}

	verifier := jwtx.NewVerifierEdDSA(pub).WithClock(clock)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := strings.Split(tt.token, ".")
			require.Len(t, parts, 3)

			require.Equal(t, map[string]any{"alg": "EdDSA", "typ": string(tt.typ)}, decodeSegment(t, parts[0]))

			payload := decodeSegment(t, parts[1])
			if tt.hasTID {
				tid, ok := payload["tid"].(string)
				require.True(t, ok)
				require.NotEmpty(t, tid)
				delete(payload, "tid")
			}
			require.Equal(t, tt.payload, payload)

			_, err := verifier.Verify(tt.token, tt.typ)
			require.NoError(t, err)
		})
	}
}

func TestTempUserTokensAreUnique(t *testing.T) {
	t.Parallel()

	// Same inputs, same instant: only the tid tells them apart
	client, pub := newTestClient(t, "https://api.example.com", blindnet.WithClock(fixedClock()))

	a, err := client.CreateTempUserToken("group-1")
	require.NoError(t, err)
	b, err := client.CreateTempUserToken("group-1")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	verifier := jwtx.NewVerifierEdDSA(pub)
	ca, err := verifier.Verify(a, jwtx.TypeTempUser)
	require.NoError(t, err)
	cb, err := verifier.Verify(b, jwtx.TypeTempUser)
	require.NoError(t, err)
	require.NotEqual(t, ca.TID, cb.TID)
}

func TestRefreshClientTokenReplacesCredential(t *testing.T) {
	t.Parallel()

	client, pub := newTestClient(t, "https://api.example.com", blindnet.WithClock(fixedClock()))
	verifier := jwtx.NewVerifierEdDSA(pub)

	before := client.ClientToken()
	require.NoError(t, client.RefreshClientToken())
	after := client.ClientToken()
	require.NotEqual(t, before, after)

	cb, err := verifier.Verify(before, jwtx.TypeClient)
	require.NoError(t, err)
	ca, err := verifier.Verify(after, jwtx.TypeClient)
	require.NoError(t, err)
	require.NotEqual(t, cb.TID, ca.TID)
}

func TestUserTokenTTLIsConfigurable(t *testing.T) {
	t.Parallel()

	clock := fixedClock()
	client, pub := newTestClient(t, "https://api.example.com",
		blindnet.WithClock(clock),
		blindnet.WithUserTokenTTL(30*time.Minute),
		blindnet.WithTempUserTokenTTL(5*time.Minute),
		blindnet.WithClientTokenTTL(time.Hour),
	)
	verifier := jwtx.NewVerifierEdDSA(pub).WithClock(clock)

	token, err := client.CreateUserToken("u", "g")
	require.NoError(t, err)
	claims, err := verifier.Verify(token, jwtx.TypeUser)
	require.NoError(t, err)
	require.Equal(t, clock().Add(30*time.Minute).Unix(), claims.Expiry().Unix())

	token, err = client.CreateTempUserToken("g")
	require.NoError(t, err)
	claims, err = verifier.Verify(token, jwtx.TypeTempUser)
	require.NoError(t, err)
	require.Equal(t, clock().Add(5*time.Minute).Unix(), claims.Expiry().Unix())

	claims, err = verifier.Verify(client.ClientToken(), jwtx.TypeClient)
	require.NoError(t, err)
	require.Equal(t, clock().Add(time.Hour).Unix(), claims.Expiry().Unix())
}

func TestCreateTokenRejectsEmptyIDs(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, "https://api.example.com")

	_, err := client.CreateTempUserToken("")
	require.ErrorIs(t, err, blindnet.ErrInvalidArgument)

	_, err = client.CreateUserToken("", "g")
	require.ErrorIs(t, err, blindnet.ErrInvalidArgument)

	_, err = client.CreateUserToken("u", "  ")
	require.ErrorIs(t, err, blindnet.ErrInvalidArgument)
}
