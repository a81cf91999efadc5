/*
Package blindnet is the backend SDK for blindnet. It lets an application mint
the tokens blindnet trusts and call the blindnet data lifecycle endpoints.

# Creating a Client

A Client is built from the application's Ed25519 private key and its
application ID. The key may be PEM (PKCS8), raw bytes, or base64 of the raw
key, which is how the blindnet dashboard hands it out:

	client, err := blindnet.Init(appKey, appID)
	if errors.Is(err, blindnet.ErrConfiguration) {
		// bad key or app id, nothing was sent anywhere
	}

For more control use New with a Config:

	client, err := blindnet.New(blindnet.Config{
		AppKey:       []byte(appKey),
		AppID:        appID,
		APIEndpoint:  "https://test.blindnet.io",
		Timeout:      5 * time.Second,
		UserTokenTTL: 30 * time.Minute,
		RateLimit: &httpx.RateLimitConfig{
			RequestsPerWindow: 20,
			Window:            time.Second,
			Burst:             5,
		},
		Logger: logger,
	})

Construction mints the first client credential but never touches the network.

# Tokens

Tokens are compact JWS strings signed with EdDSA. There are three kinds,
told apart by the "typ" header:

  - cjwt: the client credential the SDK itself uses (app, tid, exp), 24h
  - tjwt: temporary-user token for unregistered data senders (app, tid, gid, exp), 30m
  - jwt: registered-user token (uid, app, gid, exp), 12h

Hand user tokens to your own users, they present them to blindnet directly:

	senderToken, err := client.CreateTempUserToken(groupID)
	userToken, err := client.CreateUserToken(userID, groupID)

# Lifecycle operations

	err := client.ForgetData(ctx, dataID)      // one data key
	err := client.RevokeAccess(ctx, userID)    // every data key of a user
	err := client.ForgetUser(ctx, userID)      // a user
	err := client.ForgetGroup(ctx, groupID)    // a group, its users and their data keys

A nil error means the service answered 200. If the service answers 401 the
client credential is refreshed once and the request is sent again; a second
401 gives ErrAuthentication. Any other status gives a *ServiceError:

	var svcErr *blindnet.ServiceError
	if errors.As(err, &svcErr) {
		log.Printf("blindnet said %d: %s", svcErr.StatusCode, svcErr.Message)
	}

# Logging

The client logs through log/slog. A logger attached with slogx.WithContext
takes precedence over Config.Logger for that call. Each outbound request
carries an X-Request-ID which is also logged as req_id.

# Thread Safety

A Client is safe for concurrent use. The cached client credential is read
and replaced under a lock, so a request never sees a partially written token.
Each Client owns its own credential, separate Clients never share one.
*/
package blindnet
