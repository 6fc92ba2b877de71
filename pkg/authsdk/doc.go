/*
Package authsdk provides a client SDK for the fridge-chef API.

# Overview

The API keeps the session in three cookies: accessToken and refreshToken
(httpOnly) and csrfToken (readable). The SDK is built around three types:

  - Client: typed calls for every endpoint, backed by a cookie jar
  - Transport: the http.RoundTripper under Client that recovers sessions
  - SessionState: a restoring/authenticated/anonymous state machine

Create a Client and sign in:

	client, err := authsdk.NewClient("https://api.example.com", nil)
	if err != nil {
		log.Fatal(err)
	}

	user, err := client.SignIn(ctx, "a@x.com", "Aa123456")

Subsequent calls carry the cookies automatically:

	me, err := client.Me(ctx)
	rec, err := client.CreateRecord(ctx, authsdk.CreateRecordRequest{RecipeID: "42"})

# Session Recovery

Transport handles three failure modes without the caller noticing:

 1. A 401 on any call except sign-in triggers one POST /auth/refresh and a
    single replay of the original call.
 2. A 403 csrf_forbidden on a mutation triggers GET /auth/csrf and a single
    replay. A refresh rejected for the same reason is retried the same way.
 3. Concurrent 401s share one in-flight refresh.

No call is sent more than twice. When recovery fails the transport
broadcasts a session-expired signal:

	stop := client.Transport().OnSessionExpired(func() {
		fmt.Println("please sign in again")
	})
	defer stop()

# Session State

SessionState mirrors what a browser front end keeps in memory:

	state := authsdk.NewSessionState(client)
	defer state.Close()

	state.Subscribe(func(s authsdk.State, u *authsdk.User) {
		fmt.Println("session is now", s)
	})

	switch state.Restore(ctx) {
	case authsdk.StateAuthenticated:
		fmt.Println("welcome back", state.User().Email)
	case authsdk.StateAnonymous:
		// show the sign-in form
	}

Restore always leaves a CSRF token in the jar so the first mutation of an
anonymous visitor succeeds.

# Error Handling

Failed calls return *APIError carrying the HTTP status and the error code
from the response body:

	_, err := client.SignIn(ctx, email, password)
	if authsdk.HasCode(err, authsdk.CodeEmailNotConfirmed) {
		fmt.Println("check your inbox")
	}

The server writes the same type, so codes are shared between both sides.

# Thread Safety

Client, Transport and SessionState are safe for concurrent use.
*/
package authsdk
