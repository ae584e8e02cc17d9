// Package models defines the core data structures for credentials, notes
// and client sessions.
package models

// Credential represents one registered user with a salted password hash.
// Credentials are configuration data: loaded at startup, immutable at runtime.
type Credential struct {
	// Username is the unique login name of the user.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"password_hash"`
}

// Note is a single math note: a title plus a math-expression string.
type Note struct {
	// Title is the user-chosen heading of the note.
	Title string `json:"title"`
	// Text is the math expression the note stores.
	Text string `json:"text"`
}

// Session is the client-side result of a successful login. The plaintext
// password is deliberately not part of a session: the token authorizes
// everything after login.
type Session struct {
	// Username the session was issued for.
	Username string
	// Token is the signed session token returned by the server.
	Token string
}
