package model

// LoginResult is the outcome of a successful credential check. Exactly one of
// Token and LoginAttemptID is set: accounts requiring a second factor get a
// LoginAttemptID and no token until the code is verified.
type LoginResult struct {
	Token          string
	LoginAttemptID LoginAttemptID
}

// TwoFactorRequired reports whether the login is waiting for a 2FA code.
func (r LoginResult) TwoFactorRequired() bool {
	return r.Token == "" && r.LoginAttemptID.String() != ""
}
