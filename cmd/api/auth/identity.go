package auth

// ProviderAnonymous is the sign-in provider of guest sessions.
const ProviderAnonymous = "anonymous"

// Identity is the verified caller of a request.
type Identity struct {
	Subject        string
	Name           string
	Picture        string
	SignInProvider string
}

func (i *Identity) IsAnonymous() bool {
	return i != nil && i.SignInProvider == ProviderAnonymous
}
