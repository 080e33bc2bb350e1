package domain

// User is the owner of recipes. ID is the opaque identifier issued by the
// identity provider; display and login fields live with the provider.
type User struct {
	ID string
}
