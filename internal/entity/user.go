package entity

// Liveness states a user moves through. StateInitial is the placeholder a
// freshly registered account carries until its first login; it is kept
// verbatim so snapshots written by earlier deployments still round-trip.
const (
	StateInitial = "office"
	StateOnline  = "online"
	StateOffline = "offline"
)

// User is a registered account. Username is the natural key and is unique
// for the lifetime of the process. Friends holds canonical usernames, never
// entity references, so snapshot round-trips and lookups stay type-stable.
type User struct {
	Username     string   `json:"username"`
	Identity     string   `json:"identity"` // declared identity, e.g. owner, property manager, lawyer
	PasswordHash string   `json:"-"`
	Location     string   `json:"location"`
	Role         string   `json:"role"`
	State        string   `json:"state"`
	Friends      []string `json:"friends"`
}

func NewUser(username, identity, passwordHash, location, role string) *User {
	if role == "" {
		role = identity
	}
	return &User{
		Username:     username,
		Identity:     identity,
		PasswordHash: passwordHash,
		Location:     location,
		Role:         role,
		State:        StateInitial,
	}
}

// AddFriend records a friendship by username. Adding an existing friend is
// a no-op and reported as false.
func (u *User) AddFriend(friend string) bool {
	if u.HasFriend(friend) {
		return false
	}
	u.Friends = append(u.Friends, friend)
	return true
}

func (u *User) HasFriend(friend string) bool {
	for _, f := range u.Friends {
		if f == friend {
			return true
		}
	}
	return false
}

// Profile is the externally visible view of a user, without the credential.
type Profile struct {
	Username string `json:"username"`
	Identity string `json:"identity"`
	Role     string `json:"role"`
	Location string `json:"location"`
	State    string `json:"state"`
}

func (u *User) Profile() Profile {
	return Profile{
		Username: u.Username,
		Identity: u.Identity,
		Role:     u.Role,
		Location: u.Location,
		State:    u.State,
	}
}
