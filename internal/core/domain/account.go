package domain

import "time"

// Role is the authorization level carried by an account and its tokens.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Gender values accepted on the profile.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Profile holds the descriptive attributes of an account. The auth core never
// inspects them.
type Profile struct {
	Name    string `json:"name" bson:"name"`
	Age     int    `json:"age" bson:"age"`
	Gender  string `json:"gender" bson:"gender"`
	City    string `json:"city" bson:"city"`
	Country string `json:"country" bson:"country"`
	Address string `json:"address" bson:"address"`
}

// ProfilePatch carries a partial profile update. Nil fields are left as they are.
type ProfilePatch struct {
	Name    *string
	Age     *int
	Gender  *string
	City    *string
	Country *string
	Address *string
}

// Apply returns p with every non-nil field of the patch written over it.
func (pp ProfilePatch) Apply(p Profile) Profile {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Age != nil {
		p.Age = *pp.Age
	}
	if pp.Gender != nil {
		p.Gender = *pp.Gender
	}
	if pp.City != nil {
		p.City = *pp.City
	}
	if pp.Country != nil {
		p.Country = *pp.Country
	}
	if pp.Address != nil {
		p.Address = *pp.Address
	}
	return p
}

// Empty reports whether the patch changes nothing.
func (pp ProfilePatch) Empty() bool {
	return pp.Name == nil && pp.Age == nil && pp.Gender == nil &&
		pp.City == nil && pp.Country == nil && pp.Address == nil
}

// Account is the identity record. ID is assigned by the store on creation and
// never changes; Email is the unique, case-sensitive login key.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	Deactivated  bool
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// State returns the lifecycle state derived from the soft-delete flag.
func (a *Account) State() LifecycleState {
	if a.Deactivated {
		return StateDeactivated
	}
	return StateActive
}

// PublicAccount is the outward view of an account: no credential hash and no
// lifecycle flag.
type PublicAccount struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	City    string `json:"city"`
	Country string `json:"country"`
	Address string `json:"address"`
}

// Public projects the account onto its outward view.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:      a.ID,
		Email:   a.Email,
		Role:    a.Role,
		Name:    a.Profile.Name,
		Age:     a.Profile.Age,
		Gender:  a.Profile.Gender,
		City:    a.Profile.City,
		Country: a.Profile.Country,
		Address: a.Profile.Address,
	}
}

// OwnerSummary is the slice of an account shown next to posts in admin listings.
type OwnerSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}
