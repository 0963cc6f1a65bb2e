package store

// Patch lists the user fields present in an update request. A nil field
// was not supplied and leaves the stored value untouched
type Patch struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.LastName == nil && p.Email == nil && p.Password == nil
}
