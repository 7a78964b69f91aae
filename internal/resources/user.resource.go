package resources

import (
	. "estatehub/internal/models"
)

// DATE_TIME_LAYOUT is the timestamp format of every payload.
const DATE_TIME_LAYOUT = "2006-01-02 15:04:05"

type UserResource struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Role      Role    `json:"role"`
	CreatedAt string  `json:"created_at"`
}

func NewUserResource(user *User) *UserResource {
	if user == nil {
		return nil
	}

	return &UserResource{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(DATE_TIME_LAYOUT),
	}
}

func NewUserCollection(users []User) []UserResource {
	collection := make([]UserResource, 0, len(users))
	for i := range users {
		collection = append(collection, *NewUserResource(&users[i]))
	}
	return collection
}
