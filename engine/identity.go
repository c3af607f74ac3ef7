package engine

import "github.com/yeremiapane/smart-pos/models"

// FindAccount returns the account whose username and password match
// exactly. Passwords are compared in plaintext.
func FindAccount(users []models.User, username, password string) (models.User, bool) {
	for _, u := range users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return models.User{}, false
}

// authenticate replaces the current user with the matching account. A
// failed match leaves nobody signed in.
func (e *Engine) authenticate(s models.Snapshot, in Authenticate) (models.Snapshot, bool) {
	user, ok := FindAccount(s.Users, in.Username, in.Password)
	if !ok {
		return e.signOut(s)
	}
	if s.CurrentUser != nil && *s.CurrentUser == user {
		return s, false
	}
	next := s.Clone()
	next.CurrentUser = &user
	return next, true
}

func (e *Engine) signOut(s models.Snapshot) (models.Snapshot, bool) {
	if s.CurrentUser == nil {
		return s, false
	}
	next := s.Clone()
	next.CurrentUser = nil
	return next, true
}

func userIndex(users []models.User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func usernameTaken(users []models.User, username string) bool {
	for _, u := range users {
		if u.Username == username {
			return true
		}
	}
	return false
}

// AdminCount returns the number of Admin accounts.
func AdminCount(users []models.User) int {
	n := 0
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n
}

func (e *Engine) createUser(s models.Snapshot, in CreateUser) (models.Snapshot, bool) {
	if in.Username == "" || !in.Role.Valid() || usernameTaken(s.Users, in.Username) {
		return s, false
	}
	id, ok := e.newID("user", func(id string) bool {
		return userIndex(s.Users, id) >= 0
	})
	if !ok {
		return s, false
	}
	next := s.Clone()
	next.Users = append(next.Users, models.User{
		ID:       id,
		Name:     in.Name,
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
	})
	return next, true
}

// deleteUser removes an account. The last Admin cannot be removed, and
// removing the signed-in account signs it out.
func (e *Engine) deleteUser(s models.Snapshot, in DeleteUser) (models.Snapshot, bool) {
	i := userIndex(s.Users, in.UserID)
	if i < 0 {
		return s, false
	}
	if s.Users[i].Role == models.RoleAdmin && AdminCount(s.Users) <= 1 {
		return s, false
	}
	next := s.Clone()
	next.Users = append(next.Users[:i], next.Users[i+1:]...)
	if next.CurrentUser != nil && next.CurrentUser.ID == in.UserID {
		next.CurrentUser = nil
	}
	return next, true
}
