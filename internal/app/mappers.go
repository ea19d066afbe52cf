package app

import (
	"strconv"
	"strings"

	"hotel_booking/internal/domain"
)

/********** alias registry **********/

var userAliases = map[string][]string{
	"id":        {"id", "userId", "user.id"},
	"email":     {"email", "user.email"},
	"firstName": {"firstName", "first_name", "user.firstName"},
	"lastName":  {"lastName", "last_name", "user.lastName"},
	"username":  {"username", "userName", "user.username"},
	"image":     {"image", "avatar", "user.image"},
	"token":     {"accessToken", "token", "access_token"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// flexString renders strings and JSON numbers as a string; anything else is "".
func flexString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

func firstAlias(m map[string]any, key string) string {
	for _, p := range userAliases[key] {
		if s := flexString(lookupAny(m, p)); s != "" {
			return s
		}
	}
	return ""
}

/********** identity mappers **********/

// mapUser projects an identity response onto StoredUser. Numeric ids become strings.
func mapUser(payload map[string]any) domain.StoredUser {
	return domain.StoredUser{
		ID:        firstAlias(payload, "id"),
		Email:     firstAlias(payload, "email"),
		FirstName: firstAlias(payload, "firstName"),
		LastName:  firstAlias(payload, "lastName"),
		Username:  firstAlias(payload, "username"),
		Image:     firstAlias(payload, "image"),
	}
}

func mapToken(payload map[string]any) string { return firstAlias(payload, "token") }
