package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

// Pointers keep an absent criterion apart from a zero value such as
// year_of_study=0.
type userSearchCacheKeyInput struct {
	Role        *string `json:"role,omitempty"`
	Name        *string `json:"name,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	Branch      *string `json:"branch,omitempty"`
	YearOfStudy *int    `json:"year_of_study,omitempty"`
	Company     *string `json:"company,omitempty"`
	Limit       int     `json:"limit"`
}

// UsersSearchCacheKey derives a stable key from a filter and the current
// search generation. Name is folded to lower case because matching on it is
// case-insensitive; the company is not, since membership is exact.
func UsersSearchCacheKey(f UserFilter, limit int, gen int64) string {
	f = f.normalized()
	in := userSearchCacheKeyInput{
		Role:        f.Role,
		Domain:      f.Domain,
		Branch:      f.Branch,
		YearOfStudy: f.YearOfStudy,
		Company:     f.Company,
		Limit:       limit,
	}
	if f.Name != nil {
		name := strings.ToLower(*f.Name)
		in.Name = &name
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "users:search:" + strconv.FormatInt(gen, 10) + ":" + hex.EncodeToString(sum[:])
}
