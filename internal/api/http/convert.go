package http

import (
	"github.com/so-ota-biz/fridge-chef/internal/api/domain"
	"github.com/so-ota-biz/fridge-chef/pkg/authsdk"
)

// toUser is the public projection returned by the auth endpoints.
func toUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsPremium:   u.IsPremium,
	}
}

func toProfile(u domain.User) authsdk.Profile {
	return authsdk.Profile{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		AvatarURL:   u.AvatarURL,
		IsPremium:   u.IsPremium,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toRecord(r domain.Record) authsdk.Record {
	return authsdk.Record{
		ID:           r.ID,
		UserID:       r.UserID,
		RecipeID:     r.RecipeID,
		CookedAt:     r.CookedAt,
		Rating:       r.Rating,
		Memo:         r.Memo,
		UserImageURL: r.UserImageURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
