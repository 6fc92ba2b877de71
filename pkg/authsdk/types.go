package authsdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// User is the public projection of an account returned by the auth endpoints.
type User struct {
	ID          string  `json:"id" example:"01JABCDEF0123456789ABCDEFG"`
	Email       string  `json:"email" example:"a@x.com"`
	DisplayName *string `json:"displayName" example:"Alice"`
	AvatarURL   *string `json:"avatarUrl"`
	IsPremium   bool    `json:"isPremium"`
}

// SignUpRequest is the body of POST /auth/signup.
type SignUpRequest struct {
	Email       string `json:"email" example:"a@x.com"`
	Password    string `json:"password" example:"Aa123456"`
	DisplayName string `json:"displayName,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
}

// SignUpResponse is returned with 201 from POST /auth/signup. No cookies
// are set; the account still has to confirm its email when confirmation is
// enabled.
type SignUpResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

// SignInRequest is the body of POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"Aa123456"`
}

// SignInResponse is the body of a successful sign-in. Credentials travel in
// cookies only.
type SignInResponse struct {
	User User `json:"user"`
}

// OKResponse is returned by endpoints that only set cookies.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// ============================================================================
// Profile Types
// ============================================================================

// Profile is the full user record returned by GET /users/me.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName"`
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	AvatarURL   *string   `json:"avatarUrl"`
	IsPremium   bool      `json:"isPremium"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateProfileRequest patches the profile. Nil fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
}

// ChangePasswordRequest is the body of POST /users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// DeleteAccountRequest is the body of DELETE /users/me.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// ============================================================================
// Record Types
// ============================================================================

// Record is one cooking record owned by a user.
type Record struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	RecipeID     string    `json:"recipeId"`
	CookedAt     time.Time `json:"cookedAt"`
	Rating       *int      `json:"rating"`
	Memo         *string   `json:"memo"`
	UserImageURL *string   `json:"userImageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateRecordRequest is the body of POST /records. CookedAt defaults to now.
type CreateRecordRequest struct {
	RecipeID     string     `json:"recipeId" example:"42"`
	CookedAt     *time.Time `json:"cookedAt,omitempty"`
	Rating       *int       `json:"rating,omitempty" example:"4"`
	Memo         *string    `json:"memo,omitempty"`
	UserImageURL *string    `json:"userImageUrl,omitempty"`
}

// RecordList is the body of GET /records.
type RecordList struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each critical dependency.
type HealthChecks struct {
	Database string `json:"database"`
}
