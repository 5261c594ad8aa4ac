// Package vinculov1 defines the messages, service descriptors and clients of
// the vinculo.v1 gRPC API. Messages are encoded with the JSON codec.
package vinculov1

import "time"

type Empty struct{}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

type Permissions struct {
	ViewStudents    bool `json:"view_students"`
	ViewManagement  bool `json:"view_management"`
	ViewDisciplines bool `json:"view_disciplines"`
	ViewReports     bool `json:"view_reports"`
	ViewSettings    bool `json:"view_settings"`
}

type Profile struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Avatar     string    `json:"avatar,omitempty"`
	SchoolID   *int64    `json:"school_id,omitempty"`
	PlatformID *int64    `json:"platform_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LoginResponse struct {
	Session     Session     `json:"session"`
	Profile     Profile     `json:"profile"`
	Permissions Permissions `json:"permissions"`
}

type AccountResponse struct {
	Profile     Profile     `json:"profile"`
	Permissions Permissions `json:"permissions"`
}

type CreateUserRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	Avatar     *string `json:"avatar,omitempty"`
	SchoolID   *int64  `json:"school_id,omitempty"`
	PlatformID *int64  `json:"platform_id,omitempty"`
}

type CreateUserResponse struct {
	Profile    Profile  `json:"profile"`
	IdentityID string   `json:"identity_id"`
	Warnings   []string `json:"warnings,omitempty"`
}

// UpdateUserRequest changes the non-nil fields of a user.
type UpdateUserRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Status   *string `json:"status,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	SchoolID *int64  `json:"school_id,omitempty"`
}

type UserRequest struct {
	ID string `json:"id"`
}

type UserResponse struct {
	Profile Profile `json:"profile"`
}

type ListUsersResponse struct {
	Users []Profile `json:"users"`
}

type DeleteStep struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Affected int64  `json:"affected"`
	Error    string `json:"error,omitempty"`
}

type DeleteUserResponse struct {
	ProfileID string       `json:"profile_id"`
	TeacherID string       `json:"teacher_id,omitempty"`
	Partial   bool         `json:"partial"`
	Steps     []DeleteStep `json:"steps"`
}

type UploadAvatarRequest struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type AvatarResponse struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type CheckEmailResponse struct {
	Email           string `json:"email"`
	InUse           bool   `json:"in_use"`
	ProfileID       string `json:"profile_id,omitempty"`
	ProfileName     string `json:"profile_name,omitempty"`
	IdentityID      string `json:"identity_id,omitempty"`
	IdentityChecked bool   `json:"identity_checked"`
}

type RegisteredEmailsResponse struct {
	Emails []string `json:"emails"`
	Count  int      `json:"count"`
}

type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

type OrphanIdentitiesResponse struct {
	Identities []Identity `json:"identities"`
}

type RemoveOrphansRequest struct {
	DryRun bool `json:"dry_run"`
}

type OrphanFailure struct {
	Identity Identity `json:"identity"`
	Error    string   `json:"error"`
}

type RemoveOrphansResponse struct {
	DryRun  bool            `json:"dry_run"`
	Orphans []Identity      `json:"orphans"`
	Removed []Identity      `json:"removed"`
	Failed  []OrphanFailure `json:"failed,omitempty"`
}
