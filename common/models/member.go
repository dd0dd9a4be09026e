package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type ProviderType string

const (
	ProviderTypeKakao  ProviderType = "KAKAO"
	ProviderTypeGoogle ProviderType = "GOOGLE"
	ProviderTypeApple  ProviderType = "APPLE"
)

func (p ProviderType) String() string {
	return string(p)
}

func (p ProviderType) Valid() bool {
	return p == ProviderTypeKakao || p == ProviderTypeGoogle || p == ProviderTypeApple
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusSuspended MemberStatus = "SUSPENDED"
)

type MemberMetadata struct {
	ID        MemberID `json:"id" goqu:"skipinsert,skipupdate" db:"member_id"`
	CreatedAt Time     `json:"created_at" goqu:"skipupdate" db:"member_created_at"`
	UpdatedAt Time     `json:"updated_at" db:"member_updated_at"`
	ETag      ETag     `json:"etag" db:"member_etag" hash:"ignore"`
}

type Member struct {
	MemberMetadata
	Nickname       *string      `json:"nickname" db:"member_nickname"`
	Provider       ProviderType `json:"provider" db:"member_provider"`
	ProviderUserID string       `json:"provider_user_id" db:"member_provider_user_id"`
	Email          string       `json:"email" db:"member_email"`
	Gender         *Gender      `json:"gender" db:"member_gender"`
	AgeRange       *string      `json:"age_range" db:"member_age_range"`
	Status         MemberStatus `json:"status" db:"member_status"`
}

func NewMember(now Time, provider ProviderType, providerUserID string, email string) *Member {
	return &Member{
		MemberMetadata: MemberMetadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Provider:       provider,
		ProviderUserID: providerUserID,
		Email:          email,
		Status:         MemberStatusActive,
	}
}

func (m *Member) GetKind() ResourceKind {
	return MemberResourceKind
}

func (m *Member) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *Member) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *Member) SetID(id ResourceID) {
	m.ID = MemberIDFromResourceID(id)
}

func (m *Member) GetUpdatedAt() Time {
	return m.UpdatedAt
}

func (m *Member) SetUpdatedAt(t Time) {
	m.UpdatedAt = t
}

func (m *Member) GetETag() ETag {
	return m.ETag
}

func (m *Member) SetETag(eTag ETag) {
	m.ETag = eTag
}

// GetNickname returns the member's nickname, or an empty string if it has not been chosen yet.
func (m *Member) GetNickname() string {
	if m.Nickname == nil {
		return ""
	}
	return *m.Nickname
}

// IsNeedAdditionalUserInfo is true until the member has filled in their nickname, gender and age range.
func (m *Member) IsNeedAdditionalUserInfo() bool {
	return m.Nickname == nil || *m.Nickname == "" || m.Gender == nil || m.AgeRange == nil || *m.AgeRange == ""
}

func (m *Member) IsSuspended() bool {
	return m.Status == MemberStatusSuspended
}

func (m *Member) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if m.UpdatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error updated at must be set"))
	}
	if !m.Provider.Valid() {
		result = multierror.Append(result, errors.Errorf("error unknown provider: %q", m.Provider))
	}
	if m.ProviderUserID == "" {
		result = multierror.Append(result, errors.New("error provider user id must be set"))
	}
	if m.Gender != nil && !m.Gender.Valid() {
		result = multierror.Append(result, errors.Errorf("error unknown gender: %q", *m.Gender))
	}
	if m.Status != MemberStatusActive && m.Status != MemberStatusSuspended {
		result = multierror.Append(result, errors.Errorf("error unknown status: %q", m.Status))
	}
	return result.ErrorOrNil()
}

// MemberUpdate holds the profile fields a member can change about themselves. Nil fields are left unchanged.
type MemberUpdate struct {
	Nickname *string
	Gender   *Gender
	AgeRange *string
}

// OAuthUser is the identity returned by an OAuth provider after a successful code exchange.
type OAuthUser struct {
	Provider       ProviderType
	ProviderUserID string
	Email          string
}
