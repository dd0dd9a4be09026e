package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
)

func TestLostTypeSortKey(t *testing.T) {
	require.Equal(t, SortKeyReceivedDate, LostTypeAcquire.SortKey())
	require.Equal(t, SortKeyCreatedAt, LostTypeLost.SortKey())

	created := NewTime(time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC))
	received := NewTime(time.Date(2023, 4, 28, 9, 30, 0, 0, time.UTC))
	post := &LostPost{LostType: LostTypeAcquire, ReceivedDate: received}
	post.CreatedAt = created
	require.Equal(t, received, post.Date())
	post.LostType = LostTypeLost
	require.Equal(t, created, post.Date())
}

func TestPageToken(t *testing.T) {
	t.Run("EmptyIsFirstPage", func(t *testing.T) {
		token, err := DecodePageToken("")
		require.Nil(t, err)
		require.Nil(t, token)
		require.Equal(t, "", token.Encode())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		post := &LostPost{LostType: LostTypeAcquire, ReceivedDate: NewTime(time.Now())}
		post.SetID(42)
		token := NewPageToken(post, post.LostType.SortKey())
		decoded, err := DecodePageToken(token.Encode())
		require.Nil(t, err)
		require.Equal(t, ResourceID(42), decoded.ID)
		require.True(t, post.ReceivedDate.Equal(decoded.SortValue.Time))
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := DecodePageToken("not a token!")
		require.True(t, gerror.IsInvalidQueryParameter(err))
		_, err = DecodePageToken("bm90LWpzb24")
		require.True(t, gerror.IsInvalidQueryParameter(err))
	})
}

func TestPaginationValidate(t *testing.T) {
	require.Nil(t, NewPagination(1, nil).Validate())
	require.True(t, gerror.IsInvalidArgument(NewPagination(0, nil).Validate()))
	require.True(t, gerror.IsInvalidArgument(NewPagination(-5, nil).Validate()))
}

func TestMemberIsNeedAdditionalUserInfo(t *testing.T) {
	member := NewMember(NewTime(time.Now()), ProviderTypeKakao, "1234", "a@b.c")
	require.True(t, member.IsNeedAdditionalUserInfo())

	nickname, ageRange, gender := "subway-rider", "20~29", GenderFemale
	member.Nickname = &nickname
	member.AgeRange = &ageRange
	require.True(t, member.IsNeedAdditionalUserInfo())
	member.Gender = &gender
	require.False(t, member.IsNeedAdditionalUserInfo())
	require.Nil(t, member.Validate())
}

func TestCongestionFromPercentage(t *testing.T) {
	cases := map[int]Congestion{
		0:   CongestionSmooth,
		34:  CongestionSmooth,
		35:  CongestionModerate,
		79:  CongestionModerate,
		80:  CongestionCongested,
		129: CongestionCongested,
		130: CongestionVeryCongested,
		230: CongestionVeryCongested,
	}
	for percentage, expected := range cases {
		require.Equal(t, expected, CongestionFromPercentage(percentage), "percentage %d", percentage)
	}
}

func TestResourceIDJSON(t *testing.T) {
	id := MemberIDFromResourceID(7)
	buf, err := id.MarshalJSON()
	require.Nil(t, err)
	require.Equal(t, "7", string(buf))
	parsed := MemberID{}
	require.Nil(t, parsed.UnmarshalJSON([]byte(`"7"`)))
	require.Equal(t, id, parsed)
	_, err = ParseResourceID("-1")
	require.NotNil(t, err)
}
