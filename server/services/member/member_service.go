package member

import (
	"context"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

const maxNicknameLength = 10

type MemberService struct {
	db          *store.DB
	memberStore store.MemberStore
	clk         clock.Clock
	logger.Log
}

func NewMemberService(
	db *store.DB,
	memberStore store.MemberStore,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *MemberService {
	return &MemberService{
		db:          db,
		memberStore: memberStore,
		clk:         clk,
		Log:         logFactory("MemberService"),
	}
}

// Read an existing member, looking it up by ID.
func (s *MemberService) Read(ctx context.Context, txOrNil *store.Tx, id models.MemberID) (*models.Member, error) {
	return s.memberStore.Read(ctx, txOrNil, id)
}

func (s *MemberService) Update(ctx context.Context, id models.MemberID, update *models.MemberUpdate) (*models.Member, error) {
	if update.Nickname != nil {
		nickname := strings.TrimSpace(*update.Nickname)
		if nickname == "" || len([]rune(nickname)) > maxNicknameLength {
			return nil, gerror.NewErrValidationFailed("Nickname must be between 1 and 10 characters").
				EDetail("nickname", *update.Nickname)
		}
		update.Nickname = &nickname
	}
	if update.Gender != nil && !update.Gender.Valid() {
		return nil, gerror.NewErrValidationFailed("Unknown gender").EDetail("gender", *update.Gender)
	}

	var member *models.Member
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		member, err = s.memberStore.Read(ctx, tx, id)
		if err != nil {
			return err
		}
		if update.Nickname != nil && *update.Nickname != member.GetNickname() {
			taken, err := s.memberStore.NicknameTaken(ctx, tx, *update.Nickname, &id)
			if err != nil {
				return errors.Wrap(err, "error checking nickname")
			}
			if taken {
				return gerror.NewErrAlreadyExists("Nickname is already in use").EDetail("nickname", *update.Nickname)
			}
			member.Nickname = update.Nickname
		}
		if update.Gender != nil {
			member.Gender = update.Gender
		}
		if update.AgeRange != nil {
			member.AgeRange = update.AgeRange
		}
		member.UpdatedAt = models.NewTime(s.clk.Now())
		return s.memberStore.Update(ctx, tx, member)
	})
	if err != nil {
		return nil, err
	}
	s.Infof("Updated member %s", member.ID)
	return member, nil
}

func (s *MemberService) IsNicknameAvailable(ctx context.Context, me models.MemberID, nickname string) (bool, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return false, nil
	}
	taken, err := s.memberStore.NicknameTaken(ctx, nil, nickname, &me)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *MemberService) Suspend(ctx context.Context, txOrNil *store.Tx, id models.MemberID) (*models.Member, error) {
	var member *models.Member
	err := s.db.WithTx(ctx, txOrNil, func(tx *store.Tx) error {
		var err error
		member, err = s.memberStore.Read(ctx, tx, id)
		if err != nil {
			return err
		}
		if member.IsSuspended() {
			return nil
		}
		member.Status = models.MemberStatusSuspended
		member.UpdatedAt = models.NewTime(s.clk.Now())
		return s.memberStore.Update(ctx, tx, member)
	})
	if err != nil {
		return nil, err
	}
	s.Warnf("Suspended member %s", member.ID)
	return member, nil
}
